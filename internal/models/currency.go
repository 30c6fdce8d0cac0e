package models

// Currency is a display/filter attribute only; the API never converts
// between currencies.
type Currency struct {
	Base
	Symbol      string `gorm:"size:8" json:"symbol"`
	Code        string `gorm:"size:8;not null" json:"code"`
	Number      string `gorm:"size:8" json:"number"`
	MinorUnit   int    `gorm:"default:2" json:"minorUnit"`
	Image       string `gorm:"type:text;uniqueIndex" json:"image"`
	Type        int    `gorm:"default:1" json:"type"`
	CountryCode string `gorm:"size:8" json:"countryCode"`
}
