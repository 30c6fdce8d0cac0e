package models

// Reference data shared across accounts, cards and categories.

// Color is a display color, either global or owned by a user.
type Color struct {
	Base
	Description string  `gorm:"size:64" json:"description"`
	Hexadecimal string  `gorm:"size:16" json:"hexadecimal"`
	RGBA        string  `gorm:"size:32" json:"rgba"`
	UserID      *string `gorm:"size:36;index" json:"user"`
}

// Icon identifies a glyph inside an icon set.
type Icon struct {
	Base
	Name string `gorm:"size:64;not null" json:"name"`
	Set  string `gorm:"size:64;not null" json:"set"`
}

// Bank is a financial institution bank accounts can belong to.
type Bank struct {
	Base
	Code  string `gorm:"size:16" json:"code"`
	Name  string `gorm:"size:128;not null" json:"name"`
	Image string `gorm:"type:text" json:"image"`
}

// CreditCardFlag is a card network (Visa, Mastercard, ...).
type CreditCardFlag struct {
	Base
	Name  string `gorm:"size:64;not null" json:"name"`
	Image string `gorm:"type:text" json:"image"`
}
