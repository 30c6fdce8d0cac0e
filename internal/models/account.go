package models

import "time"

// BankAccount belongs to one user and carries the currency used by the
// planning aggregation currency filter. Balance values are integer
// minor-units (cents).
type BankAccount struct {
	Base
	Name           string    `gorm:"size:128;not null" json:"name"`
	Type           int       `gorm:"not null" json:"type"`
	Operation      string    `gorm:"size:32" json:"operation"`
	AccountNumber  string    `gorm:"size:32" json:"accountNumber"`
	AccountDigit   string    `gorm:"size:8" json:"accountDigit"`
	AgencyNumber   string    `gorm:"size:32" json:"agencyNumber"`
	AgencyDigit    string    `gorm:"size:8" json:"agencyDigit"`
	InitialBalance int64     `gorm:"not null" json:"initialBalance"`
	BankID         *string   `gorm:"size:36;index" json:"bank"`
	ColorID        string    `gorm:"size:36;not null" json:"color"`
	UserID         string    `gorm:"size:36;index;not null" json:"user"`
	BankJSON       string    `gorm:"type:text" json:"bankJson"`
	Status         *int      `json:"status"`
	CurrencyID     string    `gorm:"size:36;index;not null" json:"currency"`
	CreatedAt      time.Time `json:"created"`
	UpdatedAt      time.Time `json:"modified"`

	Currency Currency `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}

// BankAccountLimit is a per-account limit (overdraft, withdrawal, ...).
type BankAccountLimit struct {
	Base
	TranslationKey string `gorm:"size:128;not null" json:"translationKey"`
	Type           int    `gorm:"not null" json:"type"`
	Value          int64  `gorm:"not null" json:"value"`
	BankAccountID  string `gorm:"size:36;index;not null" json:"bankAccount"`
}
