package models

import "time"

// Goal is a savings goal tied to a bank account; aimValue and
// initialValue are in cents.
type Goal struct {
	Base
	CompletionDate int       `gorm:"not null" json:"completionDate"`
	Type           int       `gorm:"not null" json:"type"`
	Description    string    `gorm:"type:text" json:"description"`
	AimValue       int64     `gorm:"not null" json:"aimValue"`
	Image          string    `gorm:"type:text" json:"image"`
	RememberDay    *int      `json:"rememberDay"`
	BankAccountID  string    `gorm:"size:36;index;not null" json:"bankAccount"`
	UserID         *string   `gorm:"size:36;index" json:"user"`
	ColorID        *string   `gorm:"size:36" json:"color"`
	IconID         *string   `gorm:"size:36" json:"icon"`
	InitialValue   int64     `gorm:"default:0" json:"initialValue"`
	CreatedAt      time.Time `json:"created"`
	UpdatedAt      time.Time `json:"modified"`
}

// GoalTransaction links one transaction to the goal it funds.
type GoalTransaction struct {
	Base
	TransactionID string `gorm:"size:36;uniqueIndex;not null" json:"transaction"`
	GoalID        string `gorm:"size:36;index;not null" json:"goal"`
}
