package models

import "time"

// CreditCard belongs to one user; limitValue is in cents.
type CreditCard struct {
	Base
	Name             string    `gorm:"size:128;not null" json:"name"`
	LimitValue       int64     `gorm:"not null" json:"limitValue"`
	ClosingDay       int       `gorm:"not null" json:"closingDay"`
	DueDate          int       `gorm:"not null" json:"dueDate"`
	BankAccountID    *string   `gorm:"size:36;index" json:"bankAccount"`
	CreditCardFlagID string    `gorm:"size:36;not null" json:"creditCardFlag"`
	UserID           string    `gorm:"size:36;index;not null" json:"user"`
	Status           *int      `json:"status"`
	CreatedAt        time.Time `json:"created"`
	UpdatedAt        time.Time `json:"modified"`
}

// Invoice is a monthly credit card statement. Dates are stored as
// lexicographically sortable YYYY-MM-DD strings.
type Invoice struct {
	Base
	Status        int       `gorm:"not null" json:"status"`
	ClosingDate   string    `gorm:"size:10;not null" json:"closingDate"`
	DueDate       string    `gorm:"size:10;not null" json:"dueDate"`
	PaymentDate   *string   `gorm:"size:10" json:"paymentDate"`
	PaymentAmount *int64    `json:"paymentAmount"`
	CreditCardID  string    `gorm:"size:36;index;not null" json:"creditCard"`
	UserID        string    `gorm:"size:36;index;not null" json:"user"`
	CreatedAt     time.Time `json:"created"`
	UpdatedAt     time.Time `json:"modified"`
}
