package models

import "time"

// Loan tracks borrowed or lent money; amounts in cents.
type Loan struct {
	Base
	Description     string    `gorm:"type:text;not null" json:"description"`
	PrincipalAmount int64     `gorm:"not null" json:"principalAmount"`
	TotalAmount     int64     `gorm:"not null" json:"totalAmount"`
	DueDate         string    `gorm:"size:10;not null" json:"dueDate"`
	Type            int       `gorm:"not null" json:"type"`
	BankAccountID   string    `gorm:"size:36;index;not null" json:"bankAccount"`
	ColorID         string    `gorm:"size:36;not null" json:"color"`
	IconID          string    `gorm:"size:36;not null" json:"icon"`
	UserID          string    `gorm:"size:36;index;not null" json:"user"`
	CreatedAt       time.Time `json:"created"`
	UpdatedAt       time.Time `json:"modified"`
}
