package models

import "time"

// Transaction is a single money movement. Value is always a non-negative
// amount in cents; the direction is carried by the integer type code, not
// by the sign. Date is a YYYY-MM-DD string so month scoping is a plain
// prefix match.
type Transaction struct {
	Base
	Date                    string    `gorm:"size:10;index" json:"date"`
	Description             string    `gorm:"type:text" json:"description"`
	OriginalValue           *int64    `json:"originalValue"`
	Value                   int64     `gorm:"not null" json:"value"`
	Observation             string    `gorm:"type:text" json:"observation"`
	Ignore                  *int      `json:"ignore"`
	IsTransfer              int       `gorm:"not null" json:"isTransfer"`
	IsCreditCardTransaction int       `gorm:"not null" json:"isCreditCardTransaction"`
	Paid                    *int      `json:"paid"` // 0 pending, 1 paid, nil n/a
	Fixed                   *int      `json:"fixed"`
	FixedDay                *int      `json:"fixedDay"`
	Type                    int       `gorm:"index;not null" json:"type"`
	PaymentDate             *string   `gorm:"size:10" json:"paymentDate"`
	InvoiceID               *string   `gorm:"size:36;index" json:"invoice"`
	BankAccountID           *string   `gorm:"size:36;index" json:"bankAccount"`
	UserID                  string    `gorm:"size:36;index;not null" json:"user"`
	CategoryID              *string   `gorm:"size:36;index" json:"category"`
	GroupingID              *string   `gorm:"size:64" json:"groupingId"`
	InvoiceNumber           *int      `json:"invoiceNumber"`
	IsReturn                *int      `json:"isReturn"`
	InvoiceValue            *int64    `json:"invoiceValue"`
	OriginalDate            *string   `gorm:"size:10" json:"originalDate"`
	PartialPaymentID        *string   `gorm:"size:64" json:"partialPaymentId"`
	CanEdit                 *int      `json:"canEdit"`
	SubcategoryID           *string   `gorm:"size:36" json:"subcategory"`
	LoanID                  *string   `gorm:"size:36" json:"loan"`
	CreatedAt               time.Time `json:"created"`
	UpdatedAt               time.Time `json:"modified"`
}
