package models

// Planning is one user's monthly income plan for a month/year/currency
// scope. One row per (user, month, year) is assumed; the aggregators
// take the first match.
type Planning struct {
	Base
	Month         int    `gorm:"not null" json:"month"` // 1-12
	Year          int    `gorm:"not null" json:"year"`
	MonthlyIncome int64  `gorm:"not null" json:"monthlyIncome"` // cents
	UserID        string `gorm:"size:36;index;not null" json:"user"`
	CurrencyID    string `gorm:"size:36;not null" json:"currency"`

	Currency Currency `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}

// Budget is a planned spending allocation for one category within a
// Planning. plannedValue is in cents.
type Budget struct {
	Base
	PlannedValue  int64   `gorm:"not null" json:"plannedValue"`
	CategoryID    string  `gorm:"size:36;not null" json:"category"`
	SubcategoryID *string `gorm:"size:36" json:"subcategory"`
	PlanningID    string  `gorm:"size:36;index;not null" json:"planning"`

	Category Category `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Planning Planning `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
