package models

// Category groups transactions and owns budget lines. A nil user means a
// system-provided category.
type Category struct {
	Base
	Description string  `gorm:"type:text;not null" json:"description"`
	Type        int     `gorm:"not null" json:"type"`
	IconID      string  `gorm:"size:36;not null" json:"icon"`
	ColorID     string  `gorm:"size:36;not null" json:"color"`
	UserID      *string `gorm:"size:36;index" json:"user"`

	Icon  Icon  `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Color Color `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}

// Subcategory refines a category.
type Subcategory struct {
	Base
	Description string  `gorm:"type:text;not null" json:"description"`
	CategoryID  string  `gorm:"size:36;index;not null" json:"category"`
	IconID      string  `gorm:"size:36;not null" json:"icon"`
	ColorID     string  `gorm:"size:36;not null" json:"color"`
	UserID      *string `gorm:"size:36;index" json:"user"`
}
