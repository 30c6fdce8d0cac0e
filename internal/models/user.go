package models

import "time"

// Person holds the profile data behind a user account.
type Person struct {
	Base
	FirstName string `gorm:"size:64" json:"firstName"`
	LastName  string `gorm:"size:64" json:"lastName"`
	FullName  string `gorm:"size:128;not null" json:"fullName"`
	Image     string `gorm:"type:text" json:"image"`
	Status    int    `gorm:"default:1" json:"status"`
}

// User represents an application login. Passwords are stored as bcrypt
// hashes, never in clear.
type User struct {
	Base
	Username     string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:255;index" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	PersonID     string    `gorm:"size:36;index;not null" json:"personId"`
	CreatedAt    time.Time `json:"created"`
	UpdatedAt    time.Time `json:"modified"`

	Person Person `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
