package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base gives every entity a UUID string primary key, assigned on insert
// when the client did not provide one.
type Base struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
