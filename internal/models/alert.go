package models

import "time"

// Alert is an in-app notification for a user.
type Alert struct {
	Base
	Description           string    `gorm:"type:text;not null" json:"description"`
	ReadDateTime          *string   `gorm:"size:32" json:"readDateTime"`
	UserActionScreen      string    `gorm:"size:128" json:"userActionScreen"`
	ScreenParams          string    `gorm:"type:text" json:"screenParams"`
	ButtonTitle           string    `gorm:"size:128" json:"buttonTitle"`
	UserActionModal       *int      `json:"userActionModal"`
	UserID                string    `gorm:"size:36;index;not null" json:"user"`
	TranslationKeyMessage string    `gorm:"size:255" json:"translationKeyMessage"`
	TranslationKeyButton  string    `gorm:"size:255" json:"translationKeyButton"`
	TranslationObj        string    `gorm:"type:text" json:"translationObj"`
	CreatedAt             time.Time `json:"created"`
}
