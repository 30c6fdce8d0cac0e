package models

import "time"

// AuditLog records authenticated API operations for traceability.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *string   `gorm:"size:36;index" json:"user"`
	Path      string    `gorm:"size:255" json:"path"`
	Method    string    `gorm:"size:16" json:"method"`
	Action    string    `gorm:"size:2048" json:"action"`
	IP        string    `gorm:"size:64" json:"ip"`
	UserAgent string    `gorm:"size:255" json:"userAgent"`
	CreatedAt time.Time `json:"created"`
}
