package models

import (
	"time"
)

// Alert is a read/unread operational notification surfaced on the
// dashboard. IsRead is the only field mutable through the API.
type Alert struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"not null" json:"type"` // production_delay, shipping_delay, system
	Message   string    `gorm:"not null" json:"message"`
	Severity  string    `gorm:"not null;default:'info'" json:"severity"` // info, warning, critical
	IsRead    bool      `gorm:"not null;default:false" json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for the Alert model
func (Alert) TableName() string {
	return "alerts"
}
