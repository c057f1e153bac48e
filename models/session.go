package models

import (
	"time"
)

// Session is a server-side login session keyed by the session id cookie.
// Data carries arbitrary serialized session state (JSON).
type Session struct {
	SID       string    `gorm:"column:sid;primaryKey" json:"sid"`
	UserID    string    `gorm:"not null;index" json:"userId"`
	Data      string    `gorm:"type:text" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for the Session model
func (Session) TableName() string {
	return "sessions"
}
