package models

import (
	"time"
)

// User represents an operator of the system. The row is owned by the
// identity provider: it is created and refreshed via upsert on every
// successful sign-in, keyed by the provider's subject claim.
type User struct {
	ID        string    `gorm:"primaryKey" json:"id"` // identity provider subject
	Email     *string   `gorm:"uniqueIndex" json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `gorm:"not null;default:'client'" json:"role"` // "client", "factory" or "admin"
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
