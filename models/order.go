package models

import (
	"time"
)

// Order represents a customer's print request, the root entity of the
// production lifecycle. Creating an order also creates exactly one
// queued ProductionJob in the same transaction.
type Order struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	CustomerName     string    `gorm:"not null" json:"customerName"`
	ProductType      string    `gorm:"not null" json:"productType"` // e.g. "Business Cards", "Flyers"
	Quantity         int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	Status           string    `gorm:"not null;default:'pending'" json:"status"` // pending, production, shipping, delivered
	Priority         string    `gorm:"not null;default:'normal'" json:"priority"` // normal, high
	ExpectedDelivery *string   `json:"expectedDelivery"` // YYYY-MM-DD, stored as text so it reads back verbatim
	ArtworkS3Key     *string   `json:"artworkS3Key,omitempty"`
	ArtworkURL       *string   `gorm:"-" json:"artworkUrl,omitempty"` // computed field, presigned URL for artwork
	CreatedAt        time.Time `json:"createdAt"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
