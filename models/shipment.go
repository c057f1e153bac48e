package models

// Shipment is the outbound delivery record for an order. There is no
// API creation path; rows are seeded or inserted out-of-band.
type Shipment struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	OrderID          uint    `gorm:"not null;index" json:"orderId"` // foreign key to orders table
	Order            Order   `gorm:"foreignKey:OrderID" json:"-"`
	TrackingCode     string  `json:"trackingCode"`
	Carrier          string  `json:"carrier"`
	Status           string  `gorm:"not null;default:'pending'" json:"status"` // pending, in_transit, delivered, exception
	EstimatedArrival *string `json:"estimatedArrival"` // YYYY-MM-DD, stored as text so it reads back verbatim
}

// TableName specifies the table name for the Shipment model
func (Shipment) TableName() string {
	return "shipments"
}
