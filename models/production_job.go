package models

// ProductionJob tracks the manufacturing progress of a single order.
// One job per order, created automatically when the order is created.
type ProductionJob struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"not null;index" json:"orderId"` // foreign key to orders table
	Order     Order   `gorm:"foreignKey:OrderID" json:"-"`   // don't include full order in JSON
	Stage     string  `gorm:"not null;default:'queued'" json:"stage"` // queued, printing, cutting, completed
	MachineID *string `json:"machineId"`
	Progress  int     `gorm:"not null;default:0;check:progress >= 0 AND progress <= 100" json:"progress"`
	Status    string  `gorm:"not null;default:'on_time'" json:"status"` // on_time, delayed
}

// TableName specifies the table name for the ProductionJob model
func (ProductionJob) TableName() string {
	return "production_queue"
}
