// Package storage is the data-access layer. A Store is constructed once at
// process start and injected into the controllers, so tests can substitute
// their own instance and run in parallel.
package storage

import (
	"errors"
	"time"

	"github.com/printflow/printflow-logistics-api/contract"
	"github.com/printflow/printflow-logistics-api/models"
)

// ErrNotFound is returned when an operation references an id that does
// not exist. Controllers translate it to a 404.
var ErrNotFound = errors.New("record not found")

// Store exposes one operation per entity-verb pair. It owns no business
// logic beyond the single cross-entity side effect in CreateOrder.
type Store interface {
	// Users
	GetUser(id string) (*models.User, error) // nil, nil when absent
	UpsertUser(user *models.User) (*models.User, error)
	UpdateUserRole(id string, role string) error
	DeleteUser(id string) error

	// Orders
	GetOrders() ([]models.Order, error)
	GetOrder(id uint) (*models.Order, error) // nil, nil when absent
	CreateOrder(input contract.CreateOrderRequest) (*models.Order, error)
	SetOrderArtwork(id uint, s3Key string) (*models.Order, error)

	// Production
	GetProductionQueue() ([]models.ProductionJob, error)
	GetProductionJobByOrder(orderID uint) (*models.ProductionJob, error)
	UpdateProductionJob(id uint, updates contract.UpdateProductionJobRequest) (*models.ProductionJob, error)

	// Shipments
	GetShipments() ([]models.Shipment, error)
	CreateShipment(shipment *models.Shipment) (*models.Shipment, error)

	// Alerts
	GetAlerts() ([]models.Alert, error)
	CreateAlert(alert *models.Alert) (*models.Alert, error)
	MarkAlertRead(id uint) (*models.Alert, error)

	// Stats
	GetDashboardStats() (*contract.DashboardStatsResponse, error)

	// Sessions
	CreateSession(session *models.Session) error
	GetSession(sid string) (*models.Session, error) // nil, nil when absent or expired
	DeleteSession(sid string) error
	DeleteExpiredSessions(now time.Time) error
}
