package storage

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/printflow/printflow-logistics-api/contract"
	"github.com/printflow/printflow-logistics-api/models"
)

// GormStore implements Store on top of a GORM database handle.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by the given database connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// GetUser returns the user row, or nil without error when the id is unknown.
func (s *GormStore) GetUser(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpsertUser inserts the user, or updates all provided fields and refreshes
// the updated_at timestamp when a row with the same id already exists.
// Repeated identical calls are idempotent.
func (s *GormStore) UpsertUser(user *models.User) (*models.User, error) {
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		// Role is deliberately not in the update set: the identity provider
		// owns profile fields, role assignment stays with the application.
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "first_name", "last_name", "updated_at",
		}),
	}).Create(user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	var saved models.User
	if err := s.db.First(&saved, "id = ?", user.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to load upserted user: %w", err)
	}
	return &saved, nil
}

// UpdateUserRole changes a user's role. Roles are assigned by operators,
// never by the login flow. Returns ErrNotFound for an unknown id.
func (s *GormStore) UpdateUserRole(id string, role string) error {
	result := s.db.Model(&models.User{}).Where("id = ?", id).Update("role", role)
	if result.Error != nil {
		return fmt.Errorf("failed to update user role: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes the user row. Sessions referencing the user are left
// in place; Resolve treats them as anonymous and they age out with the TTL.
func (s *GormStore) DeleteUser(id string) error {
	result := s.db.Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetOrders returns all orders, newest created_at first. Ties are broken by
// id descending so that later inserts within the same timestamp sort first.
func (s *GormStore) GetOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := s.db.Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns the order row, or nil without error when the id is unknown.
func (s *GormStore) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// CreateOrder inserts the order row and its initial production job
// (stage=queued, progress=0, status=on_time) in one transaction. No order
// may ever be visible without its queued job, even to a concurrent reader.
func (s *GormStore) CreateOrder(input contract.CreateOrderRequest) (*models.Order, error) {
	order := models.Order{
		CustomerName:     input.CustomerName,
		ProductType:      input.ProductType,
		Quantity:         input.Quantity,
		Status:           input.Status,
		Priority:         input.Priority,
		ExpectedDelivery: input.ExpectedDelivery,
	}
	if order.Status == "" {
		order.Status = "pending"
	}
	if order.Priority == "" {
		order.Priority = "normal"
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		job := models.ProductionJob{
			OrderID:  order.ID,
			Stage:    "queued",
			Progress: 0,
			Status:   "on_time",
		}
		if err := tx.Create(&job).Error; err != nil {
			return fmt.Errorf("failed to create production job: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// SetOrderArtwork records the storage key of an uploaded artwork file.
func (s *GormStore) SetOrderArtwork(id uint, s3Key string) (*models.Order, error) {
	result := s.db.Model(&models.Order{}).Where("id = ?", id).Update("artwork_s3_key", s3Key)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to set order artwork: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetOrder(id)
}

// GetProductionQueue returns all production jobs ordered by id. The source
// guarantees no particular order; id gives a stable one.
func (s *GormStore) GetProductionQueue() ([]models.ProductionJob, error) {
	var jobs []models.ProductionJob
	if err := s.db.Order("id").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list production queue: %w", err)
	}
	return jobs, nil
}

// GetProductionJobByOrder returns the job referencing the given order,
// or nil without error when none exists.
func (s *GormStore) GetProductionJobByOrder(orderID uint) (*models.ProductionJob, error) {
	var job models.ProductionJob
	if err := s.db.First(&job, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get production job: %w", err)
	}
	return &job, nil
}

// UpdateProductionJob applies only the fields present in the request and
// returns the updated row. An empty update leaves the row unchanged.
// Returns ErrNotFound when the id does not exist; there are no upsert
// semantics here.
func (s *GormStore) UpdateProductionJob(id uint, updates contract.UpdateProductionJobRequest) (*models.ProductionJob, error) {
	var job models.ProductionJob
	if err := s.db.First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get production job: %w", err)
	}

	columns := make(map[string]interface{})
	if updates.OrderID != nil {
		columns["order_id"] = *updates.OrderID
	}
	if updates.Stage != nil {
		columns["stage"] = *updates.Stage
	}
	if updates.MachineID != nil {
		columns["machine_id"] = *updates.MachineID
	}
	if updates.Progress != nil {
		columns["progress"] = *updates.Progress
	}
	if updates.Status != nil {
		columns["status"] = *updates.Status
	}
	if len(columns) == 0 {
		return &job, nil
	}

	if err := s.db.Model(&job).Updates(columns).Error; err != nil {
		return nil, fmt.Errorf("failed to update production job: %w", err)
	}
	if err := s.db.First(&job, id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload production job: %w", err)
	}
	return &job, nil
}

// GetShipments returns all shipments ordered by id.
func (s *GormStore) GetShipments() ([]models.Shipment, error) {
	var shipments []models.Shipment
	if err := s.db.Order("id").Find(&shipments).Error; err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}
	return shipments, nil
}

// CreateShipment inserts a shipment row. Not routed through the API;
// used by seeding and out-of-band tooling.
func (s *GormStore) CreateShipment(shipment *models.Shipment) (*models.Shipment, error) {
	if err := s.db.Create(shipment).Error; err != nil {
		return nil, fmt.Errorf("failed to create shipment: %w", err)
	}
	return shipment, nil
}

// GetAlerts returns all alerts, newest created_at first.
func (s *GormStore) GetAlerts() ([]models.Alert, error) {
	var alerts []models.Alert
	if err := s.db.Order("created_at DESC, id DESC").Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

// CreateAlert inserts an alert row. Not routed through the API; used by
// seeding and out-of-band tooling.
func (s *GormStore) CreateAlert(alert *models.Alert) (*models.Alert, error) {
	if err := s.db.Create(alert).Error; err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}
	return alert, nil
}

// MarkAlertRead sets is_read unconditionally, so repeated calls succeed and
// leave the row in the same state. Returns ErrNotFound for an unknown id.
func (s *GormStore) MarkAlertRead(id uint) (*models.Alert, error) {
	var alert models.Alert
	if err := s.db.First(&alert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}

	if err := s.db.Model(&alert).Update("is_read", true).Error; err != nil {
		return nil, fmt.Errorf("failed to mark alert read: %w", err)
	}
	alert.IsRead = true
	return &alert, nil
}

// dashboardStatsRow maps the raw aggregate query onto named, typed columns
// so the result is validated once at this boundary instead of cast blindly.
type dashboardStatsRow struct {
	TotalOrders        int
	OrdersInProduction int
	OrdersInTransit    int
	DelayedJobs        int
}

// GetDashboardStats computes the dashboard aggregate in a single query.
// It is a point-in-time read recomputed on every call.
func (s *GormStore) GetDashboardStats() (*contract.DashboardStatsResponse, error) {
	var row dashboardStatsRow
	err := s.db.Raw(`
		SELECT
			(SELECT COUNT(*) FROM orders) AS total_orders,
			(SELECT COUNT(*) FROM orders WHERE status = 'production') AS orders_in_production,
			(SELECT COUNT(*) FROM orders WHERE status = 'shipping') AS orders_in_transit,
			(SELECT COUNT(*) FROM production_queue WHERE status = 'delayed') AS delayed_jobs
	`).Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}
	return &contract.DashboardStatsResponse{
		TotalOrders:        row.TotalOrders,
		OrdersInProduction: row.OrdersInProduction,
		OrdersInTransit:    row.OrdersInTransit,
		DelayedJobs:        row.DelayedJobs,
	}, nil
}

// CreateSession inserts a session row.
func (s *GormStore) CreateSession(session *models.Session) error {
	if err := s.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSession returns the session, or nil without error when the sid is
// unknown or the session has expired. Expired rows are deleted on read.
func (s *GormStore) GetSession(sid string) (*models.Session, error) {
	var session models.Session
	if err := s.db.First(&session, "sid = ?", sid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.db.Delete(&models.Session{}, "sid = ?", sid).Error
		return nil, nil
	}
	return &session, nil
}

// DeleteSession removes a session row. Deleting an unknown sid is not an error.
func (s *GormStore) DeleteSession(sid string) error {
	if err := s.db.Delete(&models.Session{}, "sid = ?", sid).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes every session that expired before now.
func (s *GormStore) DeleteExpiredSessions(now time.Time) error {
	if err := s.db.Delete(&models.Session{}, "expires_at < ?", now).Error; err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}
