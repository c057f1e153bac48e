package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/printflow/printflow-logistics-api/config"
	"github.com/printflow/printflow-logistics-api/models"
	"github.com/printflow/printflow-logistics-api/storage"
)

// TestHealthCheck is a unit test for the healthCheck handler function
func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	healthCheck(c)

	assert.Equal(t, http.StatusOK, w.Code, "Expected status code 200")

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err, "Response should be valid JSON")

	assert.Equal(t, true, response["success"], "Expected success to be true")
	assert.Equal(t, "Printflow Logistics API is running", response["message"], "Expected correct message")
}

// TestHealthCheckResponseFormat tests the exact JSON format
func TestHealthCheckResponseFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	healthCheck(c)

	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response, 2, "Response should have exactly 2 fields")
	assert.Contains(t, response, "success")
	assert.Contains(t, response, "message")
}

// TestDatabaseStatus verifies the database status endpoint against a live
// in-memory database
func TestDatabaseStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Order{}, &models.Alert{}))
	config.SetDB(db)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	databaseStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "Database connected", response["message"])

	tables, ok := response["tables"].([]interface{})
	assert.True(t, ok)
	assert.Contains(t, tables, "orders")
	assert.Contains(t, tables, "alerts")
}

func setupSeedTestStore(t *testing.T) *storage.GormStore {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Order{},
		&models.ProductionJob{},
		&models.Shipment{},
		&models.Alert{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return storage.NewGormStore(db)
}

// TestSeedDatabase verifies the sample data inserted on first run
func TestSeedDatabase(t *testing.T) {
	store := setupSeedTestStore(t)

	assert.NoError(t, seedDatabase(store))

	orders, err := store.GetOrders()
	assert.NoError(t, err)
	assert.Len(t, orders, 2)

	jobs, err := store.GetProductionQueue()
	assert.NoError(t, err)
	assert.Len(t, jobs, 2)
	assert.Equal(t, "printing", jobs[0].Stage)
	assert.Equal(t, 45, jobs[0].Progress)
	assert.NotNil(t, jobs[0].MachineID)
	assert.Equal(t, "PRINTER-01", *jobs[0].MachineID)
	assert.Equal(t, "queued", jobs[1].Stage)

	shipments, err := store.GetShipments()
	assert.NoError(t, err)
	assert.Len(t, shipments, 1)
	assert.Equal(t, "TRK-48291", shipments[0].TrackingCode)

	alerts, err := store.GetAlerts()
	assert.NoError(t, err)
	assert.Len(t, alerts, 2)
}

// TestSeedDatabase_SkipsNonEmptyDatabase verifies seeding never duplicates data
func TestSeedDatabase_SkipsNonEmptyDatabase(t *testing.T) {
	store := setupSeedTestStore(t)

	assert.NoError(t, seedDatabase(store))
	assert.NoError(t, seedDatabase(store))

	orders, err := store.GetOrders()
	assert.NoError(t, err)
	assert.Len(t, orders, 2, "Seeding twice must not duplicate orders")

	alerts, err := store.GetAlerts()
	assert.NoError(t, err)
	assert.Len(t, alerts, 2, "Seeding twice must not duplicate alerts")
}
