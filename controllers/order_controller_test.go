package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/printflow/printflow-logistics-api/contract"
	"github.com/printflow/printflow-logistics-api/models"
	"github.com/printflow/printflow-logistics-api/storage"
)

func setupControllerTestStore(t *testing.T) *storage.GormStore {
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

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

func TestCreateOrder(t *testing.T) {
	store := setupControllerTestStore(t)
	ctl := NewOrderController(store, nil)

	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedField  string
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name: "Successfully create order",
			requestBody: map[string]interface{}{
				"customerName": "Acme Corp",
				"productType":  "Business Cards",
				"quantity":     1000,
				"priority":     "high",
				"status":       "pending",
				"expectedDelivery": "2024-05-20",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				assert.Equal(t, "Acme Corp", response["customerName"])
				assert.Equal(t, "Business Cards", response["productType"])
				assert.Equal(t, float64(1000), response["quantity"])
				assert.Equal(t, "pending", response["status"])
				assert.Equal(t, "high", response["priority"])
				assert.Equal(t, "2024-05-20", response["expectedDelivery"])
				assert.NotZero(t, response["id"])
			},
		},
		{
			name: "Defaults applied when optional fields omitted",
			requestBody: map[string]interface{}{
				"customerName": "Globex Inc",
				"productType":  "Brochures",
				"quantity":     5000,
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				assert.Equal(t, "pending", response["status"])
				assert.Equal(t, "normal", response["priority"])
			},
		},
		{
			name: "Fail with missing customerName",
			requestBody: map[string]interface{}{
				"productType": "Business Cards",
				"quantity":    1000,
			},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "customerName",
		},
		{
			name: "Fail with missing quantity",
			requestBody: map[string]interface{}{
				"customerName": "Acme Corp",
				"productType":  "Business Cards",
			},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "quantity",
		},
		{
			name: "Fail with zero quantity",
			requestBody: map[string]interface{}{
				"customerName": "Acme Corp",
				"productType":  "Business Cards",
				"quantity":     0,
			},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "quantity",
		},
		{
			name: "Fail with negative quantity",
			requestBody: map[string]interface{}{
				"customerName": "Acme Corp",
				"productType":  "Business Cards",
				"quantity":     -5,
			},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "quantity",
		},
		{
			name: "Fail with unknown status",
			requestBody: map[string]interface{}{
				"customerName": "Acme Corp",
				"productType":  "Business Cards",
				"quantity":     10,
				"status":       "teleported",
			},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "status",
		},
		{
			name: "Fail with malformed delivery date",
			requestBody: map[string]interface{}{
				"customerName":     "Acme Corp",
				"productType":      "Business Cards",
				"quantity":         10,
				"expectedDelivery": "May 20th",
			},
			expectedStatus: http.StatusBadRequest,
			expectedField:  "expectedDelivery",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/api/orders", ctl.CreateOrder)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/api/orders", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			assert.NoError(t, err)

			if tt.expectedField != "" {
				assert.Equal(t, tt.expectedField, response["field"])
				assert.NotEmpty(t, response["message"])
			}

			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestCreateOrder_ValidationFailureCreatesNoRows(t *testing.T) {
	store := setupControllerTestStore(t)
	ctl := NewOrderController(store, nil)

	router := setupTestRouter()
	router.POST("/api/orders", ctl.CreateOrder)

	body, _ := json.Marshal(map[string]interface{}{
		"productType": "Business Cards",
		"quantity":    0,
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	orders, err := store.GetOrders()
	assert.NoError(t, err)
	assert.Empty(t, orders, "Rejected request must not create an order")

	jobs, err := store.GetProductionQueue()
	assert.NoError(t, err)
	assert.Empty(t, jobs, "Rejected request must not create a job")
}

func TestListOrders_NewestFirst(t *testing.T) {
	store := setupControllerTestStore(t)
	ctl := NewOrderController(store, nil)

	for i, name := range []string{"First Co", "Second Co", "Third Co"} {
		_, err := store.CreateOrder(contract.CreateOrderRequest{
			CustomerName: name,
			ProductType:  "Posters",
			Quantity:     (i + 1) * 10,
		})
		assert.NoError(t, err)
	}

	router := setupTestRouter()
	router.GET("/api/orders", ctl.ListOrders)

	req, _ := http.NewRequest(http.MethodGet, "/api/orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var orders []map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &orders)
	assert.NoError(t, err)
	assert.Len(t, orders, 3)
	assert.Equal(t, "Third Co", orders[0]["customerName"])
	assert.Equal(t, "First Co", orders[2]["customerName"])
}

func TestGetOrder(t *testing.T) {
	store := setupControllerTestStore(t)
	ctl := NewOrderController(store, nil)

	order, err := store.CreateOrder(contract.CreateOrderRequest{
		CustomerName: "Acme Corp",
		ProductType:  "Business Cards",
		Quantity:     1000,
	})
	assert.NoError(t, err)

	router := setupTestRouter()
	router.GET("/api/orders/:id", ctl.GetOrder)

	// Existing order
	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Acme Corp", response["customerName"])

	// Unknown id: 404 with a body holding only "message"
	req, _ = http.NewRequest(http.MethodGet, "/api/orders/999", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	response = nil
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response, 1, "404 body should carry only the message field")
	assert.Equal(t, "Order not found", response["message"])

	// Non-numeric id: 400
	req, _ = http.NewRequest(http.MethodGet, "/api/orders/abc", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestOrderLifecycleScenario walks the documented flow: create a high
// priority order, advance its job onto a press, and observe the queue.
func TestOrderLifecycleScenario(t *testing.T) {
	store := setupControllerTestStore(t)
	orderCtl := NewOrderController(store, nil)
	productionCtl := NewProductionController(store)

	router := setupTestRouter()
	router.POST("/api/orders", orderCtl.CreateOrder)
	router.PATCH("/api/production/:id", productionCtl.UpdateProductionJob)
	router.GET("/api/production", productionCtl.ListProductionQueue)

	// Create the order
	body, _ := json.Marshal(map[string]interface{}{
		"customerName":     "Acme Corp",
		"productType":      "Business Cards",
		"quantity":         1000,
		"priority":         "high",
		"status":           "pending",
		"expectedDelivery": "2024-05-20",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var created map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "pending", created["status"])
	orderID := uint(created["id"].(float64))

	// The linked job exists and is queued
	job, err := store.GetProductionJobByOrder(orderID)
	assert.NoError(t, err)
	assert.NotNil(t, job)
	assert.Equal(t, "queued", job.Stage)

	// Advance it onto the press
	body, _ = json.Marshal(map[string]interface{}{
		"stage":     "printing",
		"progress":  45,
		"machineId": "PRINTER-01",
	})
	req, _ = http.NewRequest(http.MethodPatch, fmt.Sprintf("/api/production/%d", job.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// The queue reflects exactly those fields
	req, _ = http.NewRequest(http.MethodGet, "/api/production", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var jobs []map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &jobs))
	assert.Len(t, jobs, 1)
	assert.Equal(t, "printing", jobs[0]["stage"])
	assert.Equal(t, float64(45), jobs[0]["progress"])
	assert.Equal(t, "PRINTER-01", jobs[0]["machineId"])
}
