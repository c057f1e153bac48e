package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/printflow/printflow-logistics-api/contract"
)

// countingAPI is a minimal server that records how many times each path
// was fetched and serves canned responses.
type countingAPI struct {
	mu     sync.Mutex
	hits   map[string]int
	orders []map[string]interface{}
	delay  time.Duration
}

func newCountingAPI() *countingAPI {
	return &countingAPI{hits: make(map[string]int)}
}

func (a *countingAPI) hitCount(path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hits[path]
}

func (a *countingAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/orders", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.hits["GET /api/orders"]++
		orders := a.orders
		a.mu.Unlock()
		if a.delay > 0 {
			time.Sleep(a.delay)
		}
		if orders == nil {
			orders = []map[string]interface{}{}
		}
		_ = json.NewEncoder(w).Encode(orders)
	})

	mux.HandleFunc("POST /api/orders", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.hits["POST /api/orders"]++
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		body["id"] = len(a.orders) + 1
		a.orders = append([]map[string]interface{}{body}, a.orders...)
		a.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(body)
	})

	mux.HandleFunc("GET /api/stats", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.hits["GET /api/stats"]++
		total := len(a.orders)
		a.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]int{"totalOrders": total})
	})

	mux.HandleFunc("GET /api/production", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.hits["GET /api/production"]++
		a.mu.Unlock()
		_ = json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 1, "orderId": 1, "stage": "queued", "progress": 0, "status": "on_time"},
		})
	})

	mux.HandleFunc("PATCH /api/production/1", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.hits["PATCH /api/production/1"]++
		a.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id": 1, "orderId": 1, "stage": "printing", "progress": 45, "status": "on_time",
		})
	})

	return mux
}

func TestQueriesAreCached(t *testing.T) {
	api := newCountingAPI()
	server := httptest.NewServer(api.handler())
	defer server.Close()

	c := New(server.URL, nil)

	for i := 0; i < 5; i++ {
		orders, err := c.Orders()
		assert.NoError(t, err)
		assert.Empty(t, orders)
	}

	assert.Equal(t, 1, api.hitCount("GET /api/orders"), "Repeated queries should hit the server once")
}

func TestConcurrentQueriesShareOneRequest(t *testing.T) {
	api := newCountingAPI()
	api.delay = 50 * time.Millisecond
	server := httptest.NewServer(api.handler())
	defer server.Close()

	c := New(server.URL, nil)

	var wg sync.WaitGroup
	var failures int32
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Orders(); err != nil {
				atomic.AddInt32(&failures, 1)
			}
		}()
	}
	wg.Wait()

	assert.Zero(t, failures)
	assert.Equal(t, 1, api.hitCount("GET /api/orders"), "Concurrent queries should share one in-flight request")
}

func TestCreateOrderInvalidatesListsAndStats(t *testing.T) {
	api := newCountingAPI()
	server := httptest.NewServer(api.handler())
	defer server.Close()

	c := New(server.URL, nil)

	// Warm both caches
	_, err := c.Orders()
	assert.NoError(t, err)
	stats, err := c.DashboardStats()
	assert.NoError(t, err)
	assert.Equal(t, 0, stats.TotalOrders)

	// Unrelated cache stays warm across the mutation
	_, err = c.ProductionQueue()
	assert.NoError(t, err)

	order, err := c.CreateOrder(contract.CreateOrderRequest{
		CustomerName: "Acme Corp",
		ProductType:  "Business Cards",
		Quantity:     1000,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Acme Corp", order.CustomerName)

	// Both dependent queries refetch and see the new state
	orders, err := c.Orders()
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	stats, err = c.DashboardStats()
	assert.NoError(t, err)
	assert.Equal(t, 1, stats.TotalOrders)

	assert.Equal(t, 2, api.hitCount("GET /api/orders"))
	assert.Equal(t, 2, api.hitCount("GET /api/stats"))

	// The production queue was not invalidated
	_, err = c.ProductionQueue()
	assert.NoError(t, err)
	assert.Equal(t, 1, api.hitCount("GET /api/production"))
}

func TestUpdateProductionJobInvalidatesQueue(t *testing.T) {
	api := newCountingAPI()
	server := httptest.NewServer(api.handler())
	defer server.Close()

	c := New(server.URL, nil)

	_, err := c.ProductionQueue()
	assert.NoError(t, err)

	stage := "printing"
	progress := 45
	job, err := c.UpdateProductionJob(1, contract.UpdateProductionJobRequest{
		Stage:    &stage,
		Progress: &progress,
	})
	assert.NoError(t, err)
	assert.Equal(t, "printing", job.Stage)

	_, err = c.ProductionQueue()
	assert.NoError(t, err)
	assert.Equal(t, 2, api.hitCount("GET /api/production"), "Mutation should force a queue refetch")
}

func TestAPIErrorDecoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/orders":
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"message": "quantity must be greater than 0",
				"field":   "quantity",
			})
		case "/api/orders/999":
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Order not found"})
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("not json"))
		}
	}))
	defer server.Close()

	c := New(server.URL, nil)

	_, err := c.CreateOrder(contract.CreateOrderRequest{CustomerName: "Acme Corp", ProductType: "Posters", Quantity: 0})
	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "quantity must be greater than 0", apiErr.Message)
	assert.Equal(t, "quantity", apiErr.Field)

	_, err = c.Order(999)
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Order not found", apiErr.Message)
	assert.Empty(t, apiErr.Field)

	_, err = c.Shipments()
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), apiErr.Message, "Non-JSON bodies fall back to the status text")
}

func TestFailedQueryIsNotCached(t *testing.T) {
	var healthy atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Internal server error"})
			return
		}
		_ = json.NewEncoder(w).Encode([]map[string]interface{}{})
	}))
	defer server.Close()

	c := New(server.URL, nil)

	_, err := c.Orders()
	assert.Error(t, err)

	healthy.Store(true)
	orders, err := c.Orders()
	assert.NoError(t, err)
	assert.Empty(t, orders, "A failed fetch must not poison the cache")
}
