// Package client is a typed consumer of the printflow API. Queries are
// cached per endpoint path and shared between concurrent callers, the way
// the dashboard's views share one in-flight request and one result.
// Mutations invalidate the query keys they affect through a central
// dependency graph, which is the only cross-resource consistency
// mechanism; there is no server push.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/printflow/printflow-logistics-api/contract"
	"github.com/printflow/printflow-logistics-api/models"
)

// invalidations maps each mutation route to the query keys it affects.
// Evaluated centrally in mutate so a new resource cannot silently miss
// an invalidation. Values are path templates; mutation params are
// substituted before invalidating.
var invalidations = map[contract.Route][]string{
	contract.OrdersCreate:     {contract.OrdersList.Path, contract.DashboardStats.Path},
	contract.ProductionUpdate: {contract.ProductionList.Path},
	contract.AlertMarkRead:    {contract.AlertsList.Path},
}

// APIError is a non-2xx response decoded per the error contract.
type APIError struct {
	StatusCode int
	Message    string
	Field      string
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("api error %d: %s (field %s)", e.StatusCode, e.Message, e.Field)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client is a typed API client with per-endpoint caching.
type Client struct {
	baseURL    string
	httpClient *http.Client

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string][]byte
}

// New creates a client for the API at baseURL. When httpClient is nil a
// default client with a cookie jar is used, so the session cookie set by
// the login flow is carried on every call.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		jar, _ := cookiejar.New(nil)
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		cache:      make(map[string][]byte),
	}
}

// Invalidate drops the cached results for the given query keys. The next
// query for each key fetches fresh data.
func (c *Client) Invalidate(keys ...string) {
	c.mu.Lock()
	for _, key := range keys {
		delete(c.cache, key)
	}
	c.mu.Unlock()
}

// query returns the cached result for the key, or fetches it. Concurrent
// queries for the same key share a single in-flight request.
func (c *Client) query(key string) ([]byte, error) {
	c.mu.RLock()
	cached, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	data, err, _ := c.group.Do(key, func() (interface{}, error) {
		body, err := c.do(http.MethodGet, key, nil, http.StatusOK)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.cache[key] = body
		c.mu.Unlock()
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return data.([]byte), nil
}

// mutate performs a mutation and invalidates the affected query keys from
// the dependency graph.
func (c *Client) mutate(route contract.Route, params map[string]string, body interface{}, wantStatus int) ([]byte, error) {
	url := contract.BuildURL(route.Path, params)
	respBody, err := c.do(route.Method, url, body, wantStatus)
	if err != nil {
		return nil, err
	}
	for _, template := range invalidations[route] {
		c.Invalidate(contract.BuildURL(template, params))
	}
	return respBody, nil
}

// do issues one HTTP request and enforces the expected success status.
func (c *Client) do(method, path string, body interface{}, wantStatus int) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != wantStatus {
		return nil, decodeAPIError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

// decodeAPIError maps an error response onto APIError, tolerating bodies
// that don't match the error contract.
func decodeAPIError(status int, body []byte) error {
	var payload contract.ValidationErrorResponse
	if err := json.Unmarshal(body, &payload); err != nil || payload.Message == "" {
		return &APIError{StatusCode: status, Message: http.StatusText(status)}
	}
	return &APIError{StatusCode: status, Message: payload.Message, Field: payload.Field}
}

// DashboardStats fetches the dashboard aggregate.
func (c *Client) DashboardStats() (*contract.DashboardStatsResponse, error) {
	data, err := c.query(contract.DashboardStats.Path)
	if err != nil {
		return nil, err
	}
	var stats contract.DashboardStatsResponse
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode stats: %w", err)
	}
	return &stats, nil
}

// Orders fetches all orders, newest first.
func (c *Client) Orders() ([]models.Order, error) {
	data, err := c.query(contract.OrdersList.Path)
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

// Order fetches a single order by id.
func (c *Client) Order(id uint) (*models.Order, error) {
	data, err := c.query(contract.BuildURL(contract.OrdersGet.Path, idParam(id)))
	if err != nil {
		return nil, err
	}
	var order models.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("failed to decode order: %w", err)
	}
	return &order, nil
}

// CreateOrder creates an order and invalidates the orders list and the
// dashboard stats.
func (c *Client) CreateOrder(req contract.CreateOrderRequest) (*models.Order, error) {
	data, err := c.mutate(contract.OrdersCreate, nil, req, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	var order models.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("failed to decode order: %w", err)
	}
	return &order, nil
}

// ProductionQueue fetches all production jobs.
func (c *Client) ProductionQueue() ([]models.ProductionJob, error) {
	data, err := c.query(contract.ProductionList.Path)
	if err != nil {
		return nil, err
	}
	var jobs []models.ProductionJob
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode production queue: %w", err)
	}
	return jobs, nil
}

// UpdateProductionJob applies a partial update to a job and invalidates
// the production list.
func (c *Client) UpdateProductionJob(id uint, req contract.UpdateProductionJobRequest) (*models.ProductionJob, error) {
	data, err := c.mutate(contract.ProductionUpdate, idParam(id), req, http.StatusOK)
	if err != nil {
		return nil, err
	}
	var job models.ProductionJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to decode production job: %w", err)
	}
	return &job, nil
}

// Shipments fetches all shipments.
func (c *Client) Shipments() ([]models.Shipment, error) {
	data, err := c.query(contract.ShipmentsList.Path)
	if err != nil {
		return nil, err
	}
	var shipments []models.Shipment
	if err := json.Unmarshal(data, &shipments); err != nil {
		return nil, fmt.Errorf("failed to decode shipments: %w", err)
	}
	return shipments, nil
}

// Alerts fetches all alerts, newest first.
func (c *Client) Alerts() ([]models.Alert, error) {
	data, err := c.query(contract.AlertsList.Path)
	if err != nil {
		return nil, err
	}
	var alerts []models.Alert
	if err := json.Unmarshal(data, &alerts); err != nil {
		return nil, fmt.Errorf("failed to decode alerts: %w", err)
	}
	return alerts, nil
}

// MarkAlertRead marks an alert as read and invalidates the alerts list.
func (c *Client) MarkAlertRead(id uint) (*models.Alert, error) {
	data, err := c.mutate(contract.AlertMarkRead, idParam(id), nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	var alert models.Alert
	if err := json.Unmarshal(data, &alert); err != nil {
		return nil, fmt.Errorf("failed to decode alert: %w", err)
	}
	return &alert, nil
}

func idParam(id uint) map[string]string {
	return map[string]string{"id": strconv.FormatUint(uint64(id), 10)}
}
