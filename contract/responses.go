package contract

// DashboardStatsResponse is the aggregate returned by GET /api/stats.
// It is recomputed from current storage state on every call; there is
// no caching layer that could drift from the orders table.
type DashboardStatsResponse struct {
	TotalOrders        int `json:"totalOrders"`
	OrdersInProduction int `json:"ordersInProduction"`
	OrdersInTransit    int `json:"ordersInTransit"`
	DelayedJobs        int `json:"delayedJobs"`
}

// ValidationErrorResponse is the 400 payload. Field names the first
// request-body property that failed validation, in its JSON spelling.
type ValidationErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// NotFoundResponse is the 404 payload.
type NotFoundResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the generic error payload for 401 and 500 responses.
// Internal detail is never included.
type ErrorResponse struct {
	Message string `json:"message"`
}
