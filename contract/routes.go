// Package contract is the single source of truth for the HTTP surface:
// route definitions, request bodies and response shapes. Both the server
// (controllers) and the Go client validate against it, so the two sides
// can never drift apart.
package contract

import (
	"net/http"
	"strings"
)

// Route identifies one API operation by method and path. Paths use gin-style
// ":param" placeholders; use BuildURL to substitute concrete values.
type Route struct {
	Method string
	Path   string
}

var (
	DashboardStats = Route{Method: http.MethodGet, Path: "/api/stats"}

	OrdersList    = Route{Method: http.MethodGet, Path: "/api/orders"}
	OrdersCreate  = Route{Method: http.MethodPost, Path: "/api/orders"}
	OrdersGet     = Route{Method: http.MethodGet, Path: "/api/orders/:id"}
	OrdersArtwork = Route{Method: http.MethodPost, Path: "/api/orders/:id/artwork"}

	ProductionList   = Route{Method: http.MethodGet, Path: "/api/production"}
	ProductionUpdate = Route{Method: http.MethodPatch, Path: "/api/production/:id"}

	ShipmentsList = Route{Method: http.MethodGet, Path: "/api/shipments"}

	AlertsList    = Route{Method: http.MethodGet, Path: "/api/alerts"}
	AlertMarkRead = Route{Method: http.MethodPost, Path: "/api/alerts/:id/read"}

	AuthUser = Route{Method: http.MethodGet, Path: "/api/auth/user"}
	Login    = Route{Method: http.MethodGet, Path: "/api/login"}
	Callback = Route{Method: http.MethodGet, Path: "/api/callback"}
	Logout   = Route{Method: http.MethodGet, Path: "/api/logout"}
)

// BuildURL substitutes ":param" placeholders in a route path with the
// provided values. Unknown params are ignored; missing ones are left as-is.
func BuildURL(path string, params map[string]string) string {
	url := path
	for key, value := range params {
		url = strings.Replace(url, ":"+key, value, 1)
	}
	return url
}
