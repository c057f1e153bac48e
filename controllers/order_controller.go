package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printflow/printflow-logistics-api/contract"
	"github.com/printflow/printflow-logistics-api/models"
	"github.com/printflow/printflow-logistics-api/services"
	"github.com/printflow/printflow-logistics-api/storage"
)

// OrderController serves the order endpoints.
type OrderController struct {
	store   storage.Store
	artwork services.ArtworkService // nil when no artwork backend is configured
}

// NewOrderController creates an order controller backed by the given store.
// artwork may be nil; orders are then served without presigned artwork URLs.
func NewOrderController(store storage.Store, artwork services.ArtworkService) *OrderController {
	return &OrderController{store: store, artwork: artwork}
}

// ListOrders handles GET /api/orders - all orders, newest first
func (ctl *OrderController) ListOrders(c *gin.Context) {
	orders, err := ctl.store.GetOrders()
	if err != nil {
		respondInternal(c, err)
		return
	}
	for i := range orders {
		attachArtworkURL(ctl.artwork, &orders[i])
	}
	c.JSON(http.StatusOK, orders)
}

// CreateOrder handles POST /api/orders - creates an order together with
// its initial queued production job
func (ctl *OrderController) CreateOrder(c *gin.Context) {
	var req contract.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := ctl.store.CreateOrder(req)
	if err != nil {
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrder handles GET /api/orders/:id - a single order
func (ctl *OrderController) GetOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := ctl.store.GetOrder(id)
	if err != nil {
		respondInternal(c, err)
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, contract.NotFoundResponse{Message: "Order not found"})
		return
	}

	attachArtworkURL(ctl.artwork, order)
	c.JSON(http.StatusOK, order)
}

// attachArtworkURL fills the computed ArtworkURL field for orders that
// carry an uploaded artwork file.
func attachArtworkURL(svc services.ArtworkService, order *models.Order) {
	if svc == nil || order.ArtworkS3Key == nil || *order.ArtworkS3Key == "" {
		return
	}
	url, err := svc.GetArtworkURL(*order.ArtworkS3Key)
	if err != nil || url == "" {
		return
	}
	order.ArtworkURL = &url
}
