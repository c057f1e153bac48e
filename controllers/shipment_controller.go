package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printflow/printflow-logistics-api/storage"
)

// ShipmentController serves the shipment endpoints. Shipments are
// read-only through the API; rows are seeded or inserted out-of-band.
type ShipmentController struct {
	store storage.Store
}

// NewShipmentController creates a shipment controller backed by the given store.
func NewShipmentController(store storage.Store) *ShipmentController {
	return &ShipmentController{store: store}
}

// ListShipments handles GET /api/shipments - all shipments
func (ctl *ShipmentController) ListShipments(c *gin.Context) {
	shipments, err := ctl.store.GetShipments()
	if err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, shipments)
}
