package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printflow/printflow-logistics-api/contract"
	"github.com/printflow/printflow-logistics-api/storage"
)

// AlertController serves the alert endpoints.
type AlertController struct {
	store storage.Store
}

// NewAlertController creates an alert controller backed by the given store.
func NewAlertController(store storage.Store) *AlertController {
	return &AlertController{store: store}
}

// ListAlerts handles GET /api/alerts - all alerts, newest first
func (ctl *AlertController) ListAlerts(c *gin.Context) {
	alerts, err := ctl.store.GetAlerts()
	if err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// MarkAlertRead handles POST /api/alerts/:id/read - sets isRead
// unconditionally, so repeated calls succeed
func (ctl *AlertController) MarkAlertRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	alert, err := ctl.store.MarkAlertRead(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, contract.NotFoundResponse{Message: "Alert not found"})
			return
		}
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, alert)
}
