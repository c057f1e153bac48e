package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printflow/printflow-logistics-api/storage"
)

// StatsController serves the dashboard aggregate.
type StatsController struct {
	store storage.Store
}

// NewStatsController creates a stats controller backed by the given store.
func NewStatsController(store storage.Store) *StatsController {
	return &StatsController{store: store}
}

// GetDashboardStats handles GET /api/stats - recomputed from current
// storage state on every call
func (ctl *StatsController) GetDashboardStats(c *gin.Context) {
	stats, err := ctl.store.GetDashboardStats()
	if err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
