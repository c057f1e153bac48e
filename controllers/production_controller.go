package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printflow/printflow-logistics-api/contract"
	"github.com/printflow/printflow-logistics-api/storage"
)

// ProductionController serves the production-queue endpoints.
type ProductionController struct {
	store storage.Store
}

// NewProductionController creates a production controller backed by the given store.
func NewProductionController(store storage.Store) *ProductionController {
	return &ProductionController{store: store}
}

// ListProductionQueue handles GET /api/production - all production jobs
func (ctl *ProductionController) ListProductionQueue(c *gin.Context) {
	jobs, err := ctl.store.GetProductionQueue()
	if err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// UpdateProductionJob handles PATCH /api/production/:id - applies only the
// fields present in the body. An empty body is valid and changes nothing.
func (ctl *ProductionController) UpdateProductionJob(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req contract.UpdateProductionJobRequest
	if !bindJSON(c, &req) {
		return
	}

	job, err := ctl.store.UpdateProductionJob(id, req)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, contract.NotFoundResponse{Message: "Production job not found"})
			return
		}
		respondInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}
