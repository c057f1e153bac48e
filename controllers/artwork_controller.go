package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printflow/printflow-logistics-api/contract"
	"github.com/printflow/printflow-logistics-api/services"
	"github.com/printflow/printflow-logistics-api/storage"
	"github.com/printflow/printflow-logistics-api/utils"
)

// ArtworkController serves artwork uploads for orders.
type ArtworkController struct {
	store   storage.Store
	artwork services.ArtworkService
}

// NewArtworkController creates an artwork controller backed by the given
// store and artwork service.
func NewArtworkController(store storage.Store, artwork services.ArtworkService) *ArtworkController {
	return &ArtworkController{store: store, artwork: artwork}
}

// UploadArtwork handles POST /api/orders/:id/artwork - validates and stores
// the artwork file, records its key on the order and returns the order with
// a presigned artwork URL.
func (ctl *ArtworkController) UploadArtwork(c *gin.Context) {
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

	fileHeader, err := c.FormFile("artwork")
	if err != nil {
		c.JSON(http.StatusBadRequest, contract.ValidationErrorResponse{
			Message: "artwork file is required",
			Field:   "artwork",
		})
		return
	}

	if ctl.artwork == nil {
		respondInternal(c, errors.New("artwork storage is not configured"))
		return
	}

	s3Key, err := ctl.artwork.UploadArtwork(fileHeader)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			c.JSON(http.StatusBadRequest, contract.ValidationErrorResponse{
				Message: uploadErr.Message,
				Field:   "artwork",
			})
			return
		}
		respondInternal(c, err)
		return
	}

	updated, err := ctl.store.SetOrderArtwork(id, s3Key)
	if err != nil {
		respondInternal(c, err)
		return
	}

	attachArtworkURL(ctl.artwork, updated)
	c.JSON(http.StatusOK, updated)
}
