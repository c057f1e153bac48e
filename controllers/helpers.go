package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/printflow/printflow-logistics-api/contract"
)

// bindJSON binds and validates the request body against the contract,
// replying 400 with the first failing field on error. Returns false when
// the request has already been answered.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, contract.FirstInvalidField(err))
		return false
	}
	return true
}

// pathID parses the numeric :id path parameter, replying 400 when it is
// not a positive integer.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, contract.ValidationErrorResponse{
			Message: "id must be a positive integer",
			Field:   "id",
		})
		return 0, false
	}
	return uint(id), true
}

// respondInternal logs the failure server-side and replies 500 without
// leaking internal detail to the client.
func respondInternal(c *gin.Context, err error) {
	log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, contract.ErrorResponse{Message: "Internal server error"})
}
