package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"franchises-backend/pagination"
	"franchises-backend/repositories"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// storageTimeout bounds every repository call issued from a handler.
const storageTimeout = 5 * time.Second

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), storageTimeout)
}

// respondError translates the repository error taxonomy into HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrFranchiseNotFound),
		errors.Is(err, repositories.ErrBranchNotFound),
		errors.Is(err, repositories.ErrProductNotFound),
		errors.Is(err, repositories.ErrNoProductsInBranch):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repositories.ErrInvalidDelta),
		errors.Is(err, repositories.ErrPrefixRequired),
		errors.Is(err, pagination.ErrInvalidCursor):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repositories.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, repositories.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// pathUUID parses a uuid path parameter, responding 400 on garbage.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " path parameter"})
		return uuid.Nil, false
	}
	return id, true
}

// queryLimit reads the limit query param. Unparseable or missing values fall
// through as 0; the repository clamps to its configured bounds.
func queryLimit(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		return 0
	}
	return n
}
