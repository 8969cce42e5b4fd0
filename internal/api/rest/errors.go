package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/tokenradar/tokenradar/internal/api/shared/errors"
	"github.com/tokenradar/tokenradar/internal/domain"
	"github.com/tokenradar/tokenradar/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, apierrors.NewNotFoundError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, err error) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		c.JSON(http.StatusBadRequest, apiErr)
		return
	}
	c.JSON(http.StatusBadRequest, apierrors.NewValidationError(err.Error()))
}

// respondExecutorError maps executor failures onto HTTP statuses: domain
// not-found sentinels become 404, everything else is a 500 with the detail
// logged server-side only.
func respondExecutorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrTokenNotFound):
		respondNotFound(c, "Token not found")
	case errors.Is(err, domain.ErrChannelNotFound):
		respondNotFound(c, "Channel not found")
	default:
		logger.Error(err)
		var apiErr *apierrors.APIError
		if errors.As(err, &apiErr) && apiErr.Code == apierrors.ErrCodeDatabaseError {
			c.JSON(http.StatusInternalServerError, apierrors.NewDatabaseError("Database operation failed"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierrors.NewInternalError("Internal server error"))
	}
}
