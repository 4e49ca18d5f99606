package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/XinhoGOD/ARCHVTEL/internal/api/shared/errors"
	"github.com/XinhoGOD/ARCHVTEL/internal/logger"
)

// errorResponse wraps the error body so clients always get {"error": {...}}
type errorResponse struct {
	Error *apierrors.APIError `json:"error"`
}

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: apierrors.NewBadRequestError(message, details...)})
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, errorResponse{Error: apierrors.NewNotFoundError(message, details...)})
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, details string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: apierrors.NewValidationError(details)})
}

// respondUpstreamError logs the underlying failure and responds with a
// sanitized body: timeouts become 504, every other store failure 500.
// Internal error detail never reaches the client.
func respondUpstreamError(c *gin.Context, err error, message string) {
	logger.ErrorCtx(c.Request.Context(), err,
		zap.String("path", c.Request.URL.Path),
		zap.String("query", c.Request.URL.RawQuery),
	)

	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) && apiErr.Code == apierrors.ErrCodeTimeout {
		c.JSON(http.StatusGatewayTimeout, errorResponse{Error: apierrors.NewTimeoutError(message)})
		return
	}

	c.JSON(http.StatusInternalServerError, errorResponse{Error: apierrors.NewInternalError(message)})
}
