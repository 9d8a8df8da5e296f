package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-presence-api/internal/application/services"
	"user-presence-api/internal/domain/errs"
)

// statusOf maps a service error to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrDuplicateEmail),
		errors.Is(err, errs.ErrDuplicateUsername),
		errors.Is(err, errs.ErrStatusExists):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValidation), errors.Is(err, errs.ErrInvalidPayload):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err to the client. Unexpected errors are logged and
// replaced with fallback so internals do not leak.
func respondError(c *gin.Context, logger *zap.Logger, op, fallback string, err error) {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		logger.Error(op+" error", zap.Error(err))
		c.JSON(code, gin.H{"error": fallback})
		return
	}

	c.JSON(code, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, details any) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "invalid request body",
		"details": details,
	})
}
