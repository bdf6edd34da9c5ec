package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dilshanuk/salespoint/internal/domain/models"
)

// respondError translates the domain error taxonomy into HTTP responses.
// Conflict-class errors (stock shortage, illegal transition) keep their
// full message so clients can show it to the user.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		validationErr *models.ValidationError
		duplicateErr  *models.DuplicateError
		stockErr      *models.InsufficientStockError
		transitionErr *models.InvalidTransitionError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Message})
	case errors.As(err, &duplicateErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": duplicateErr.Message})
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Resource not found"})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{"message": stockErr.Error()})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, gin.H{"message": transitionErr.Error()})
	default:
		if logger != nil {
			logger.Error("request failed", zap.Error(err))
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}
