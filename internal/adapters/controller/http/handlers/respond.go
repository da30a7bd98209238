package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unimeet/unimeet-api/internal/adapters/logger"
	"github.com/unimeet/unimeet-api/internal/domain/common/errorz"
)

// respondError maps domain errors onto HTTP statuses. Unrecognized errors
// become opaque 500s so internals never leak to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errorz.ErrValidation),
		errors.Is(err, errorz.ErrInvalidEmail):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	case errors.Is(err, errorz.ErrInvalidCredentials),
		errors.Is(err, errorz.ErrInvalidToken),
		errors.Is(err, errorz.ErrTokenExpired),
		errors.Is(err, errorz.ErrInvalidCode),
		errors.Is(err, errorz.ErrCodeExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
	case errors.Is(err, errorz.ErrForbidden),
		errors.Is(err, errorz.ErrUserInactive),
		errors.Is(err, errorz.ErrEmailNotConfirmed),
		errors.Is(err, errorz.ErrPasswordNotSet):
		c.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})
	case errors.Is(err, errorz.ErrUserNotFound),
		errors.Is(err, errorz.ErrClubNotFound),
		errors.Is(err, errorz.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
	case errors.Is(err, errorz.ErrEmailInUse):
		c.JSON(http.StatusConflict, gin.H{"msg": err.Error()})
	default:
		logger.Log.Errorf("unhandled error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
	}
}
