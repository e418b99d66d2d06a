package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fast-zero/internal/service"
)

const (
	detailConflict           = "Username or email already exists"
	detailForbidden          = "Not enough permission"
	detailNotFound           = "User not found"
	detailInvalidCredentials = "Incorrect username or password"
	detailInvalidToken       = "Could not validate credentials"
	detailNotAuthenticated   = "Not authenticated"
	detailTooManyAttempts    = "Too many login attempts"
	detailInvalidRequest     = "Invalid request"
	detailInternal           = "Internal server error"
)

func abortDetail(c *gin.Context, status int, detail string) {
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

// writeServiceError traduce errores de servicio al status y detail de la API.
func writeServiceError(c *gin.Context, logger *zap.Logger, op string, err error) {
	switch {
	case errors.Is(err, service.ErrConflict):
		abortDetail(c, http.StatusConflict, detailConflict)
	case errors.Is(err, service.ErrForbidden):
		abortDetail(c, http.StatusForbidden, detailForbidden)
	case errors.Is(err, service.ErrNotFound):
		abortDetail(c, http.StatusNotFound, detailNotFound)
	case errors.Is(err, service.ErrInvalidCredentials):
		abortDetail(c, http.StatusUnauthorized, detailInvalidCredentials)
	case errors.Is(err, service.ErrInvalidToken):
		abortDetail(c, http.StatusUnauthorized, detailInvalidToken)
	case errors.Is(err, service.ErrTooManyAttempts):
		abortDetail(c, http.StatusTooManyRequests, detailTooManyAttempts)
	case errors.Is(err, service.ErrInvalidUser), errors.Is(err, service.ErrInvalidPage):
		abortDetail(c, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.Error(op+" failed", zap.Error(err), zap.String("request_id", GetRequestID(c)))
		abortDetail(c, http.StatusInternalServerError, detailInternal)
	}
}
