package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fast-zero/internal/domain"
)

// Pinger verifica conectividad con el almacenamiento.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler atiende las rutas que no pertenecen a un recurso.
type SystemHandler struct {
	logger *zap.Logger
	db     Pinger
}

func NewSystemHandler(logger *zap.Logger, db Pinger) *SystemHandler {
	return &SystemHandler{
		logger: logger,
		db:     db,
	}
}

// Root maneja GET /.
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, domain.Message{Message: "Olá Mundo"})
}

// Health maneja GET /health.
func (h *SystemHandler) Health(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("database ping failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
