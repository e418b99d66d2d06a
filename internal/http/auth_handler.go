package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fast-zero/internal/service"
)

// AuthHandler expone el login por password.
type AuthHandler struct {
	logger   *zap.Logger
	authServ *service.AuthService
}

func NewAuthHandler(logger *zap.Logger, authServ *service.AuthService) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		authServ: authServ,
	}
}

// Token maneja POST /auth/token con un formulario OAuth2 (username = email).
func (h *AuthHandler) Token(c *gin.Context) {
	var req struct {
		Username string `form:"username" json:"username" binding:"required"`
		Password string `form:"password" json:"password" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("invalid token request", zap.Error(err))
		abortDetail(c, http.StatusUnprocessableEntity, detailInvalidRequest)
		return
	}

	token, err := h.authServ.IssueToken(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(c, h.logger, "issue token", err)
		return
	}

	c.JSON(http.StatusOK, token)
}
