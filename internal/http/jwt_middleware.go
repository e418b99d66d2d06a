package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fast-zero/internal/domain"
	"fast-zero/internal/service"
)

const currentUserKey = "current_user"

// JWTAuthMiddleware resuelve el usuario del bearer token y lo guarda en el contexto.
func JWTAuthMiddleware(logger *zap.Logger, authSvc *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authSvc == nil {
			abortDetail(c, http.StatusInternalServerError, "auth not configured")
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			abortDetail(c, http.StatusUnauthorized, detailNotAuthenticated)
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		user, err := authSvc.ResolveCurrentUser(c.Request.Context(), token)
		if err != nil {
			writeServiceError(c, logger, "resolve current user", err)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser obtiene el usuario autenticado desde el contexto.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	val, ok := c.Get(currentUserKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := val.(domain.User)
	return user, ok
}
