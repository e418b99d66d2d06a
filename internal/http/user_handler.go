package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fast-zero/internal/domain"
	"fast-zero/internal/service"
)

// UserHandler mantiene dependencias para endpoints de usuarios.
type UserHandler struct {
	logger   *zap.Logger
	userServ *service.UserService
}

// NewUserHandler crea una instancia de UserHandler con dependencias necesarias.
func NewUserHandler(logger *zap.Logger, userServ *service.UserService) *UserHandler {
	return &UserHandler{
		logger:   logger,
		userServ: userServ,
	}
}

type userRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (r userRequest) input() service.UserInput {
	return service.UserInput{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
	}
}

// CreateUser maneja POST /users/.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create user request", zap.Error(err))
		abortDetail(c, http.StatusUnprocessableEntity, detailInvalidRequest)
		return
	}

	user, err := h.userServ.CreateUser(c.Request.Context(), req.input())
	if err != nil {
		writeServiceError(c, h.logger, "create user", err)
		return
	}

	c.JSON(http.StatusCreated, user.Public())
}

// ListUsers maneja GET /users/.
func (h *UserHandler) ListUsers(c *gin.Context) {
	requester, ok := CurrentUser(c)
	if !ok {
		abortDetail(c, http.StatusUnauthorized, detailInvalidToken)
		return
	}

	page := domain.DefaultPage()
	if err := c.ShouldBindQuery(&page); err != nil {
		h.logger.Warn("invalid list users query", zap.Error(err))
		abortDetail(c, http.StatusUnprocessableEntity, detailInvalidRequest)
		return
	}

	users, err := h.userServ.ListUsers(c.Request.Context(), page, requester)
	if err != nil {
		writeServiceError(c, h.logger, "list users", err)
		return
	}

	c.JSON(http.StatusOK, domain.NewUserList(users))
}

// UpdateUser maneja PUT /users/:id.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	requester, ok := CurrentUser(c)
	if !ok {
		abortDetail(c, http.StatusUnauthorized, detailInvalidToken)
		return
	}
	targetID, ok := h.parseUserID(c)
	if !ok {
		return
	}

	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update user request", zap.Error(err))
		abortDetail(c, http.StatusUnprocessableEntity, detailInvalidRequest)
		return
	}

	user, err := h.userServ.UpdateUser(c.Request.Context(), targetID, req.input(), requester)
	if err != nil {
		writeServiceError(c, h.logger, "update user", err)
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

// DeleteUser maneja DELETE /users/:id.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	requester, ok := CurrentUser(c)
	if !ok {
		abortDetail(c, http.StatusUnauthorized, detailInvalidToken)
		return
	}
	targetID, ok := h.parseUserID(c)
	if !ok {
		return
	}

	msg, err := h.userServ.DeleteUser(c.Request.Context(), targetID, requester)
	if err != nil {
		writeServiceError(c, h.logger, "delete user", err)
		return
	}

	c.JSON(http.StatusOK, msg)
}

func (h *UserHandler) parseUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.logger.Warn("invalid user id", zap.String("id", c.Param("id")))
		abortDetail(c, http.StatusUnprocessableEntity, detailInvalidRequest)
		return 0, false
	}
	return id, true
}
