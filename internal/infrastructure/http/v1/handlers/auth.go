// Package handlers provides HTTP request handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"oilbook/internal/core/apperror"
	appctx "oilbook/internal/core/context"
	"oilbook/internal/core/id"
	"oilbook/internal/domain/auth"
	"oilbook/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles authentication and user management endpoints.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromLoginResult(result))
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	userCtx := appctx.GetUser(ctx)
	if userCtx == nil {
		h.Error(c, apperror.NewUnauthorized("not authenticated"))
		return
	}

	userID, err := id.Parse(userCtx.UserID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid user id"))
		return
	}

	user, err := h.service.GetByID(ctx, userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromUser(user))
}

// ChangePassword handles POST /auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	ctx := c.Request.Context()

	userCtx := appctx.GetUser(ctx)
	if userCtx == nil {
		h.Error(c, apperror.NewUnauthorized("not authenticated"))
		return
	}

	userID, err := id.Parse(userCtx.UserID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid user id"))
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "password changed")
}

// CreateUser handles POST /auth/users - create a user in the caller's office.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	ctx := c.Request.Context()

	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.service.CreateUser(ctx, officeID, req.Email, req.Name, req.Password, auth.Role(req.Role))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromUser(user))
}

// ListUsers handles GET /auth/users - users of the caller's office.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()

	officeID, ok := h.OfficeID(c)
	if !ok {
		return
	}

	users, err := h.service.ListByOffice(ctx, officeID)
	if err != nil {
		h.Error(c, err)
		return
	}

	out := make([]dto.UserResponse, len(users))
	for i, u := range users {
		out[i] = dto.FromUser(u)
	}
	h.OK(c, out)
}

// SetUserActive handles POST /auth/users/:id/active.
// An account cannot disable itself.
func (h *AuthHandler) SetUserActive(c *gin.Context) {
	ctx := c.Request.Context()

	userID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req dto.SetActiveRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if userCtx := appctx.GetUser(ctx); userCtx != nil && userCtx.UserID == userID.String() && !*req.Active {
		h.Error(c, apperror.NewValidation("cannot disable your own account"))
		return
	}

	target, err := h.service.GetByID(ctx, userID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if officeID, ok := h.OfficeID(c); !ok || target.OfficeID != officeID {
		h.Error(c, apperror.NewNotFound("user", userID.String()))
		return
	}

	if err := h.service.SetActive(ctx, userID, *req.Active); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
