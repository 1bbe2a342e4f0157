package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/domain/auth"
	"github.com/dsmarcelo/ferreira-financeiro-sub001/internal/infrastructure/http/v1/dto"
)

// AuthHandler serves login and account management endpoints.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{BaseHandler: NewBaseHandler(), service: service}
}

// Login handles password authentication.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(c.Request.Context(), auth.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, result)
}

// Register creates a new account. Admin only.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.service.Register(c.Request.Context(), auth.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, user.ID)
}

// Me returns the authenticated user's profile.
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, user)
}

// List returns all accounts. Admin only.
// GET /api/v1/auth/users
func (h *AuthHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, users)
}

// ChangePassword rotates the caller's own password, or any user's when
// the target id is in the path and the caller is an admin.
// POST /api/v1/auth/users/:id/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	targetID, ok := h.PathID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), targetID, req.CurrentPassword, req.NewPassword); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.SuccessResponse{Success: true})
}

// SetActive enables or disables an account. Admin only.
// POST /api/v1/auth/users/:id/active
func (h *AuthHandler) SetActive(c *gin.Context) {
	targetID, ok := h.PathID(c)
	if !ok {
		return
	}

	var req dto.SetActiveRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetActive(c.Request.Context(), targetID, req.Active); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.SuccessResponse{Success: true})
}
