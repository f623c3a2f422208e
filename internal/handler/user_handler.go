package handler

import (
	"social-system/internal/service"
	"social-system/pkg/jwt"
	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHandler serves registration, login, and account routes.
type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRequest is the register payload.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register creates an account and returns the user with an access token.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, token, err := h.users.Register(req.Username, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	response.SuccessWithMessage(c, "registered", response.AuthResponse{
		User:        response.FilterUserInfo(user),
		AccessToken: token,
	})
}

// LoginRequest is the login payload. Identifier matches username or email.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// Login verifies credentials and returns the user with an access token.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, token, err := h.users.Login(req.Identifier, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	response.SuccessWithMessage(c, "logged in", response.AuthResponse{
		User:        response.FilterUserInfo(user),
		AccessToken: token,
	})
}

// Me returns the authenticated user with profile.
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.users.GetMe(jwt.GetUserIDUint(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, response.FilterUserInfo(user))
}

// ChangePasswordRequest is the change-password payload.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ChangePassword rotates the caller's password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if err := h.users.ChangePassword(jwt.GetUserIDUint(c), req.OldPassword, req.NewPassword); err != nil {
		writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, "password changed", nil)
}

// Logout marks the caller offline.
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.users.Logout(jwt.GetUserIDUint(c)); err != nil {
		writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, "logged out", nil)
}
