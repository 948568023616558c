package handlers

import (
	"net/http"

	"consultorio/models"
	"consultorio/services/user"
	"consultorio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	UserService user.UserService
}

func NewAuthHandler(userService user.UserService) *AuthHandler {
	return &AuthHandler{UserService: userService}
}

// LoginHandler handles POST /api/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.UserService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		getLogger(c).Info("login rejected", zap.String("username", req.Username), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LogoutHandler handles POST /api/logout; the token in use is revoked.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	raw, _ := c.Get("claims")
	claims, _ := raw.(*utils.Claims)
	if err := h.UserService.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// SignupHandler handles POST /api/signup (admin only).
func (h *AuthHandler) SignupHandler(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.UserService.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// ResetPasswordHandler handles POST /api/reset_password.
func (h *AuthHandler) ResetPasswordHandler(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.UserService.ResetPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reset email sent"})
}

// ChangePasswordHandler handles POST /api/change_password.
func (h *AuthHandler) ChangePasswordHandler(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.UserService.ChangePassword(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
