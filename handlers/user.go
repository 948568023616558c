package handlers

import (
	"net/http"

	"consultorio/models"
	"consultorio/services/user"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	UserService user.UserService
}

func NewUserHandler(userService user.UserService) *UserHandler {
	return &UserHandler{UserService: userService}
}

// GetUsersHandler handles GET /api/users.
func (h *UserHandler) GetUsersHandler(c *gin.Context) {
	users, err := h.UserService.GetUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUserHandler handles GET /api/get_user/:id.
func (h *UserHandler) GetUserHandler(c *gin.Context) {
	u, err := h.UserService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// EditUserHandler handles PUT /api/edit_user/:id.
func (h *UserHandler) EditUserHandler(c *gin.Context) {
	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.UserService.EditUser(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DeleteUserHandler handles DELETE /api/users/:id.
func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	if err := h.UserService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// ProfileHandler handles GET /api/profile.
func (h *UserHandler) ProfileHandler(c *gin.Context) {
	u, err := h.UserService.GetUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// EditProfileHandler handles PUT /api/profile_edit. Account status stays with the admin.
func (h *UserHandler) EditProfileHandler(c *gin.Context) {
	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	req.IsActive = nil
	u, err := h.UserService.EditUser(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
