package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/user/eazybee/internal/middleware"
	"github.com/user/eazybee/internal/model"
	"github.com/user/eazybee/internal/service"
	"github.com/user/eazybee/internal/utils"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login 登录
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	identity, err := h.auth(c).Login(req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	message := "Successfully logged in!"
	if identity != nil && identity.User.IsAdmin() {
		message = "Welcome back, Admin!"
	}
	respondWrite(c, err, message, identity)
}

// Register 注册
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	identity, err := h.auth(c).Register(req.Name, req.Email, req.Password)
	if errors.Is(err, service.ErrInvalidRegistration) {
		utils.BadRequest(c, "Invalid registration data")
		return
	}
	if err == nil {
		utils.Created(c, "Account created successfully!", identity)
		return
	}
	respondWrite(c, err, "", identity)
}

// Logout 退出登录，匿名时同样成功
func (h *Handler) Logout(c *gin.Context) {
	respondWrite(c, h.auth(c).Logout(), "Logged out successfully", nil)
}

// Me 当前登录用户
func (h *Handler) Me(c *gin.Context) {
	utils.Success(c, service.Identity{
		Token: c.GetString(middleware.ContextToken),
		User:  middleware.CurrentUser(c),
	})
}

// UpdateProfile 更新个人资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	var update model.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	user, ok, err := h.auth(c).UpdateProfile(update)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "Please log in to continue")
		return
	}
	respondWrite(c, err, "Profile updated successfully", user)
}
