package handlers

import (
	"log/slog"
	"net/http"

	"redditradar/internal/db"
	"redditradar/internal/middleware"
	"redditradar/internal/models"
	"redditradar/internal/services"
	"redditradar/internal/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=150"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingErrors(c, err)
		return
	}

	// Uniqueness checks up front so the client gets field-level errors
	// instead of a raw constraint violation.
	var count int64
	db.DB.Model(&models.User{}).Where("username = ?", req.Username).Count(&count)
	if count > 0 {
		FieldErrors(c, map[string]string{"username": "a user with that username already exists"})
		return
	}
	db.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		FieldErrors(c, map[string]string{"email": "a user with that email already exists"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create user")
		return
	}

	user := models.User{
		Username:         req.Username,
		Email:            req.Email,
		Password:         hash,
		MembershipStatus: models.MembershipFree,
		Role:             models.RoleUser,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		slog.Error("failed to create user", "error", err)
		JSONError(c, http.StatusInternalServerError, "failed to create user")
		return
	}

	token, err := services.GetTokenService().Generate(user.ID, user.Username, user.Role)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingErrors(c, err)
		return
	}

	var user models.User
	if err := db.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		// Same message for unknown user and wrong password.
		JSONError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		JSONError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := services.GetTokenService().Generate(user.ID, user.Username, user.Role)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, user)
}
