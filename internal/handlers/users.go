package handlers

import (
	"net/http"

	"redditradar/internal/db"
	"redditradar/internal/middleware"
	"redditradar/internal/models"
	"redditradar/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

func (h *UserHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)

	query := db.DB.Model(&models.User{})
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("username LIKE ? OR email LIKE ?", pattern, pattern)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	query.Order("id ASC").Limit(p.PageSize).Offset(p.Offset()).Find(&users)

	Paginated(c, users, total, p)
}

type userCreateRequest struct {
	Username         string `json:"username" binding:"required,min=3,max=150"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=6"`
	Role             string `json:"role" binding:"omitempty,oneof=user admin"`
	MembershipStatus string `json:"membership_status" binding:"omitempty,oneof=Free Premium"`
}

// Create is the admin path for provisioning accounts (crawler, operators).
// Self-service signup goes through /auth/register.
func (h *UserHandler) Create(c *gin.Context) {
	var req userCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingErrors(c, err)
		return
	}

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
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.MembershipStatus != "" {
		user.MembershipStatus = req.MembershipStatus
	}

	if err := db.DB.Create(&user).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create user")
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Get(c *gin.Context) {
	var user models.User
	if err := db.DB.First(&user, c.Param("id")).Error; err != nil {
		JSONError(c, http.StatusNotFound, "user not found")
		return
	}
	c.JSON(http.StatusOK, user)
}

type userUpdateRequest struct {
	Email         *string `json:"email" binding:"omitempty,email"`
	OAuthProvider *string `json:"oauth_provider"`
}

func (h *UserHandler) Update(c *gin.Context) {
	current := middleware.CurrentUser(c)

	var user models.User
	if err := db.DB.First(&user, c.Param("id")).Error; err != nil {
		JSONError(c, http.StatusNotFound, "user not found")
		return
	}
	if user.ID != current.ID && !current.IsAdmin() {
		JSONError(c, http.StatusForbidden, "you can only modify your own account")
		return
	}

	var req userUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingErrors(c, err)
		return
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.OAuthProvider != nil {
		user.OAuthProvider = *req.OAuthProvider
	}

	if err := db.DB.Save(&user).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	current := middleware.CurrentUser(c)

	var user models.User
	if err := db.DB.First(&user, c.Param("id")).Error; err != nil {
		JSONError(c, http.StatusNotFound, "user not found")
		return
	}
	if user.ID != current.ID && !current.IsAdmin() {
		JSONError(c, http.StatusForbidden, "you can only delete your own account")
		return
	}

	db.DB.Delete(&user)
	c.Status(http.StatusNoContent)
}
