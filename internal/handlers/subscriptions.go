package handlers

import (
	"net/http"
	"time"

	"redditradar/internal/db"
	"redditradar/internal/middleware"
	"redditradar/internal/models"
	"redditradar/internal/services"
	"redditradar/internal/utils"

	"github.com/gin-gonic/gin"
)

// SubscriptionHandler is the sink for the external billing webhook. Every
// create/update runs the membership derivation.
type SubscriptionHandler struct{}

func NewSubscriptionHandler() *SubscriptionHandler {
	return &SubscriptionHandler{}
}

func (h *SubscriptionHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	p := utils.ParsePagination(c)

	query := db.DB.Model(&models.Subscription{})
	if !user.IsAdmin() {
		query = query.Where("user_id = ?", user.ID)
	}

	var total int64
	query.Count(&total)

	var subscriptions []models.Subscription
	query.Order("created_at DESC").Limit(p.PageSize).Offset(p.Offset()).Find(&subscriptions)

	Paginated(c, subscriptions, total, p)
}

func (h *SubscriptionHandler) getVisible(c *gin.Context) (*models.Subscription, bool) {
	user := middleware.CurrentUser(c)

	var sub models.Subscription
	if err := db.DB.First(&sub, c.Param("id")).Error; err != nil {
		JSONError(c, http.StatusNotFound, "subscription not found")
		return nil, false
	}
	if sub.UserID != user.ID && !user.IsAdmin() {
		JSONError(c, http.StatusNotFound, "subscription not found")
		return nil, false
	}
	return &sub, true
}

func (h *SubscriptionHandler) Get(c *gin.Context) {
	sub, ok := h.getVisible(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sub)
}

type subscriptionCreateRequest struct {
	UserID               *uint      `json:"user_id"`
	StripeSubscriptionID string     `json:"stripe_subscription_id"`
	Status               string     `json:"status" binding:"required,max=50"`
	ExpiresAt            *time.Time `json:"expires_at"`
}

func (h *SubscriptionHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req subscriptionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingErrors(c, err)
		return
	}

	// The billing webhook authenticates as admin and creates rows for
	// arbitrary users; everyone else can only subscribe themselves.
	targetID := user.ID
	if req.UserID != nil && user.IsAdmin() {
		targetID = *req.UserID
		if err := db.DB.First(&models.User{}, targetID).Error; err != nil {
			FieldErrors(c, map[string]string{"user_id": "user does not exist"})
			return
		}
	}

	sub := models.Subscription{
		UserID:               targetID,
		StripeSubscriptionID: req.StripeSubscriptionID,
		Status:               req.Status,
		ExpiresAt:            req.ExpiresAt,
	}
	if err := db.DB.Create(&sub).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create subscription")
		return
	}

	if err := services.ApplySubscriptionChange(db.DB, &sub); err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update membership status")
		return
	}
	c.JSON(http.StatusCreated, sub)
}

type subscriptionUpdateRequest struct {
	StripeSubscriptionID *string    `json:"stripe_subscription_id"`
	Status               *string    `json:"status" binding:"omitempty,max=50"`
	ExpiresAt            *time.Time `json:"expires_at"`
}

func (h *SubscriptionHandler) Update(c *gin.Context) {
	sub, ok := h.getVisible(c)
	if !ok {
		return
	}

	var req subscriptionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingErrors(c, err)
		return
	}

	if req.StripeSubscriptionID != nil {
		sub.StripeSubscriptionID = *req.StripeSubscriptionID
	}
	if req.Status != nil {
		sub.Status = *req.Status
	}
	if req.ExpiresAt != nil {
		sub.ExpiresAt = req.ExpiresAt
	}

	if err := db.DB.Save(sub).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update subscription")
		return
	}

	if err := services.ApplySubscriptionChange(db.DB, sub); err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update membership status")
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *SubscriptionHandler) Delete(c *gin.Context) {
	sub, ok := h.getVisible(c)
	if !ok {
		return
	}

	db.DB.Delete(sub)

	// Deleting an active subscription can demote the user; the row is gone,
	// so the derivation only sees the remaining siblings.
	sub.Status = ""
	if err := services.ApplySubscriptionChange(db.DB, sub); err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update membership status")
		return
	}
	c.Status(http.StatusNoContent)
}
