package handlers

import (
	"net/http"

	"redditradar/internal/db"
	"redditradar/internal/middleware"
	"redditradar/internal/models"
	"redditradar/internal/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler only ever exposes the caller's own rows.
type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

func (h *NotificationHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	p := utils.ParsePagination(c)

	query := db.DB.Model(&models.Notification{}).Where("user_id = ?", user.ID)
	if read := c.Query("read_status"); read != "" {
		query = query.Where("read_status = ?", read == "true")
	}

	var total int64
	query.Count(&total)

	var notifications []models.Notification
	query.Order("created_at DESC").Limit(p.PageSize).Offset(p.Offset()).Find(&notifications)

	Paginated(c, notifications, total, p)
}

func (h *NotificationHandler) getOwn(c *gin.Context) (*models.Notification, bool) {
	user := middleware.CurrentUser(c)

	var notification models.Notification
	err := db.DB.Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		First(&notification).Error
	if err != nil {
		JSONError(c, http.StatusNotFound, "notification not found")
		return nil, false
	}
	return &notification, true
}

func (h *NotificationHandler) Get(c *gin.Context) {
	notification, ok := h.getOwn(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, notification)
}

type notificationCreateRequest struct {
	UserID  *uint  `json:"user_id"`
	Type    string `json:"type" binding:"required,max=50"`
	Content string `json:"content"`
}

func (h *NotificationHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req notificationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingErrors(c, err)
		return
	}

	// System notifications come in through an admin token and may target any
	// user; everyone else can only notify themselves.
	targetID := user.ID
	if req.UserID != nil && user.IsAdmin() {
		targetID = *req.UserID
		if err := db.DB.First(&models.User{}, targetID).Error; err != nil {
			FieldErrors(c, map[string]string{"user_id": "user does not exist"})
			return
		}
	}

	notification := models.Notification{
		UserID:  targetID,
		Type:    req.Type,
		Content: req.Content,
	}
	if err := db.DB.Create(&notification).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create notification")
		return
	}
	c.JSON(http.StatusCreated, notification)
}

type notificationUpdateRequest struct {
	Type       *string `json:"type" binding:"omitempty,max=50"`
	Content    *string `json:"content"`
	ReadStatus *bool   `json:"read_status"`
}

func (h *NotificationHandler) Update(c *gin.Context) {
	notification, ok := h.getOwn(c)
	if !ok {
		return
	}

	var req notificationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingErrors(c, err)
		return
	}

	if req.Type != nil {
		notification.Type = *req.Type
	}
	if req.Content != nil {
		notification.Content = *req.Content
	}
	if req.ReadStatus != nil {
		notification.ReadStatus = *req.ReadStatus
	}

	if err := db.DB.Save(notification).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update notification")
		return
	}
	c.JSON(http.StatusOK, notification)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notification, ok := h.getOwn(c)
	if !ok {
		return
	}

	notification.ReadStatus = true
	if err := db.DB.Save(notification).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update notification")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "notification marked as read"})
}

// MarkAllRead bulk-updates unread rows, scoped to the caller.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	user := middleware.CurrentUser(c)

	db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read_status = ?", user.ID, false).
		Update("read_status", true)

	c.JSON(http.StatusOK, gin.H{"status": "all notifications marked as read"})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	notification, ok := h.getOwn(c)
	if !ok {
		return
	}

	db.DB.Delete(notification)
	c.Status(http.StatusNoContent)
}
