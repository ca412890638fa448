package handlers

import (
	"net/http"

	"redditradar/internal/db"
	"redditradar/internal/models"
	"redditradar/internal/utils"

	"github.com/gin-gonic/gin"
)

type SubredditHandler struct{}

func NewSubredditHandler() *SubredditHandler {
	return &SubredditHandler{}
}

type subredditRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
}

func (h *SubredditHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)

	query := db.DB.Model(&models.Subreddit{})
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	query.Count(&total)

	var subreddits []models.Subreddit
	query.Order("name ASC").Limit(p.PageSize).Offset(p.Offset()).Find(&subreddits)

	Paginated(c, subreddits, total, p)
}

func (h *SubredditHandler) Get(c *gin.Context) {
	var subreddit models.Subreddit
	if err := db.DB.First(&subreddit, c.Param("id")).Error; err != nil {
		JSONError(c, http.StatusNotFound, "subreddit not found")
		return
	}
	c.JSON(http.StatusOK, subreddit)
}

func (h *SubredditHandler) Create(c *gin.Context) {
	var req subredditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingErrors(c, err)
		return
	}

	var count int64
	db.DB.Model(&models.Subreddit{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		FieldErrors(c, map[string]string{"name": "a subreddit with that name already exists"})
		return
	}

	subreddit := models.Subreddit{Name: req.Name, Description: req.Description}
	if err := db.DB.Create(&subreddit).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create subreddit")
		return
	}
	c.JSON(http.StatusCreated, subreddit)
}

type subredditUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
}

func (h *SubredditHandler) Update(c *gin.Context) {
	var subreddit models.Subreddit
	if err := db.DB.First(&subreddit, c.Param("id")).Error; err != nil {
		JSONError(c, http.StatusNotFound, "subreddit not found")
		return
	}

	var req subredditUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingErrors(c, err)
		return
	}

	if req.Name != nil {
		var count int64
		db.DB.Model(&models.Subreddit{}).
			Where("name = ? AND id <> ?", *req.Name, subreddit.ID).Count(&count)
		if count > 0 {
			FieldErrors(c, map[string]string{"name": "a subreddit with that name already exists"})
			return
		}
		subreddit.Name = *req.Name
	}
	if req.Description != nil {
		subreddit.Description = *req.Description
	}

	if err := db.DB.Save(&subreddit).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update subreddit")
		return
	}
	c.JSON(http.StatusOK, subreddit)
}

func (h *SubredditHandler) Delete(c *gin.Context) {
	var subreddit models.Subreddit
	if err := db.DB.First(&subreddit, c.Param("id")).Error; err != nil {
		JSONError(c, http.StatusNotFound, "subreddit not found")
		return
	}

	db.DB.Delete(&subreddit)
	c.Status(http.StatusNoContent)
}
