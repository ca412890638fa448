package handlers

import (
	"net/http"
	"time"

	"redditradar/internal/db"
	"redditradar/internal/models"
	"redditradar/internal/utils"

	"github.com/gin-gonic/gin"
)

// CrawlHistoryHandler is admin-only end to end: rows are written by the
// crawler (which authenticates as admin) and read by operators.
type CrawlHistoryHandler struct{}

func NewCrawlHistoryHandler() *CrawlHistoryHandler {
	return &CrawlHistoryHandler{}
}

func (h *CrawlHistoryHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)

	query := db.DB.Model(&models.CrawlHistory{})
	if subredditID := c.Query("subreddit_id"); subredditID != "" {
		query = query.Where("subreddit_id = ?", utils.StringToInt(subredditID))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var history []models.CrawlHistory
	query.Order("start_time DESC").Limit(p.PageSize).Offset(p.Offset()).Find(&history)

	Paginated(c, history, total, p)
}

func (h *CrawlHistoryHandler) Get(c *gin.Context) {
	var record models.CrawlHistory
	if err := db.DB.Preload("Subreddit").First(&record, c.Param("id")).Error; err != nil {
		JSONError(c, http.StatusNotFound, "crawl history record not found")
		return
	}
	c.JSON(http.StatusOK, record)
}

type crawlHistoryCreateRequest struct {
	SubredditID   *uint      `json:"subreddit_id"`
	StartTime     time.Time  `json:"start_time" binding:"required"`
	EndTime       *time.Time `json:"end_time"`
	PostsFound    int        `json:"posts_found"`
	CommentsFound int        `json:"comments_found"`
	Status        string     `json:"status" binding:"required,max=50"`
	ErrorMessage  string     `json:"error_message"`
}

func (h *CrawlHistoryHandler) Create(c *gin.Context) {
	var req crawlHistoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingErrors(c, err)
		return
	}

	if req.SubredditID != nil {
		if err := db.DB.First(&models.Subreddit{}, *req.SubredditID).Error; err != nil {
			FieldErrors(c, map[string]string{"subreddit_id": "subreddit does not exist"})
			return
		}
	}

	record := models.CrawlHistory{
		SubredditID:   req.SubredditID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		PostsFound:    req.PostsFound,
		CommentsFound: req.CommentsFound,
		Status:        req.Status,
		ErrorMessage:  req.ErrorMessage,
	}
	if err := db.DB.Create(&record).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to record crawl history")
		return
	}
	c.JSON(http.StatusCreated, record)
}

type crawlHistoryUpdateRequest struct {
	EndTime       *time.Time `json:"end_time"`
	PostsFound    *int       `json:"posts_found"`
	CommentsFound *int       `json:"comments_found"`
	Status        *string    `json:"status" binding:"omitempty,max=50"`
	ErrorMessage  *string    `json:"error_message"`
}

// Update lets the crawler close out a running record with final counts.
func (h *CrawlHistoryHandler) Update(c *gin.Context) {
	var record models.CrawlHistory
	if err := db.DB.First(&record, c.Param("id")).Error; err != nil {
		JSONError(c, http.StatusNotFound, "crawl history record not found")
		return
	}

	var req crawlHistoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingErrors(c, err)
		return
	}

	if req.EndTime != nil {
		record.EndTime = req.EndTime
	}
	if req.PostsFound != nil {
		record.PostsFound = *req.PostsFound
	}
	if req.CommentsFound != nil {
		record.CommentsFound = *req.CommentsFound
	}
	if req.Status != nil {
		record.Status = *req.Status
	}
	if req.ErrorMessage != nil {
		record.ErrorMessage = *req.ErrorMessage
	}

	if err := db.DB.Save(&record).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update crawl history")
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *CrawlHistoryHandler) Delete(c *gin.Context) {
	var record models.CrawlHistory
	if err := db.DB.First(&record, c.Param("id")).Error; err != nil {
		JSONError(c, http.StatusNotFound, "crawl history record not found")
		return
	}

	db.DB.Delete(&record)
	c.Status(http.StatusNoContent)
}
