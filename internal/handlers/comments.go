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

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

func (h *CommentHandler) List(c *gin.Context) {
	p := utils.ParsePagination(c)

	query := db.DB.Model(&models.Comment{})
	if postID := c.Query("post_id"); postID != "" {
		query = query.Where("post_id = ?", utils.StringToInt(postID))
	}
	if author := c.Query("author"); author != "" {
		query = query.Where("author = ?", author)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("body LIKE ?", "%"+search+"%")
	}

	var total int64
	query.Count(&total)

	var comments []models.Comment
	query.Order("created_at ASC").Limit(p.PageSize).Offset(p.Offset()).Find(&comments)

	Paginated(c, comments, total, p)
}

// Get returns the comment with rendered body and one level of direct
// replies, the same shape the post detail view embeds.
func (h *CommentHandler) Get(c *gin.Context) {
	var comment models.Comment
	if err := db.DB.First(&comment, c.Param("id")).Error; err != nil {
		JSONError(c, http.StatusNotFound, "comment not found")
		return
	}

	var replies []models.Comment
	db.DB.Where("parent_id = ?", comment.ID).Order("created_at ASC").Find(&replies)
	if replies == nil {
		replies = []models.Comment{}
	}

	c.JSON(http.StatusOK, commentNode{
		Comment:  comment,
		BodyHTML: utils.RenderMarkdown(comment.Body),
		Replies:  replies,
	})
}

type commentCreateRequest struct {
	RedditID       string     `json:"reddit_id" binding:"required,max=50"`
	PostID         uint       `json:"post_id" binding:"required"`
	ParentID       *uint      `json:"parent_id"`
	Body           string     `json:"body" binding:"required"`
	Author         string     `json:"author"`
	Upvotes        int        `json:"upvotes"`
	SubmissionDate *time.Time `json:"submission_date"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req commentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingErrors(c, err)
		return
	}

	var count int64
	db.DB.Model(&models.Comment{}).Where("reddit_id = ?", req.RedditID).Count(&count)
	if count > 0 {
		FieldErrors(c, map[string]string{"reddit_id": "a comment with that reddit id already exists"})
		return
	}

	if err := db.DB.First(&models.Post{}, req.PostID).Error; err != nil {
		FieldErrors(c, map[string]string{"post_id": "post does not exist"})
		return
	}
	if req.ParentID != nil {
		var parent models.Comment
		if err := db.DB.First(&parent, *req.ParentID).Error; err != nil {
			FieldErrors(c, map[string]string{"parent_id": "parent comment does not exist"})
			return
		}
		if parent.PostID != req.PostID {
			FieldErrors(c, map[string]string{"parent_id": "parent comment belongs to another post"})
			return
		}
	}

	comment := models.Comment{
		RedditID:       req.RedditID,
		PostID:         req.PostID,
		ParentID:       req.ParentID,
		Body:           req.Body,
		Author:         req.Author,
		Upvotes:        req.Upvotes,
		SubmissionDate: req.SubmissionDate,
	}
	if comment.Author == "" {
		comment.Author = middleware.CurrentUser(c).Username
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create comment")
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Same weak ownership rule as posts: author is a display-name string.
func canEditComment(user *models.User, comment *models.Comment) bool {
	return user.IsAdmin() || (comment.Author != "" && comment.Author == user.Username)
}

type commentUpdateRequest struct {
	Body    *string `json:"body"`
	Upvotes *int    `json:"upvotes"`
}

func (h *CommentHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var comment models.Comment
	if err := db.DB.First(&comment, c.Param("id")).Error; err != nil {
		JSONError(c, http.StatusNotFound, "comment not found")
		return
	}
	if !canEditComment(user, &comment) {
		JSONError(c, http.StatusForbidden, "you do not own this comment")
		return
	}

	var req commentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingErrors(c, err)
		return
	}

	if req.Body != nil {
		comment.Body = *req.Body
	}
	if req.Upvotes != nil {
		comment.Upvotes = *req.Upvotes
	}

	if err := db.DB.Save(&comment).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update comment")
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var comment models.Comment
	if err := db.DB.First(&comment, c.Param("id")).Error; err != nil {
		JSONError(c, http.StatusNotFound, "comment not found")
		return
	}
	if !canEditComment(user, &comment) {
		JSONError(c, http.StatusForbidden, "you do not own this comment")
		return
	}

	if err := services.DeleteCommentTree(db.DB, comment.ID); err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to delete comment")
		return
	}
	c.Status(http.StatusNoContent)
}
