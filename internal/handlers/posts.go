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
	"gorm.io/gorm"
)

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

// postListItem is the trimmed representation used by list endpoints: no body,
// no embedded comments.
type postListItem struct {
	ID             uint       `json:"id"`
	RedditID       string     `json:"reddit_id"`
	Title          string     `json:"title"`
	Upvotes        int        `json:"upvotes"`
	CommentsCount  int        `json:"comments_count"`
	Author         string     `json:"author"`
	SubmissionDate *time.Time `json:"submission_date"`
	SubredditID    *uint      `json:"subreddit_id"`
	SubredditName  string     `json:"subreddit_name"`
	ManuallyAdded  bool       `json:"manually_added"`
	CreatedAt      time.Time  `json:"created_at"`
}

// commentNode embeds one level of replies. Replies-of-replies are not
// expanded; clients fetch deeper levels via /comments?post_id=.
type commentNode struct {
	models.Comment
	BodyHTML string           `json:"body_html"`
	Replies  []models.Comment `json:"replies"`
}

type postDetail struct {
	models.Post
	BodyHTML string        `json:"body_html"`
	Comments []commentNode `json:"comments"`
}

var postOrderings = map[string]string{
	"submission_date":  "submission_date ASC",
	"-submission_date": "submission_date DESC",
	"upvotes":          "upvotes ASC",
	"-upvotes":         "upvotes DESC",
	"comments_count":   "comments_count ASC",
	"-comments_count":  "comments_count DESC",
}

func postQuery(c *gin.Context) *gorm.DB {
	query := db.DB.Model(&models.Post{})

	if subredditID := c.Query("subreddit_id"); subredditID != "" {
		query = query.Where("subreddit_id = ?", utils.StringToInt(subredditID))
	}
	if author := c.Query("author"); author != "" {
		query = query.Where("author = ?", author)
	}
	if manual := c.Query("manually_added"); manual != "" {
		query = query.Where("manually_added = ?", manual == "true")
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR body LIKE ?", pattern, pattern)
	}

	order := "submission_date DESC"
	if o, ok := postOrderings[c.Query("ordering")]; ok {
		order = o
	}
	return query.Order(order)
}

func listPosts(c *gin.Context, query *gorm.DB) {
	p := utils.ParsePagination(c)

	var total int64
	query.Count(&total)

	var posts []models.Post
	query.Limit(p.PageSize).Offset(p.Offset()).Find(&posts)

	items := make([]postListItem, len(posts))
	for i, post := range posts {
		items[i] = postListItem{
			ID:             post.ID,
			RedditID:       post.RedditID,
			Title:          post.Title,
			Upvotes:        post.Upvotes,
			CommentsCount:  post.CommentsCount,
			Author:         post.Author,
			SubmissionDate: post.SubmissionDate,
			SubredditID:    post.SubredditID,
			SubredditName:  post.SubredditName,
			ManuallyAdded:  post.ManuallyAdded,
			CreatedAt:      post.CreatedAt,
		}
	}

	Paginated(c, items, total, p)
}

func (h *PostHandler) List(c *gin.Context) {
	listPosts(c, postQuery(c))
}

// Manual lists only human-entered posts, as opposed to crawler-sourced ones.
func (h *PostHandler) Manual(c *gin.Context) {
	listPosts(c, postQuery(c).Where("manually_added = ?", true))
}

// Digest is the premium firehose: everything that landed in the last 24 hours.
func (h *PostHandler) Digest(c *gin.Context) {
	cutoff := time.Now().Add(-24 * time.Hour)
	listPosts(c, postQuery(c).Where("created_at > ?", cutoff))
}

func (h *PostHandler) Get(c *gin.Context) {
	var post models.Post
	if err := db.DB.Preload("Subreddit").First(&post, c.Param("id")).Error; err != nil {
		JSONError(c, http.StatusNotFound, "post not found")
		return
	}

	var topLevel []models.Comment
	db.DB.Where("post_id = ? AND parent_id IS NULL", post.ID).
		Order("created_at ASC").
		Find(&topLevel)

	nodes := make([]commentNode, len(topLevel))
	for i, comment := range topLevel {
		var replies []models.Comment
		db.DB.Where("parent_id = ?", comment.ID).
			Order("created_at ASC").
			Find(&replies)
		if replies == nil {
			replies = []models.Comment{}
		}
		nodes[i] = commentNode{
			Comment:  comment,
			BodyHTML: utils.RenderMarkdown(comment.Body),
			Replies:  replies,
		}
	}

	c.JSON(http.StatusOK, postDetail{
		Post:     post,
		BodyHTML: utils.RenderMarkdown(post.Body),
		Comments: nodes,
	})
}

type postCreateRequest struct {
	RedditID       string     `json:"reddit_id" binding:"required,max=50"`
	Title          string     `json:"title" binding:"required,max=255"`
	Body           string     `json:"body"`
	Upvotes        int        `json:"upvotes"`
	CommentsCount  int        `json:"comments_count"`
	Author         string     `json:"author"`
	SubmissionDate *time.Time `json:"submission_date"`
	SubredditID    *uint      `json:"subreddit_id"`
	SubredditName  string     `json:"subreddit_name"`
	PostURL        string     `json:"post_url"`
	ManuallyAdded  bool       `json:"manually_added"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var req postCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingErrors(c, err)
		return
	}

	var count int64
	db.DB.Model(&models.Post{}).Where("reddit_id = ?", req.RedditID).Count(&count)
	if count > 0 {
		FieldErrors(c, map[string]string{"reddit_id": "a post with that reddit id already exists"})
		return
	}

	post := models.Post{
		RedditID:       req.RedditID,
		Title:          req.Title,
		Body:           req.Body,
		Upvotes:        req.Upvotes,
		CommentsCount:  req.CommentsCount,
		Author:         req.Author,
		SubmissionDate: req.SubmissionDate,
		SubredditID:    req.SubredditID,
		SubredditName:  req.SubredditName,
		PostURL:        req.PostURL,
		ManuallyAdded:  req.ManuallyAdded,
	}
	if post.Author == "" {
		post.Author = middleware.CurrentUser(c).Username
	}

	if err := services.CreatePost(db.DB, &post); err != nil {
		JSONError(c, http.StatusBadRequest, "failed to create post: "+err.Error())
		return
	}
	c.JSON(http.StatusCreated, post)
}

type postUpdateRequest struct {
	Title          *string    `json:"title" binding:"omitempty,max=255"`
	Body           *string    `json:"body"`
	Upvotes        *int       `json:"upvotes"`
	CommentsCount  *int       `json:"comments_count"`
	SubmissionDate *time.Time `json:"submission_date"`
	SubredditID    *uint      `json:"subreddit_id"`
	PostURL        *string    `json:"post_url"`
	ManuallyAdded  *bool      `json:"manually_added"`
}

// canEditPost is the owner-or-read-only check. Posts carry a free-text author
// name rather than a user reference, so ownership is a string match against
// the caller's username. Anyone registering a matching username passes; known
// weakness, kept from the original design.
func canEditPost(user *models.User, post *models.Post) bool {
	return user.IsAdmin() || (post.Author != "" && post.Author == user.Username)
}

func (h *PostHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var post models.Post
	if err := db.DB.First(&post, c.Param("id")).Error; err != nil {
		JSONError(c, http.StatusNotFound, "post not found")
		return
	}
	if !canEditPost(user, &post) {
		JSONError(c, http.StatusForbidden, "you do not own this post")
		return
	}

	var req postUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingErrors(c, err)
		return
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Body != nil {
		post.Body = *req.Body
	}
	if req.Upvotes != nil {
		post.Upvotes = *req.Upvotes
	}
	if req.CommentsCount != nil {
		post.CommentsCount = *req.CommentsCount
	}
	if req.SubmissionDate != nil {
		post.SubmissionDate = req.SubmissionDate
	}
	if req.SubredditID != nil {
		post.SubredditID = req.SubredditID
		post.SubredditName = ""
	}
	if req.PostURL != nil {
		post.PostURL = *req.PostURL
	}
	if req.ManuallyAdded != nil {
		post.ManuallyAdded = *req.ManuallyAdded
	}

	if err := services.UpdatePost(db.DB, &post); err != nil {
		JSONError(c, http.StatusBadRequest, "failed to update post: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var post models.Post
	if err := db.DB.First(&post, c.Param("id")).Error; err != nil {
		JSONError(c, http.StatusNotFound, "post not found")
		return
	}
	if !canEditPost(user, &post) {
		JSONError(c, http.StatusForbidden, "you do not own this post")
		return
	}

	if err := services.DeletePostWithComments(db.DB, post.ID); err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to delete post")
		return
	}
	c.Status(http.StatusNoContent)
}
