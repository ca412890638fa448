package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"redditradar/internal/db"
	"redditradar/internal/middleware"
	"redditradar/internal/models"
	"redditradar/internal/services"
	"redditradar/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared",
		atomic.AddInt64(&testDBCounter, 1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))

	db.DB = conn
	// Keyword cache survives across tests, each of which gets a fresh DB.
	utils.GetCache().Delete(activeKeywordsCacheKey)
	return conn
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	setupTestDB(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerTestRoutes(r)
	return r
}

// registerTestRoutes mirrors router.RegisterRoutes; duplicated here because
// importing the router package from handlers tests would be a cycle.
func registerTestRoutes(r *gin.Engine) {
	authHandler := NewAuthHandler()
	userHandler := NewUserHandler()
	subredditHandler := NewSubredditHandler()
	postHandler := NewPostHandler()
	commentHandler := NewCommentHandler()
	notificationHandler := NewNotificationHandler()
	subscriptionHandler := NewSubscriptionHandler()
	keywordHandler := NewKeywordHandler()
	crawlHistoryHandler := NewCrawlHistoryHandler()

	api := r.Group("/api")
	api.Use(middleware.OptionalAuth())

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/me", middleware.RequireAuth(), authHandler.Me)

	users := api.Group("/users")
	users.Use(middleware.RequireAuth())
	users.GET("", middleware.RequireAdmin(), userHandler.List)
	users.POST("", middleware.RequireAdmin(), userHandler.Create)
	users.GET("/:id", userHandler.Get)
	users.PATCH("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	api.GET("/subreddits", subredditHandler.List)
	api.GET("/subreddits/:id", subredditHandler.Get)
	api.POST("/subreddits", middleware.RequireAdmin(), subredditHandler.Create)
	api.PATCH("/subreddits/:id", middleware.RequireAdmin(), subredditHandler.Update)
	api.DELETE("/subreddits/:id", middleware.RequireAdmin(), subredditHandler.Delete)

	api.GET("/posts", postHandler.List)
	api.GET("/posts/manual", postHandler.Manual)
	api.GET("/posts/digest", middleware.RequireAuth(), middleware.RequirePremium(), postHandler.Digest)
	api.GET("/posts/:id", postHandler.Get)
	api.POST("/posts", middleware.RequireAuth(), postHandler.Create)
	api.PATCH("/posts/:id", middleware.RequireAuth(), postHandler.Update)
	api.DELETE("/posts/:id", middleware.RequireAuth(), postHandler.Delete)

	api.GET("/comments", commentHandler.List)
	api.GET("/comments/:id", commentHandler.Get)
	api.POST("/comments", middleware.RequireAuth(), commentHandler.Create)
	api.PATCH("/comments/:id", middleware.RequireAuth(), commentHandler.Update)
	api.DELETE("/comments/:id", middleware.RequireAuth(), commentHandler.Delete)

	notifications := api.Group("/notifications")
	notifications.Use(middleware.RequireAuth())
	notifications.GET("", notificationHandler.List)
	notifications.POST("", notificationHandler.Create)
	notifications.POST("/mark-all-read", notificationHandler.MarkAllRead)
	notifications.GET("/:id", notificationHandler.Get)
	notifications.PATCH("/:id", notificationHandler.Update)
	notifications.POST("/:id/mark-read", notificationHandler.MarkRead)
	notifications.DELETE("/:id", notificationHandler.Delete)

	subscriptions := api.Group("/subscriptions")
	subscriptions.Use(middleware.RequireAuth())
	subscriptions.GET("", subscriptionHandler.List)
	subscriptions.POST("", subscriptionHandler.Create)
	subscriptions.GET("/:id", subscriptionHandler.Get)
	subscriptions.PATCH("/:id", subscriptionHandler.Update)
	subscriptions.DELETE("/:id", subscriptionHandler.Delete)

	api.GET("/keywords", keywordHandler.List)
	api.GET("/keywords/active", keywordHandler.Active)
	api.GET("/keywords/:id", keywordHandler.Get)
	api.POST("/keywords", middleware.RequireAdmin(), keywordHandler.Create)
	api.PATCH("/keywords/:id", middleware.RequireAdmin(), keywordHandler.Update)
	api.DELETE("/keywords/:id", middleware.RequireAdmin(), keywordHandler.Delete)

	crawlHistory := api.Group("/crawl-history")
	crawlHistory.Use(middleware.RequireAdmin())
	crawlHistory.GET("", crawlHistoryHandler.List)
	crawlHistory.POST("", crawlHistoryHandler.Create)
	crawlHistory.GET("/:id", crawlHistoryHandler.Get)
	crawlHistory.PATCH("/:id", crawlHistoryHandler.Update)
	crawlHistory.DELETE("/:id", crawlHistoryHandler.Delete)
}

// createTestUser inserts a user directly and returns it with a valid token.
func createTestUser(t *testing.T, username, role, membership string) (*models.User, string) {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	user := models.User{
		Username:         username,
		Email:            username + "@example.com",
		Password:         hash,
		MembershipStatus: membership,
		Role:             role,
	}
	require.NoError(t, db.DB.Create(&user).Error)

	token, err := services.GetTokenService().Generate(user.ID, user.Username, user.Role)
	require.NoError(t, err)
	return &user, token
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "body: %s", w.Body.String())
}
