package router

import (
	"redditradar/internal/handlers"
	"redditradar/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	authHandler := handlers.NewAuthHandler()
	userHandler := handlers.NewUserHandler()
	subredditHandler := handlers.NewSubredditHandler()
	postHandler := handlers.NewPostHandler()
	commentHandler := handlers.NewCommentHandler()
	notificationHandler := handlers.NewNotificationHandler()
	subscriptionHandler := handlers.NewSubscriptionHandler()
	keywordHandler := handlers.NewKeywordHandler()
	crawlHistoryHandler := handlers.NewCrawlHistoryHandler()

	api := r.Group("/api")
	api.Use(middleware.OptionalAuth())

	// Auth
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/me", middleware.RequireAuth(), authHandler.Me)

	// Users: listing is admin-only, everything else needs a login
	users := api.Group("/users")
	users.Use(middleware.RequireAuth())
	{
		users.GET("", middleware.RequireAdmin(), userHandler.List)
		users.POST("", middleware.RequireAdmin(), userHandler.Create)
		users.GET("/:id", userHandler.Get)
		users.PUT("/:id", userHandler.Update)
		users.PATCH("/:id", userHandler.Update)
		users.DELETE("/:id", userHandler.Delete)
	}

	// Subreddits: public read, admin write
	api.GET("/subreddits", subredditHandler.List)
	api.GET("/subreddits/:id", subredditHandler.Get)
	subredditsAdmin := api.Group("/subreddits")
	subredditsAdmin.Use(middleware.RequireAdmin())
	{
		subredditsAdmin.POST("", subredditHandler.Create)
		subredditsAdmin.PUT("/:id", subredditHandler.Update)
		subredditsAdmin.PATCH("/:id", subredditHandler.Update)
		subredditsAdmin.DELETE("/:id", subredditHandler.Delete)
	}

	// Posts: public read, authenticated write, owner/admin checked in handler
	api.GET("/posts", postHandler.List)
	api.GET("/posts/manual", postHandler.Manual)
	api.GET("/posts/digest", middleware.RequireAuth(), middleware.RequirePremium(), postHandler.Digest)
	api.GET("/posts/:id", postHandler.Get)
	postsAuth := api.Group("/posts")
	postsAuth.Use(middleware.RequireAuth())
	{
		postsAuth.POST("", postHandler.Create)
		postsAuth.PUT("/:id", postHandler.Update)
		postsAuth.PATCH("/:id", postHandler.Update)
		postsAuth.DELETE("/:id", postHandler.Delete)
	}

	// Comments: public read, authenticated write
	api.GET("/comments", commentHandler.List)
	api.GET("/comments/:id", commentHandler.Get)
	commentsAuth := api.Group("/comments")
	commentsAuth.Use(middleware.RequireAuth())
	{
		commentsAuth.POST("", commentHandler.Create)
		commentsAuth.PUT("/:id", commentHandler.Update)
		commentsAuth.PATCH("/:id", commentHandler.Update)
		commentsAuth.DELETE("/:id", commentHandler.Delete)
	}

	// Notifications: always scoped to the caller
	notifications := api.Group("/notifications")
	notifications.Use(middleware.RequireAuth())
	{
		notifications.GET("", notificationHandler.List)
		notifications.POST("", notificationHandler.Create)
		notifications.POST("/mark-all-read", notificationHandler.MarkAllRead)
		notifications.GET("/:id", notificationHandler.Get)
		notifications.PUT("/:id", notificationHandler.Update)
		notifications.PATCH("/:id", notificationHandler.Update)
		notifications.POST("/:id/mark-read", notificationHandler.MarkRead)
		notifications.DELETE("/:id", notificationHandler.Delete)
	}

	// Subscriptions: caller-scoped, admin sees everything
	subscriptions := api.Group("/subscriptions")
	subscriptions.Use(middleware.RequireAuth())
	{
		subscriptions.GET("", subscriptionHandler.List)
		subscriptions.POST("", subscriptionHandler.Create)
		subscriptions.GET("/:id", subscriptionHandler.Get)
		subscriptions.PUT("/:id", subscriptionHandler.Update)
		subscriptions.PATCH("/:id", subscriptionHandler.Update)
		subscriptions.DELETE("/:id", subscriptionHandler.Delete)
	}

	// Keywords: public read (the crawler polls /active), admin write
	api.GET("/keywords", keywordHandler.List)
	api.GET("/keywords/active", keywordHandler.Active)
	api.GET("/keywords/:id", keywordHandler.Get)
	keywordsAdmin := api.Group("/keywords")
	keywordsAdmin.Use(middleware.RequireAdmin())
	{
		keywordsAdmin.POST("", keywordHandler.Create)
		keywordsAdmin.PUT("/:id", keywordHandler.Update)
		keywordsAdmin.PATCH("/:id", keywordHandler.Update)
		keywordsAdmin.DELETE("/:id", keywordHandler.Delete)
	}

	// Crawl history: admin-only, written by the crawler
	crawlHistory := api.Group("/crawl-history")
	crawlHistory.Use(middleware.RequireAdmin())
	{
		crawlHistory.GET("", crawlHistoryHandler.List)
		crawlHistory.POST("", crawlHistoryHandler.Create)
		crawlHistory.GET("/:id", crawlHistoryHandler.Get)
		crawlHistory.PUT("/:id", crawlHistoryHandler.Update)
		crawlHistory.PATCH("/:id", crawlHistoryHandler.Update)
		crawlHistory.DELETE("/:id", crawlHistoryHandler.Delete)
	}
}
