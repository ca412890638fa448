package db

import (
	"log/slog"
	"os"

	"redditradar/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=redditradar port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	slog.Info("database connection established")

	if err := Migrate(DB); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}
	slog.Info("database migration completed")
}

// Migrate runs AutoMigrate for every table. Split out from Init so tests can
// run it against their own connection.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.Subreddit{},
		&models.Post{},
		&models.Comment{},
		&models.Notification{},
		&models.Subscription{},
		&models.Keyword{},
		&models.CrawlHistory{},
	)
}
