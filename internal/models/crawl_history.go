package models

import (
	"time"
)

// CrawlHistory is an audit row written by the external crawler after each run.
type CrawlHistory struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	SubredditID   *uint      `gorm:"index" json:"subreddit_id"`
	Subreddit     *Subreddit `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"subreddit,omitempty"`
	StartTime     time.Time  `gorm:"not null;index" json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	PostsFound    int        `gorm:"default:0" json:"posts_found"`
	CommentsFound int        `gorm:"default:0" json:"comments_found"`
	Status        string     `gorm:"size:50;index" json:"status"` // running, completed, failed
	ErrorMessage  string     `gorm:"type:text" json:"error_message"`
	CreatedAt     time.Time  `json:"created_at"`
}
