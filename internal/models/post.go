package models

import (
	"time"
)

type Post struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	RedditID      string     `gorm:"uniqueIndex;size:50;not null" json:"reddit_id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Body          string     `gorm:"type:text" json:"body"`
	Upvotes       int        `gorm:"default:0" json:"upvotes"`
	CommentsCount int        `gorm:"default:0" json:"comments_count"`
	// Reddit display name, free text. Not a foreign key: most posts are
	// written by the crawler and their authors have no local account.
	Author         string     `gorm:"size:255;index" json:"author"`
	SubmissionDate *time.Time `gorm:"index" json:"submission_date"`
	SubredditID    *uint      `gorm:"index" json:"subreddit_id"`
	Subreddit      *Subreddit `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"subreddit,omitempty"`
	// Denormalized copy of Subreddit.Name so list views can filter and
	// display without a join. Filled by services.CreatePost.
	SubredditName string    `gorm:"size:255;index" json:"subreddit_name"`
	PostURL       string    `gorm:"size:255" json:"post_url"`
	ManuallyAdded bool      `gorm:"default:false;index" json:"manually_added"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
