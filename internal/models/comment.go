package models

import (
	"time"
)

type Comment struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	RedditID       string     `gorm:"uniqueIndex;size:50;not null" json:"reddit_id"`
	PostID         uint       `gorm:"not null;index" json:"post_id"`
	Post           *Post      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ParentID       *uint      `gorm:"index" json:"parent_id"` // nil for top-level comments
	Parent         *Comment   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Body           string     `gorm:"type:text;not null" json:"body"`
	Author         string     `gorm:"size:255;index" json:"author"`
	Upvotes        int        `gorm:"default:0" json:"upvotes"`
	SubmissionDate *time.Time `json:"submission_date"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
