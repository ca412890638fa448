package models

import (
	"time"
)

const (
	NotificationTypeNewPost = "New Post"
	NotificationTypeSystem  = "System"
)

type Notification struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Type       string    `gorm:"size:50;not null" json:"type"`
	Content    string    `gorm:"type:text" json:"content"`
	ReadStatus bool      `gorm:"default:false;index" json:"read_status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
