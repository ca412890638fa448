package models

import (
	"time"
)

// Keyword is a search phrase the external crawler looks for on Reddit.
// This service only stores them; the crawler polls /api/keywords/active.
type Keyword struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Phrase      string    `gorm:"uniqueIndex;size:255;not null" json:"phrase"`
	Description string    `gorm:"type:text" json:"description"`
	// No gorm default tag: with one, gorm omits the zero value on insert
	// and false would silently come back as the column default. The create
	// handler applies the true default instead.
	Active      bool      `gorm:"index" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
