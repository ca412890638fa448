package models

import (
	"time"
)

const SubscriptionStatusActive = "active"

type Subscription struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	UserID               uint       `gorm:"not null;index" json:"user_id"`
	User                 *User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	StripeSubscriptionID string     `gorm:"size:255" json:"stripe_subscription_id"`
	Status               string     `gorm:"size:50;not null" json:"status"` // active, canceled, past_due
	ExpiresAt            *time.Time `json:"expires_at"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// IsActive reports whether the subscription grants premium access right now.
func (s *Subscription) IsActive(now time.Time) bool {
	return s.Status == SubscriptionStatusActive && s.ExpiresAt != nil && s.ExpiresAt.After(now)
}
