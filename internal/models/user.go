package models

import (
	"time"
)

// Membership tiers derived from subscriptions, see services.ApplySubscriptionChange
const (
	MembershipFree    = "Free"
	MembershipPremium = "Premium"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Username         string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email            string    `gorm:"uniqueIndex;not null" json:"email"`
	Password         string    `gorm:"not null" json:"-"` // bcrypt hash
	OAuthProvider    string    `gorm:"size:50" json:"oauth_provider"`
	MembershipStatus string    `gorm:"size:50;default:'Free';not null" json:"membership_status"`
	Role             string    `gorm:"size:20;default:'user';not null" json:"role"` // user, admin
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsPremium() bool {
	return u.MembershipStatus == MembershipPremium
}
