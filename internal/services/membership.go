package services

import (
	"time"

	"redditradar/internal/models"

	"gorm.io/gorm"
)

// ApplySubscriptionChange recomputes the owning user's membership status
// after a subscription was created or updated. Premium iff the just-saved
// subscription is active and unexpired, or any other subscription of the same
// user is.
//
// Sibling subscriptions are read without locking; concurrent changes for the
// same user are last-write-wins on the user row.
func ApplySubscriptionChange(conn *gorm.DB, sub *models.Subscription) error {
	now := time.Now()

	status := models.MembershipFree
	if sub.IsActive(now) {
		status = models.MembershipPremium
	} else {
		var others int64
		err := conn.Model(&models.Subscription{}).
			Where("user_id = ? AND id <> ? AND status = ? AND expires_at > ?",
				sub.UserID, sub.ID, models.SubscriptionStatusActive, now).
			Count(&others).Error
		if err != nil {
			return err
		}
		if others > 0 {
			status = models.MembershipPremium
		}
	}

	return conn.Model(&models.User{}).
		Where("id = ?", sub.UserID).
		Update("membership_status", status).Error
}
