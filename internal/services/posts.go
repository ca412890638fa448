package services

import (
	"fmt"
	"log/slog"

	"redditradar/internal/models"

	"gorm.io/gorm"
)

const notificationBatchSize = 100

// CreatePost persists a new post and runs the consistency rules that hang off
// a post insert: the subreddit-name denormalization and the premium
// notification fan-out. Everything happens in one transaction, so a failed
// fan-out rolls the post back too.
//
// The fan-out writes one notification row per premium user. Crawler batches
// of N posts therefore cost N x premium-users rows; the batch insert bounds
// statements, not rows.
func CreatePost(conn *gorm.DB, post *models.Post) error {
	return conn.Transaction(func(tx *gorm.DB) error {
		if err := fillSubredditName(tx, post); err != nil {
			return err
		}

		if err := tx.Create(post).Error; err != nil {
			return err
		}

		var premiumIDs []uint
		if err := tx.Model(&models.User{}).
			Where("membership_status = ?", models.MembershipPremium).
			Pluck("id", &premiumIDs).Error; err != nil {
			return err
		}
		if len(premiumIDs) == 0 {
			return nil
		}

		notifications := make([]models.Notification, len(premiumIDs))
		for i, id := range premiumIDs {
			notifications[i] = models.Notification{
				UserID:  id,
				Type:    models.NotificationTypeNewPost,
				Content: fmt.Sprintf("A new post has been added: %q", post.Title),
			}
		}
		if err := tx.CreateInBatches(notifications, notificationBatchSize).Error; err != nil {
			return err
		}

		slog.Debug("post notification fan-out", "post_id", post.ID, "recipients", len(premiumIDs))
		return nil
	})
}

// UpdatePost saves an existing post, re-applying the subreddit-name fill when
// the post gained a subreddit reference without a cached name. No fan-out on
// updates.
func UpdatePost(conn *gorm.DB, post *models.Post) error {
	return conn.Transaction(func(tx *gorm.DB) error {
		if err := fillSubredditName(tx, post); err != nil {
			return err
		}
		return tx.Save(post).Error
	})
}

func fillSubredditName(tx *gorm.DB, post *models.Post) error {
	if post.SubredditID == nil || post.SubredditName != "" {
		return nil
	}
	var subreddit models.Subreddit
	if err := tx.First(&subreddit, *post.SubredditID).Error; err != nil {
		return fmt.Errorf("subreddit %d: %w", *post.SubredditID, err)
	}
	post.SubredditName = subreddit.Name
	return nil
}
