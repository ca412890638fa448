package services

import (
	"redditradar/internal/models"

	"gorm.io/gorm"
)

// DeleteCommentTree removes a comment and every transitive reply under it.
// The subtree is collected breadth-first, then deleted in one statement so
// the cascade is atomic and does not depend on DB foreign-key support.
func DeleteCommentTree(conn *gorm.DB, commentID uint) error {
	return conn.Transaction(func(tx *gorm.DB) error {
		ids := []uint{commentID}
		frontier := []uint{commentID}

		for len(frontier) > 0 {
			var children []uint
			if err := tx.Model(&models.Comment{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &children).Error; err != nil {
				return err
			}
			ids = append(ids, children...)
			frontier = children
		}

		return tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error
	})
}

// DeletePostWithComments removes a post together with all of its comments.
func DeletePostWithComments(conn *gorm.DB, postID uint) error {
	return conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, postID).Error
	})
}
