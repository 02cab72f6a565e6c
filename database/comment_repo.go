package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/blog-graphql-backend/models"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// FindByID returns a comment by its ID
func (r *CommentRepo) FindByID(id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByPostID returns all comments on a post. An unknown post id yields an
// empty slice, not an error.
func (r *CommentRepo) FindByPostID(postID uuid.UUID) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.Where("post_id = ?", postID).Order("created_at").Find(&comments).Error
	return comments, err
}

// Add inserts a new comment and bumps the owning post's last_updated in the
// same transaction, so a failed bump rolls the comment back.
func (r *CommentRepo) Add(comment *models.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return touchPost(tx, comment.PostID)
	})
}

// Update saves an existing comment and bumps the owning post's last_updated
// in the same transaction
func (r *CommentRepo) Update(comment *models.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(comment).Error; err != nil {
			return err
		}
		return touchPost(tx, comment.PostID)
	})
}

// Delete removes a comment from the database by id
func (r *CommentRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Comment{}, "id = ?", id).Error
}

// touchPost marks the post as having fresh comment activity. Post saves do
// not re-trigger comment writes, so this cannot recurse.
func touchPost(tx *gorm.DB, postID uuid.UUID) error {
	return tx.Model(&models.Post{}).Where("id = ?", postID).
		Update("last_updated", time.Now()).Error
}
