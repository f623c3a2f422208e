package repository

import (
	"social-system/internal/model"

	"gorm.io/gorm"
)

// CommentRepository stores comments.
type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

func (r *CommentRepository) GetByID(id uint) (*model.Comment, error) {
	var c model.Comment
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByIDWithAuthor loads a comment with its author's identity summary so
// the client can render it without a second round trip.
func (r *CommentRepository) GetByIDWithAuthor(id uint) (*model.Comment, error) {
	var c model.Comment
	if err := r.db.Preload("User").Preload("User.Profile").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByPost returns a post's comments in chronological order with author
// summaries.
func (r *CommentRepository) ListByPost(postID uint) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.Preload("User").Preload("User.Profile").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// Delete soft-deletes a comment. Notifications already sent for it are left
// in place.
func (r *CommentRepository) Delete(id uint) error {
	return r.db.Delete(&model.Comment{}, id).Error
}
