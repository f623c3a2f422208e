package repository

import (
	"social-system/internal/model"

	"gorm.io/gorm"
)

// PostRepository stores posts.
type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

func (r *PostRepository) GetByID(id uint) (*model.Post, error) {
	var p model.Post
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListRecent returns the newest posts with author summaries, paginated.
func (r *PostRepository) ListRecent(limit, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.Preload("User").Preload("User.Profile").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

// ListByUser returns one user's posts, newest first.
func (r *PostRepository) ListByUser(userID uint, limit, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.Preload("User").Preload("User.Profile").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

// Delete soft-deletes a post.
func (r *PostRepository) Delete(id uint) error {
	return r.db.Delete(&model.Post{}, id).Error
}
