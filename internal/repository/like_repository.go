package repository

import (
	"social-system/internal/model"

	"gorm.io/gorm"
)

// LikeRepository stores likes.
type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) Create(like *model.Like) error {
	return r.db.Create(like).Error
}

func (r *LikeRepository) GetByPostAndUser(postID, userID uint) (*model.Like, error) {
	var l model.Like
	if err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LikeRepository) Delete(id uint) error {
	return r.db.Delete(&model.Like{}, id).Error
}

// CountByPost returns the number of likes on a post.
func (r *LikeRepository) CountByPost(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
