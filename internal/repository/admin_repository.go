package repository

import (
	"social-system/internal/model"

	"gorm.io/gorm"
)

// AdminRepository serves the read-only aggregation queries behind the admin
// dashboard. No invariants beyond read consistency.
type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Stats is the dashboard summary.
type Stats struct {
	TotalUsers    int64            `json:"total_users"`
	TotalPosts    int64            `json:"total_posts"`
	TotalLikes    int64            `json:"total_likes"`
	TotalComments int64            `json:"total_comments"`
	UsersByRole   map[string]int64 `json:"users_by_role"`
}

// GetStats counts the core entities and groups users by role.
func (r *AdminRepository) GetStats() (*Stats, error) {
	stats := &Stats{UsersByRole: make(map[string]int64)}

	if err := r.db.Model(&model.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Post{}).Count(&stats.TotalPosts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Like{}).Count(&stats.TotalLikes).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Comment{}).Count(&stats.TotalComments).Error; err != nil {
		return nil, err
	}

	type roleCount struct {
		Role  string
		Count int64
	}
	var rows []roleCount
	if err := r.db.Model(&model.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.UsersByRole[row.Role] = row.Count
	}

	return stats, nil
}

// RecentUsers returns the most recently registered users with profile
// summaries, for the login-activity listing.
func (r *AdminRepository) RecentUsers(limit int) ([]*model.User, error) {
	var users []*model.User
	err := r.db.Preload("Profile").
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

// RecentLikes returns recent likes joined with actor and post, optionally
// filtered by post.
func (r *AdminRepository) RecentLikes(postID uint, limit int) ([]*model.Like, error) {
	tx := r.db.Preload("User").Preload("User.Profile").Preload("Post")
	if postID > 0 {
		tx = tx.Where("post_id = ?", postID)
	}
	var likes []*model.Like
	err := tx.Order("created_at DESC").Limit(limit).Find(&likes).Error
	return likes, err
}

// RecentComments returns recent comments joined with actor and post,
// optionally filtered by post.
func (r *AdminRepository) RecentComments(postID uint, limit int) ([]*model.Comment, error) {
	tx := r.db.Preload("User").Preload("User.Profile").Preload("Post")
	if postID > 0 {
		tx = tx.Where("post_id = ?", postID)
	}
	var comments []*model.Comment
	err := tx.Order("created_at DESC").Limit(limit).Find(&comments).Error
	return comments, err
}
