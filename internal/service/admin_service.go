package service

import (
	"social-system/internal/model"
	"social-system/internal/repository"
	"social-system/pkg/apperr"
)

// AdminService fronts the dashboard aggregation queries. Authorization is
// enforced at the route level; nothing here mutates state.
type AdminService struct {
	repo *repository.AdminRepository
}

func NewAdminService(repo *repository.AdminRepository) *AdminService {
	return &AdminService{repo: repo}
}

// GetStats returns entity totals and the user-by-role breakdown.
func (s *AdminService) GetStats() (*repository.Stats, error) {
	stats, err := s.repo.GetStats()
	if err != nil {
		return nil, apperr.Internal("failed to load stats", err)
	}
	return stats, nil
}

// LoginActivity lists the most recently registered users with their
// last-seen timestamps.
func (s *AdminService) LoginActivity(limit int) ([]*model.User, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	users, err := s.repo.RecentUsers(limit)
	if err != nil {
		return nil, apperr.Internal("failed to load login activity", err)
	}
	return users, nil
}

// PostLikes lists recent likes, optionally scoped to one post.
func (s *AdminService) PostLikes(postID uint, limit int) ([]*model.Like, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	likes, err := s.repo.RecentLikes(postID, limit)
	if err != nil {
		return nil, apperr.Internal("failed to load likes", err)
	}
	return likes, nil
}

// PostComments lists recent comments, optionally scoped to one post.
func (s *AdminService) PostComments(postID uint, limit int) ([]*model.Comment, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	comments, err := s.repo.RecentComments(postID, limit)
	if err != nil {
		return nil, apperr.Internal("failed to load comments", err)
	}
	return comments, nil
}
