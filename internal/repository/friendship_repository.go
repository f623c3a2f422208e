package repository

import (
	"social-system/internal/model"

	"gorm.io/gorm"
)

// FriendshipRepository stores relationship rows. Pair uniqueness is a
// storage-layer constraint (unique index on the canonical pair key), so the
// insert itself, not a prior existence check, is what closes the race.
type FriendshipRepository struct {
	db *gorm.DB
}

func NewFriendshipRepository(db *gorm.DB) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

func (r *FriendshipRepository) Create(friendship *model.Friendship) error {
	return r.db.Create(friendship).Error
}

func (r *FriendshipRepository) GetByID(id uint) (*model.Friendship, error) {
	var f model.Friendship
	if err := r.db.First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// FindByPair looks up the relationship row for an unordered user pair in
// either direction.
func (r *FriendshipRepository) FindByPair(a, b uint) (*model.Friendship, error) {
	var f model.Friendship
	err := r.db.Where("pair_key = ?", model.FriendshipPairKey(a, b)).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// UpdateStatusIfPending transitions a pending row to a terminal status.
// The WHERE clause makes the transition atomic: a row already responded to
// reports false instead of being overwritten.
func (r *FriendshipRepository) UpdateStatusIfPending(id uint, status string) (bool, error) {
	result := r.db.Model(&model.Friendship{}).
		Where("id = ? AND status = ?", id, model.FriendshipPending).
		Update("status", status)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Reopen turns a declined row back into a pending request with a possibly
// reversed direction, keeping the pair-key constraint satisfied.
func (r *FriendshipRepository) Reopen(id uint, requesterID, targetID uint) error {
	return r.db.Model(&model.Friendship{}).
		Where("id = ? AND status = ?", id, model.FriendshipDeclined).
		Updates(map[string]interface{}{
			"user_id":   requesterID,
			"friend_id": targetID,
			"status":    model.FriendshipPending,
		}).Error
}

// ListAcceptedByUser returns accepted rows where the user appears on either
// side.
func (r *FriendshipRepository) ListAcceptedByUser(userID uint) ([]*model.Friendship, error) {
	var friendships []*model.Friendship
	err := r.db.Where("status = ? AND (user_id = ? OR friend_id = ?)",
		model.FriendshipAccepted, userID, userID).
		Find(&friendships).Error
	return friendships, err
}

// ListPendingForUser returns incoming pending requests only, requester
// summary attached.
func (r *FriendshipRepository) ListPendingForUser(userID uint) ([]*model.Friendship, error) {
	var friendships []*model.Friendship
	err := r.db.Preload("User").Preload("User.Profile").
		Where("friend_id = ? AND status = ?", userID, model.FriendshipPending).
		Order("created_at DESC").
		Find(&friendships).Error
	return friendships, err
}
