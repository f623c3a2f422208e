package repository

import (
	"social-system/internal/model"

	"gorm.io/gorm"
)

// ProfileRepository stores per-user extended attributes.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(profile *model.Profile) error {
	return r.db.Create(profile).Error
}

func (r *ProfileRepository) GetByUserID(userID uint) (*model.Profile, error) {
	var p model.Profile
	if err := r.db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Save persists in-place edits to an existing profile row.
func (r *ProfileRepository) Save(profile *model.Profile) error {
	return r.db.Save(profile).Error
}
