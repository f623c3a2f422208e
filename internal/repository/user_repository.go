package repository

import (
	"social-system/internal/model"

	"gorm.io/gorm"
)

// UserRepository is the identity store.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var u model.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByIDWithProfile loads a user with the profile preloaded; Profile stays
// nil when the user never created one.
func (r *UserRepository) GetByIDWithProfile(id uint) (*model.User, error) {
	var u model.User
	if err := r.db.Preload("Profile").First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsernameOrEmail(identifier string) (*model.User, error) {
	var u model.User
	if err := r.db.Where("username = ? OR email = ?", identifier, identifier).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// ListByIDsWithProfile loads identity summaries for a set of ids.
func (r *UserRepository) ListByIDsWithProfile(ids []uint) ([]*model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []*model.User
	err := r.db.Preload("Profile").Where("id IN ?", ids).Find(&users).Error
	return users, err
}

// Search matches username or profile fullname, excluding the caller,
// newest first.
func (r *UserRepository) Search(query string, excludeID uint, limit int) ([]*model.User, error) {
	var users []*model.User

	tx := r.db.Preload("Profile").
		Joins("LEFT JOIN profile ON profile.user_id = user.id").
		Where("user.id <> ?", excludeID)

	if query != "" {
		pattern := "%" + query + "%"
		tx = tx.Where("user.username LIKE ? OR profile.fullname LIKE ?", pattern, pattern)
	}

	err := tx.Order("user.created_at DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "last_seen": gorm.Expr("NOW()")}).Error
}

func (r *UserRepository) UpdatePassword(id uint, passwordHash string) error {
	return r.db.Model(&model.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}
