package model

import (
	"time"

	"gorm.io/gorm"
)

// Like marks a user's like on a post. The (post_id, user_id) pair is unique
// at the storage layer so a double like is rejected, not silently duplicated.
type Like struct {
	ID        uint           `gorm:"primaryKey"`
	PostID    uint           `gorm:"not null;uniqueIndex:idx_like_post_user"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_like_post_user;index"`
	CreatedAt time.Time      `gorm:"index"`
	DeletedAt gorm.DeletedAt `gorm:"index"`

	User *User `gorm:"foreignKey:UserID"`
	Post *Post `gorm:"foreignKey:PostID"`
}

func (Like) TableName() string { return "like" }
