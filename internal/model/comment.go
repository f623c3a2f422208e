package model

import (
	"time"

	"gorm.io/gorm"
)

// Comment is attached to a post. UserID is the author; post and author
// references are immutable after creation.
type Comment struct {
	ID        uint           `gorm:"primaryKey"`
	PostID    uint           `gorm:"not null;index"`
	UserID    uint           `gorm:"not null;index"`
	Content   string         `gorm:"type:text;not null"`
	CreatedAt time.Time      `gorm:"index"`
	UpdatedAt time.Time      ``
	DeletedAt gorm.DeletedAt `gorm:"index"`

	User *User `gorm:"foreignKey:UserID"`
	Post *Post `gorm:"foreignKey:PostID"`
}

func (Comment) TableName() string { return "comment" }
