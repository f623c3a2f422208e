package model

import (
	"time"

	"gorm.io/gorm"
)

// Post is a user's post. UserID is the owner and is immutable.
type Post struct {
	ID        uint           `gorm:"primaryKey"`
	UserID    uint           `gorm:"not null;index"`
	Content   string         `gorm:"type:text;not null"`
	CreatedAt time.Time      `gorm:"index"`
	UpdatedAt time.Time      ``
	DeletedAt gorm.DeletedAt `gorm:"index"`

	User *User `gorm:"foreignKey:UserID"`
}

func (Post) TableName() string { return "post" }
