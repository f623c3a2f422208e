package model

import (
	"time"
)

// Profile holds a user's extended attributes. One row per user at most;
// created lazily on first update.
type Profile struct {
	ID             uint       `gorm:"primaryKey"`
	UserID         uint       `gorm:"not null;uniqueIndex"`
	Fullname       string     `gorm:"type:varchar(128)"`
	Bio            string     `gorm:"type:text"`
	Birthday       *time.Time ``
	AvatarURL      string     `gorm:"type:varchar(255)"`
	AvatarObjectID string     `gorm:"type:varchar(255)"` // object-store key of the current avatar
	CoverURL       string     `gorm:"type:varchar(255)"`
	CoverObjectID  string     `gorm:"type:varchar(255)"`
	CreatedAt      time.Time  ``
	UpdatedAt      time.Time  ``
}

func (Profile) TableName() string { return "profile" }
