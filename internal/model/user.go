package model

import (
	"time"

	"gorm.io/gorm"
)

// Role values for User.Role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an authenticated identity. Username and email are unique; only
// the password hash is stored. Status tracks online/offline for presence.
type User struct {
	ID           uint           `gorm:"primaryKey"`
	Username     string         `gorm:"type:varchar(64);not null;uniqueIndex"`
	Email        string         `gorm:"type:varchar(128);uniqueIndex"`
	PasswordHash string         `gorm:"type:varchar(255);not null"`
	Role         string         `gorm:"type:varchar(32);not null;default:'user';index"`
	Status       string         `gorm:"type:varchar(32);default:'offline'"`
	LastSeen     time.Time      ``
	CreatedAt    time.Time      ``
	UpdatedAt    time.Time      ``
	DeletedAt    gorm.DeletedAt `gorm:"index"`

	Profile *Profile `gorm:"foreignKey:UserID"`
}

func (User) TableName() string { return "user" }
