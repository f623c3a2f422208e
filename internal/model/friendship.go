package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Friendship status values. Lifecycle: pending -> accepted | declined.
const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
	FriendshipDeclined = "declined"
)

// Friendship is a single directed row for a friend request: UserID sent it,
// FriendID is the addressed party and the only one allowed to respond.
// PairKey canonicalizes the unordered pair to "min:max" and carries a unique
// index, so two concurrent requests over the same pair cannot both insert.
type Friendship struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index"`
	FriendID  uint      `gorm:"not null;index"`
	PairKey   string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Status    string    `gorm:"type:varchar(32);not null;default:'pending'"`
	CreatedAt time.Time ``
	UpdatedAt time.Time ``

	User   *User `gorm:"foreignKey:UserID"`
	Friend *User `gorm:"foreignKey:FriendID"`
}

func (Friendship) TableName() string { return "friendship" }

// FriendshipPairKey builds the canonical key for an unordered user pair.
func FriendshipPairKey(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// BeforeCreate fills PairKey so callers cannot forget the canonical form.
func (f *Friendship) BeforeCreate(tx *gorm.DB) error {
	if f.PairKey == "" {
		f.PairKey = FriendshipPairKey(f.UserID, f.FriendID)
	}
	return nil
}
