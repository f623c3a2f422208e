package model

import (
	"time"
)

// Notification type values.
const (
	NotifyComment       = "comment"
	NotifyLike          = "like"
	NotifyFriendRequest = "friend_request"
	NotifyFriendAccept  = "friend_accept"
)

// Notification is the durable record of an event directed at a receiver,
// independent of whether real-time delivery succeeded. Immutable after
// creation except IsRead. Never created when sender == receiver.
type Notification struct {
	ID         uint      `gorm:"primaryKey"`
	ReceiverID uint      `gorm:"not null;index"`
	SenderID   uint      `gorm:"not null;index"`
	Type       string    `gorm:"type:varchar(32);not null;index"`
	Content    string    `gorm:"type:varchar(255);not null"`
	Metadata   string    `gorm:"type:json"` // JSON payload, e.g. {"post_id":1,"comment_id":2}
	IsRead     bool      `gorm:"not null;default:false;index"`
	CreatedAt  time.Time `gorm:"index"`

	Sender *User `gorm:"foreignKey:SenderID"`
}

func (Notification) TableName() string { return "notification" }
