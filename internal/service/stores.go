package service

import (
	"social-system/internal/model"
)

// Store interfaces consumed by the services. The gorm repositories satisfy
// them in production; tests substitute in-memory fakes.

// UserStore is the identity lookup surface.
type UserStore interface {
	GetByID(id uint) (*model.User, error)
	GetByIDWithProfile(id uint) (*model.User, error)
	ListByIDsWithProfile(ids []uint) ([]*model.User, error)
}

// PostStore is the post lookup surface needed by the interaction services.
type PostStore interface {
	GetByID(id uint) (*model.Post, error)
}

// CommentStore persists comments.
type CommentStore interface {
	Create(comment *model.Comment) error
	GetByID(id uint) (*model.Comment, error)
	GetByIDWithAuthor(id uint) (*model.Comment, error)
	ListByPost(postID uint) ([]*model.Comment, error)
	Delete(id uint) error
}

// LikeStore persists likes.
type LikeStore interface {
	Create(like *model.Like) error
	GetByPostAndUser(postID, userID uint) (*model.Like, error)
	Delete(id uint) error
}

// FriendshipStore persists relationship rows.
type FriendshipStore interface {
	Create(friendship *model.Friendship) error
	GetByID(id uint) (*model.Friendship, error)
	FindByPair(a, b uint) (*model.Friendship, error)
	UpdateStatusIfPending(id uint, status string) (bool, error)
	Reopen(id uint, requesterID, targetID uint) error
	ListAcceptedByUser(userID uint) ([]*model.Friendship, error)
	ListPendingForUser(userID uint) ([]*model.Friendship, error)
}

// NotificationStore persists notifications.
type NotificationStore interface {
	Create(notification *model.Notification) error
	GetByID(id uint) (*model.Notification, error)
	ListByReceiver(receiverID uint, limit, offset int) ([]*model.Notification, error)
	GetUnread(receiverID uint, limit int) ([]*model.Notification, error)
	CountUnread(receiverID uint) (int64, error)
	MarkRead(id uint) error
	MarkAllRead(receiverID uint) error
}

// Publisher pushes a payload to every live session subscribed on a channel.
// Fire-and-forget by contract: implementations never block, never report
// delivery, and a channel without sessions is a silent no-op.
type Publisher interface {
	Publish(channel string, payload []byte)
}
