package service

import (
	"encoding/json"
	"errors"

	"social-system/internal/model"
	"social-system/pkg/apperr"
	"social-system/pkg/redis"
	"social-system/pkg/websocket"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NotificationService owns the durable notification store and the advisory
// real-time push. Persisted rows are authoritative; the publisher is
// best-effort and its failures never surface to the triggering caller.
type NotificationService struct {
	store     NotificationStore
	users     UserStore
	publisher Publisher
}

func NewNotificationService(store NotificationStore, users UserStore, publisher Publisher) *NotificationService {
	return &NotificationService{store: store, users: users, publisher: publisher}
}

// Notify persists a notification for receiver and attempts real-time
// delivery. Self-actions (sender == receiver) are suppressed entirely.
// A publish failure is invisible here by design; a store failure is
// returned so the caller can at least log it.
func (s *NotificationService) Notify(receiverID, senderID uint, notifyType, content string, metadata map[string]interface{}) (*model.Notification, error) {
	if receiverID == senderID {
		return nil, nil
	}

	var metadataJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(b)
		}
	}

	notification := &model.Notification{
		ReceiverID: receiverID,
		SenderID:   senderID,
		Type:       notifyType,
		Content:    content,
		Metadata:   metadataJSON,
	}
	if err := s.store.Create(notification); err != nil {
		return nil, apperr.Internal("failed to create notification", err)
	}

	if err := redis.IncrementUnreadNotifications(receiverID); err != nil {
		zap.L().Warn("unread counter update failed",
			zap.Uint("receiver_id", receiverID),
			zap.Error(err),
		)
	}

	s.push(notification)

	return notification, nil
}

// push hands the notification to every live session on the receiver's
// channel. No live session means nobody hears it; clients reconcile from
// the store.
func (s *NotificationService) push(n *model.Notification) {
	payload := map[string]interface{}{
		"type":       "notification",
		"id":         n.ID,
		"notif_type": n.Type,
		"sender_id":  n.SenderID,
		"content":    n.Content,
		"metadata":   n.Metadata,
		"created_at": n.CreatedAt.Unix(),
	}

	if sender, err := s.users.GetByIDWithProfile(n.SenderID); err == nil {
		senderInfo := map[string]interface{}{
			"id":       sender.ID,
			"username": sender.Username,
		}
		if sender.Profile != nil {
			senderInfo["fullname"] = sender.Profile.Fullname
			senderInfo["avatar_url"] = sender.Profile.AvatarURL
		}
		payload["sender"] = senderInfo
	}

	b, err := json.Marshal(payload)
	if err != nil {
		zap.L().Warn("marshal notification payload failed", zap.Error(err))
		return
	}
	s.publisher.Publish(websocket.UserChannel(n.ReceiverID), b)
}

// List returns a receiver's notifications, newest first.
func (s *NotificationService) List(receiverID uint, page, pageSize int) ([]*model.Notification, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	notifications, err := s.store.ListByReceiver(receiverID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperr.Internal("failed to list notifications", err)
	}
	return notifications, nil
}

// UnreadCount serves the counter from redis, recounting from the store and
// resyncing the cache on a miss.
func (s *NotificationService) UnreadCount(receiverID uint) (int64, error) {
	if count, err := redis.GetUnreadNotifications(receiverID); err == nil && count >= 0 {
		return count, nil
	}

	count, err := s.store.CountUnread(receiverID)
	if err != nil {
		return 0, apperr.Internal("failed to count notifications", err)
	}

	if err := redis.SetUnreadNotifications(receiverID, count); err != nil {
		zap.L().Warn("unread counter resync failed",
			zap.Uint("receiver_id", receiverID),
			zap.Error(err),
		)
	}
	return count, nil
}

// MarkRead flips one notification to read. Only the receiver may do so.
func (s *NotificationService) MarkRead(actorID, notificationID uint) error {
	notification, err := s.store.GetByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("notification not found")
		}
		return apperr.Internal("failed to load notification", err)
	}

	if notification.ReceiverID != actorID {
		return apperr.Forbidden("not your notification")
	}
	if notification.IsRead {
		return nil
	}

	if err := s.store.MarkRead(notificationID); err != nil {
		return apperr.Internal("failed to mark notification read", err)
	}
	_ = redis.DecrementUnreadNotifications(actorID)
	return nil
}

// MarkAllRead flips all of the actor's unread notifications to read.
func (s *NotificationService) MarkAllRead(actorID uint) error {
	if err := s.store.MarkAllRead(actorID); err != nil {
		return apperr.Internal("failed to mark notifications read", err)
	}
	_ = redis.ResetUnreadNotifications(actorID)
	return nil
}
