package repository

import (
	"social-system/internal/model"

	"gorm.io/gorm"
)

// NotificationRepository is the durable notification store; real-time push
// is advisory, these rows are the source of truth.
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(notification *model.Notification) error {
	return r.db.Create(notification).Error
}

func (r *NotificationRepository) GetByID(id uint) (*model.Notification, error) {
	var n model.Notification
	if err := r.db.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// ListByReceiver returns a receiver's notifications, newest first, sender
// summaries attached.
func (r *NotificationRepository) ListByReceiver(receiverID uint, limit, offset int) ([]*model.Notification, error) {
	var notifications []*model.Notification
	err := r.db.Preload("Sender").Preload("Sender.Profile").
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	return notifications, err
}

// GetUnread returns a receiver's oldest unread notifications up to limit.
func (r *NotificationRepository) GetUnread(receiverID uint, limit int) ([]*model.Notification, error) {
	var notifications []*model.Notification
	err := r.db.Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Order("created_at ASC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// CountUnread counts a receiver's unread notifications.
func (r *NotificationRepository) CountUnread(receiverID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error
	return count, err
}

// MarkRead flips one notification to read.
func (r *NotificationRepository) MarkRead(id uint) error {
	return r.db.Model(&model.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

// MarkAllRead flips all of a receiver's unread notifications to read.
func (r *NotificationRepository) MarkAllRead(receiverID uint) error {
	return r.db.Model(&model.Notification{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Update("is_read", true).Error
}
