package handler

import (
	"social-system/internal/service"
	"social-system/pkg/jwt"
	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the notification inbox routes.
type NotificationHandler struct {
	notifications *service.NotificationService
}

func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.notifications.List(jwt.GetUserIDUint(c),
		queryInt(c, "page", 1), queryInt(c, "page_size", 20))
	if err != nil {
		writeError(c, err)
		return
	}

	infos := make([]*response.NotificationInfo, 0, len(notifications))
	for _, n := range notifications {
		infos = append(infos, response.FilterNotificationInfo(n))
	}
	response.Success(c, infos)
}

// UnreadCount returns the caller's unread notification count.
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notifications.UnreadCount(jwt.GetUserIDUint(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{"unread_count": count})
}

// MarkRead flips one of the caller's notifications to read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	notificationID := pathID(c, "notificationId")
	if notificationID == 0 {
		response.BadRequest(c, "invalid notification id")
		return
	}

	if err := h.notifications.MarkRead(jwt.GetUserIDUint(c), notificationID); err != nil {
		writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, "notification read", nil)
}

// MarkAllRead flips all of the caller's notifications to read.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notifications.MarkAllRead(jwt.GetUserIDUint(c)); err != nil {
		writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, "all notifications read", nil)
}
