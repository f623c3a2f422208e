package response

import (
	"net/http"

	"social-system/internal/model"

	"github.com/gin-gonic/gin"
)

const timeLayout = "2006-01-02 15:04:05"

// Response is the uniform JSON envelope. Code 0 means success.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"` // details, debug mode only
}

// Success writes a success envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage writes a success envelope with a custom message.
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// Error writes an error envelope.
func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest writes an invalid-argument error.
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}

// Unauthorized writes an authentication error.
func Unauthorized(c *gin.Context, message string) {
	Error(c, 401, message)
}

// Forbidden writes an authorization error.
func Forbidden(c *gin.Context, message string) {
	Error(c, 403, message)
}

// NotFound writes a missing-entity error.
func NotFound(c *gin.Context, message string) {
	Error(c, 404, message)
}

// Conflict writes a state-machine violation error.
func Conflict(c *gin.Context, message string) {
	Error(c, 409, message)
}

// InternalError writes a generic server error.
func InternalError(c *gin.Context, message string) {
	Error(c, 500, message)
}

// ProfileInfo is the client view of a profile.
type ProfileInfo struct {
	Fullname  string `json:"fullname"`
	Bio       string `json:"bio"`
	Birthday  string `json:"birthday,omitempty"`
	AvatarURL string `json:"avatar_url"`
	CoverURL  string `json:"cover_url"`
}

// FilterProfileInfo maps a profile row to its client view.
func FilterProfileInfo(profile *model.Profile) *ProfileInfo {
	if profile == nil {
		return nil
	}

	info := &ProfileInfo{
		Fullname:  profile.Fullname,
		Bio:       profile.Bio,
		AvatarURL: profile.AvatarURL,
		CoverURL:  profile.CoverURL,
	}
	if profile.Birthday != nil {
		info.Birthday = profile.Birthday.Format("2006-01-02")
	}
	return info
}

// UserInfo is the client view of an identity, sensitive fields hidden.
type UserInfo struct {
	ID        uint         `json:"id"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	Role      string       `json:"role"`
	Status    string       `json:"status"`
	CreatedAt string       `json:"created_at"`
	Profile   *ProfileInfo `json:"profile,omitempty"`
}

// FilterUserInfo maps a user row (with optional preloaded profile) to its
// client view.
func FilterUserInfo(user *model.User) *UserInfo {
	if user == nil {
		return nil
	}

	return &UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		Status:    user.Status,
		CreatedAt: user.CreatedAt.Format(timeLayout),
		Profile:   FilterProfileInfo(user.Profile),
	}
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User        *UserInfo `json:"user"`
	AccessToken string    `json:"access_token"`
}

// SearchUserInfo is a search result annotated with the friendship status
// toward the caller; Friendship is nil when no relationship row exists.
type SearchUserInfo struct {
	UserInfo
	Friendship *FriendshipStatus `json:"friendship"`
}

// FriendshipStatus is the relationship annotation on search results.
type FriendshipStatus struct {
	Status string `json:"status"`
}

// FriendshipInfo is the client view of a relationship row.
type FriendshipInfo struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	FriendID  uint      `json:"friend_id"`
	Status    string    `json:"status"`
	CreatedAt string    `json:"created_at"`
	Requester *UserInfo `json:"requester,omitempty"`
}

// FilterFriendshipInfo maps a relationship row to its client view.
func FilterFriendshipInfo(f *model.Friendship) *FriendshipInfo {
	if f == nil {
		return nil
	}

	return &FriendshipInfo{
		ID:        f.ID,
		UserID:    f.UserID,
		FriendID:  f.FriendID,
		Status:    f.Status,
		CreatedAt: f.CreatedAt.Format(timeLayout),
		Requester: FilterUserInfo(f.User),
	}
}

// PostInfo is the client view of a post.
type PostInfo struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt string    `json:"created_at"`
	Author    *UserInfo `json:"author,omitempty"`
}

// FilterPostInfo maps a post row to its client view.
func FilterPostInfo(post *model.Post) *PostInfo {
	if post == nil {
		return nil
	}

	return &PostInfo{
		ID:        post.ID,
		UserID:    post.UserID,
		Content:   post.Content,
		CreatedAt: post.CreatedAt.Format(timeLayout),
		Author:    FilterUserInfo(post.User),
	}
}

// CommentInfo is the client view of a comment, author attached so the
// client can render it without a second round trip.
type CommentInfo struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	UserID    uint      `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt string    `json:"created_at"`
	Author    *UserInfo `json:"author,omitempty"`
}

// FilterCommentInfo maps a comment row to its client view.
func FilterCommentInfo(comment *model.Comment) *CommentInfo {
	if comment == nil {
		return nil
	}

	return &CommentInfo{
		ID:        comment.ID,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt.Format(timeLayout),
		Author:    FilterUserInfo(comment.User),
	}
}

// NotificationInfo is the client view of a notification.
type NotificationInfo struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Metadata  string    `json:"metadata,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt string    `json:"created_at"`
	Sender    *UserInfo `json:"sender,omitempty"`
}

// FilterNotificationInfo maps a notification row to its client view.
func FilterNotificationInfo(n *model.Notification) *NotificationInfo {
	if n == nil {
		return nil
	}

	return &NotificationInfo{
		ID:        n.ID,
		Type:      n.Type,
		Content:   n.Content,
		Metadata:  n.Metadata,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(timeLayout),
		Sender:    FilterUserInfo(n.Sender),
	}
}
