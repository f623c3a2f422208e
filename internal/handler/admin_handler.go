package handler

import (
	"social-system/internal/service"
	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the dashboard aggregation routes. The route group is
// gated on the admin role.
type AdminHandler struct {
	admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Stats returns entity totals and the user-by-role breakdown.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.admin.GetStats()
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, stats)
}

// LoginActivity lists recently registered users with last-seen timestamps.
func (h *AdminHandler) LoginActivity(c *gin.Context) {
	users, err := h.admin.LoginActivity(queryInt(c, "limit", 50))
	if err != nil {
		writeError(c, err)
		return
	}

	type activityRow struct {
		User     *response.UserInfo `json:"user"`
		LastSeen string             `json:"last_seen,omitempty"`
	}
	rows := make([]activityRow, 0, len(users))
	for _, u := range users {
		row := activityRow{User: response.FilterUserInfo(u)}
		if !u.LastSeen.IsZero() {
			row.LastSeen = u.LastSeen.Format("2006-01-02 15:04:05")
		}
		rows = append(rows, row)
	}
	response.Success(c, rows)
}

// Likes lists recent likes, optionally filtered to one post via ?post_id=.
func (h *AdminHandler) Likes(c *gin.Context) {
	likes, err := h.admin.PostLikes(uint(queryInt(c, "post_id", 0)), queryInt(c, "limit", 50))
	if err != nil {
		writeError(c, err)
		return
	}

	type likeRow struct {
		ID        uint               `json:"id"`
		PostID    uint               `json:"post_id"`
		User      *response.UserInfo `json:"user"`
		CreatedAt string             `json:"created_at"`
	}
	rows := make([]likeRow, 0, len(likes))
	for _, l := range likes {
		rows = append(rows, likeRow{
			ID:        l.ID,
			PostID:    l.PostID,
			User:      response.FilterUserInfo(l.User),
			CreatedAt: l.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	response.Success(c, rows)
}

// Comments lists recent comments, optionally filtered to one post.
func (h *AdminHandler) Comments(c *gin.Context) {
	comments, err := h.admin.PostComments(uint(queryInt(c, "post_id", 0)), queryInt(c, "limit", 50))
	if err != nil {
		writeError(c, err)
		return
	}

	infos := make([]*response.CommentInfo, 0, len(comments))
	for _, cm := range comments {
		infos = append(infos, response.FilterCommentInfo(cm))
	}
	response.Success(c, infos)
}
