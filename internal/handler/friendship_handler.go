package handler

import (
	"social-system/internal/service"
	"social-system/pkg/jwt"
	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// FriendshipHandler serves the friend-request lifecycle routes.
type FriendshipHandler struct {
	friendships *service.FriendshipService
}

func NewFriendshipHandler(friendships *service.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{friendships: friendships}
}

// SendRequestRequest is the send-request payload.
type SendRequestRequest struct {
	FriendID uint `json:"friend_id" binding:"required"`
}

// SendRequest creates a pending friend request to another user.
func (h *FriendshipHandler) SendRequest(c *gin.Context) {
	var req SendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	friendship, err := h.friendships.SendRequest(jwt.GetUserIDUint(c), req.FriendID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, "friend request sent", response.FilterFriendshipInfo(friendship))
}

// RespondRequestRequest is the accept/decline payload.
type RespondRequestRequest struct {
	Decision string `json:"decision" binding:"required"`
}

// Respond accepts or declines a pending request addressed to the caller.
func (h *FriendshipHandler) Respond(c *gin.Context) {
	requestID := pathID(c, "requestId")
	if requestID == 0 {
		response.BadRequest(c, "invalid request id")
		return
	}

	var req RespondRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	friendship, err := h.friendships.RespondRequest(jwt.GetUserIDUint(c), requestID, req.Decision)
	if err != nil {
		writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, "friend request "+friendship.Status, response.FilterFriendshipInfo(friendship))
}

// ListFriends returns the caller's accepted friends as identity summaries.
func (h *FriendshipHandler) ListFriends(c *gin.Context) {
	friends, err := h.friendships.ListFriends(jwt.GetUserIDUint(c))
	if err != nil {
		writeError(c, err)
		return
	}

	infos := make([]*response.UserInfo, 0, len(friends))
	for _, f := range friends {
		infos = append(infos, response.FilterUserInfo(f))
	}
	response.Success(c, infos)
}

// ListPending returns the caller's incoming pending requests.
func (h *FriendshipHandler) ListPending(c *gin.Context) {
	pending, err := h.friendships.ListPendingRequests(jwt.GetUserIDUint(c))
	if err != nil {
		writeError(c, err)
		return
	}

	infos := make([]*response.FriendshipInfo, 0, len(pending))
	for _, f := range pending {
		infos = append(infos, response.FilterFriendshipInfo(f))
	}
	response.Success(c, infos)
}
