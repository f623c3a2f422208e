package handler

import (
	"social-system/internal/service"
	"social-system/pkg/jwt"
	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// CommentHandler serves the comment routes under a post.
type CommentHandler struct {
	comments *service.CommentService
}

func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// CreateCommentRequest is the comment-creation payload.
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// Create adds a comment to a post and notifies its owner.
func (h *CommentHandler) Create(c *gin.Context) {
	postID := pathID(c, "postId")
	if postID == 0 {
		response.BadRequest(c, "invalid post id")
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	comment, err := h.comments.CreateComment(jwt.GetUserIDUint(c), postID, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, "comment created", response.FilterCommentInfo(comment))
}

// List returns a post's comments in chronological order.
func (h *CommentHandler) List(c *gin.Context) {
	postID := pathID(c, "postId")
	if postID == 0 {
		response.BadRequest(c, "invalid post id")
		return
	}

	comments, err := h.comments.ListComments(postID)
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

// Delete removes the caller's own comment.
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID := pathID(c, "commentId")
	if commentID == 0 {
		response.BadRequest(c, "invalid comment id")
		return
	}

	if err := h.comments.DeleteComment(jwt.GetUserIDUint(c), commentID); err != nil {
		writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, "comment deleted", nil)
}
