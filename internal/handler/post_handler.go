package handler

import (
	"social-system/internal/service"
	"social-system/pkg/jwt"
	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
)

// PostHandler serves post CRUD and the feed.
type PostHandler struct {
	posts *service.PostService
	likes *service.LikeService
}

func NewPostHandler(posts *service.PostService, likes *service.LikeService) *PostHandler {
	return &PostHandler{posts: posts, likes: likes}
}

// CreatePostRequest is the post-creation payload.
type CreatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

// Create publishes a post owned by the caller.
func (h *PostHandler) Create(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	post, err := h.posts.CreatePost(jwt.GetUserIDUint(c), req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, "post created", response.FilterPostInfo(post))
}

// Feed returns recent posts, paginated.
func (h *PostHandler) Feed(c *gin.Context) {
	posts, err := h.posts.Feed(queryInt(c, "page", 1), queryInt(c, "page_size", 20))
	if err != nil {
		writeError(c, err)
		return
	}

	infos := make([]*response.PostInfo, 0, len(posts))
	for _, p := range posts {
		infos = append(infos, response.FilterPostInfo(p))
	}
	response.Success(c, infos)
}

// Get returns one post with its like count.
func (h *PostHandler) Get(c *gin.Context) {
	postID := pathID(c, "postId")
	if postID == 0 {
		response.BadRequest(c, "invalid post id")
		return
	}

	post, err := h.posts.GetPost(postID)
	if err != nil {
		writeError(c, err)
		return
	}
	likes, err := h.posts.CountLikes(postID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{
		"post":       response.FilterPostInfo(post),
		"like_count": likes,
	})
}

// ListByUser returns one user's posts.
func (h *PostHandler) ListByUser(c *gin.Context) {
	userID := pathID(c, "userId")
	if userID == 0 {
		response.BadRequest(c, "invalid user id")
		return
	}

	posts, err := h.posts.ListByUser(userID, queryInt(c, "page", 1), queryInt(c, "page_size", 20))
	if err != nil {
		writeError(c, err)
		return
	}

	infos := make([]*response.PostInfo, 0, len(posts))
	for _, p := range posts {
		infos = append(infos, response.FilterPostInfo(p))
	}
	response.Success(c, infos)
}

// Delete removes the caller's post.
func (h *PostHandler) Delete(c *gin.Context) {
	postID := pathID(c, "postId")
	if postID == 0 {
		response.BadRequest(c, "invalid post id")
		return
	}

	if err := h.posts.DeletePost(jwt.GetUserIDUint(c), postID); err != nil {
		writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, "post deleted", nil)
}

// Like records the caller's like on a post.
func (h *PostHandler) Like(c *gin.Context) {
	postID := pathID(c, "postId")
	if postID == 0 {
		response.BadRequest(c, "invalid post id")
		return
	}

	like, err := h.likes.LikePost(jwt.GetUserIDUint(c), postID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, "post liked", gin.H{"like_id": like.ID})
}

// Unlike removes the caller's like from a post.
func (h *PostHandler) Unlike(c *gin.Context) {
	postID := pathID(c, "postId")
	if postID == 0 {
		response.BadRequest(c, "invalid post id")
		return
	}

	if err := h.likes.UnlikePost(jwt.GetUserIDUint(c), postID); err != nil {
		writeError(c, err)
		return
	}
	response.SuccessWithMessage(c, "like removed", nil)
}
