package service

import (
	"errors"
	"strings"

	"social-system/internal/model"
	"social-system/pkg/apperr"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CommentService is the comment half of the interaction engine. Creating a
// comment on someone else's post produces exactly one notification; the
// real-time push behind it is advisory.
type CommentService struct {
	comments CommentStore
	posts    PostStore
	notifier *NotificationService
}

func NewCommentService(comments CommentStore, posts PostStore, notifier *NotificationService) *CommentService {
	return &CommentService{comments: comments, posts: posts, notifier: notifier}
}

// CreateComment validates, persists, and notifies the post owner unless the
// actor is commenting on their own post. The returned comment carries its
// author summary for immediate client rendering.
func (s *CommentService) CreateComment(actorID, postID uint, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if postID == 0 || content == "" {
		return nil, apperr.InvalidArgument("post_id and content are required")
	}

	post, err := s.posts.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, apperr.Internal("failed to load post", err)
	}

	comment := &model.Comment{
		PostID:  postID,
		UserID:  actorID,
		Content: content,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, apperr.Internal("failed to create comment", err)
	}

	if post.UserID != actorID {
		_, err := s.notifier.Notify(post.UserID, actorID,
			model.NotifyComment,
			"commented on your post",
			map[string]interface{}{"post_id": postID, "comment_id": comment.ID},
		)
		if err != nil {
			// the comment itself stands; the owner can still find it by
			// browsing the post
			zap.L().Error("comment notification failed",
				zap.Uint("comment_id", comment.ID),
				zap.Error(err),
			)
		}
	}

	full, err := s.comments.GetByIDWithAuthor(comment.ID)
	if err != nil {
		zap.L().Warn("comment author reload failed",
			zap.Uint("comment_id", comment.ID),
			zap.Error(err),
		)
		return comment, nil
	}
	return full, nil
}

// DeleteComment removes a comment. Author only; previously sent
// notifications are not retracted.
func (s *CommentService) DeleteComment(actorID, commentID uint) error {
	comment, err := s.comments.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("comment not found")
		}
		return apperr.Internal("failed to load comment", err)
	}

	if comment.UserID != actorID {
		return apperr.Forbidden("only the author may delete this comment")
	}

	if err := s.comments.Delete(commentID); err != nil {
		return apperr.Internal("failed to delete comment", err)
	}
	return nil
}

// ListComments returns a post's comments in chronological order.
func (s *CommentService) ListComments(postID uint) ([]*model.Comment, error) {
	if _, err := s.posts.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, apperr.Internal("failed to load post", err)
	}

	comments, err := s.comments.ListByPost(postID)
	if err != nil {
		return nil, apperr.Internal("failed to list comments", err)
	}
	return comments, nil
}
