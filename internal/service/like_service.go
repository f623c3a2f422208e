package service

import (
	"errors"

	"social-system/internal/model"
	"social-system/pkg/apperr"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LikeService is the like half of the interaction engine: structurally the
// comment path minus content, with the same self-action suppression.
type LikeService struct {
	likes    LikeStore
	posts    PostStore
	notifier *NotificationService
}

func NewLikeService(likes LikeStore, posts PostStore, notifier *NotificationService) *LikeService {
	return &LikeService{likes: likes, posts: posts, notifier: notifier}
}

// LikePost records a like. The unique (post_id, user_id) index rejects a
// second like from the same user as a conflict.
func (s *LikeService) LikePost(actorID, postID uint) (*model.Like, error) {
	if postID == 0 {
		return nil, apperr.InvalidArgument("post_id is required")
	}

	post, err := s.posts.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, apperr.Internal("failed to load post", err)
	}

	like := &model.Like{
		PostID: postID,
		UserID: actorID,
	}
	if err := s.likes.Create(like); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("post already liked")
		}
		return nil, apperr.Internal("failed to create like", err)
	}

	if post.UserID != actorID {
		_, err := s.notifier.Notify(post.UserID, actorID,
			model.NotifyLike,
			"liked your post",
			map[string]interface{}{"post_id": postID, "like_id": like.ID},
		)
		if err != nil {
			zap.L().Error("like notification failed",
				zap.Uint("like_id", like.ID),
				zap.Error(err),
			)
		}
	}

	return like, nil
}

// UnlikePost removes the actor's like from a post. Previously sent
// notifications are not retracted.
func (s *LikeService) UnlikePost(actorID, postID uint) error {
	like, err := s.likes.GetByPostAndUser(postID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("like not found")
		}
		return apperr.Internal("failed to load like", err)
	}

	if err := s.likes.Delete(like.ID); err != nil {
		return apperr.Internal("failed to delete like", err)
	}
	return nil
}
