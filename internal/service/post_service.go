package service

import (
	"errors"
	"strings"

	"social-system/internal/model"
	"social-system/internal/repository"
	"social-system/pkg/apperr"

	"gorm.io/gorm"
)

// PostService is plain CRUD over posts with owner-only deletion.
type PostService struct {
	posts *repository.PostRepository
	likes *repository.LikeRepository
}

func NewPostService(posts *repository.PostRepository, likes *repository.LikeRepository) *PostService {
	return &PostService{posts: posts, likes: likes}
}

// CreatePost persists a post owned by the actor.
func (s *PostService) CreatePost(actorID uint, content string) (*model.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.InvalidArgument("content is required")
	}

	post := &model.Post{
		UserID:  actorID,
		Content: content,
	}
	if err := s.posts.Create(post); err != nil {
		return nil, apperr.Internal("failed to create post", err)
	}
	return post, nil
}

// GetPost loads one post.
func (s *PostService) GetPost(postID uint) (*model.Post, error) {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, apperr.Internal("failed to load post", err)
	}
	return post, nil
}

// Feed returns recent posts with author summaries, paginated.
func (s *PostService) Feed(page, pageSize int) ([]*model.Post, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	posts, err := s.posts.ListRecent(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperr.Internal("failed to load feed", err)
	}
	return posts, nil
}

// ListByUser returns one user's posts, newest first.
func (s *PostService) ListByUser(userID uint, page, pageSize int) ([]*model.Post, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	posts, err := s.posts.ListByUser(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperr.Internal("failed to list posts", err)
	}
	return posts, nil
}

// DeletePost removes a post. Owner only.
func (s *PostService) DeletePost(actorID, postID uint) error {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("post not found")
		}
		return apperr.Internal("failed to load post", err)
	}

	if post.UserID != actorID {
		return apperr.Forbidden("only the owner may delete this post")
	}

	if err := s.posts.Delete(postID); err != nil {
		return apperr.Internal("failed to delete post", err)
	}
	return nil
}

// CountLikes reports how many likes a post has.
func (s *PostService) CountLikes(postID uint) (int64, error) {
	count, err := s.likes.CountByPost(postID)
	if err != nil {
		return 0, apperr.Internal("failed to count likes", err)
	}
	return count, nil
}
