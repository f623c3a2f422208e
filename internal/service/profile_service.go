package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"social-system/internal/model"
	"social-system/internal/repository"
	"social-system/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MediaStorage is the slice of object storage the profile service needs.
type MediaStorage interface {
	Save(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// ProfileUpdate carries the editable profile fields. Birthday is the raw
// string from the client; blank or unparseable values clear the column.
type ProfileUpdate struct {
	Fullname string
	Bio      string
	Birthday string
}

// SearchResult pairs a matched user with the caller's relationship to them.
type SearchResult struct {
	User             *model.User
	FriendshipStatus string
}

// ProfileService manages extended user attributes and profile media.
// Profiles are created lazily on first write.
type ProfileService struct {
	profiles    *repository.ProfileRepository
	users       *repository.UserRepository
	friendships *FriendshipService
	media       MediaStorage
}

func NewProfileService(profiles *repository.ProfileRepository, users *repository.UserRepository, friendships *FriendshipService, media MediaStorage) *ProfileService {
	return &ProfileService{
		profiles:    profiles,
		users:       users,
		friendships: friendships,
		media:       media,
	}
}

// GetUser loads a user together with their profile, if any.
func (s *ProfileService) GetUser(userID uint) (*model.User, error) {
	u, err := s.users.GetByIDWithProfile(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("failed to load user", err)
	}
	return u, nil
}

// loadOrInit returns the user's profile, creating an empty row on first use.
func (s *ProfileService) loadOrInit(userID uint) (*model.Profile, error) {
	profile, err := s.profiles.GetByUserID(userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal("failed to load profile", err)
	}

	profile = &model.Profile{UserID: userID}
	if err := s.profiles.Create(profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// concurrent first write already created it
			return s.profiles.GetByUserID(userID)
		}
		return nil, apperr.Internal("failed to create profile", err)
	}
	return profile, nil
}

// UpdateProfile writes the editable fields. A birthday that is blank or not
// a valid YYYY-MM-DD date clears the stored value rather than erroring.
func (s *ProfileService) UpdateProfile(userID uint, update ProfileUpdate) (*model.Profile, error) {
	if _, err := s.users.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("failed to load user", err)
	}

	profile, err := s.loadOrInit(userID)
	if err != nil {
		return nil, err
	}

	profile.Fullname = strings.TrimSpace(update.Fullname)
	profile.Bio = strings.TrimSpace(update.Bio)
	profile.Birthday = parseBirthday(update.Birthday)

	if err := s.profiles.Save(profile); err != nil {
		return nil, apperr.Internal("failed to save profile", err)
	}
	return profile, nil
}

func parseBirthday(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}

// UpdateAvatar uploads a new avatar, points the profile at it, and removes
// the replaced object.
func (s *ProfileService) UpdateAvatar(ctx context.Context, userID uint, r io.Reader, filename, contentType string) (*model.Profile, error) {
	return s.updateMedia(ctx, userID, r, filename, contentType, "avatars")
}

// UpdateCover does the same for the profile cover image.
func (s *ProfileService) UpdateCover(ctx context.Context, userID uint, r io.Reader, filename, contentType string) (*model.Profile, error) {
	return s.updateMedia(ctx, userID, r, filename, contentType, "covers")
}

func (s *ProfileService) updateMedia(ctx context.Context, userID uint, r io.Reader, filename, contentType, prefix string) (*model.Profile, error) {
	if s.media == nil {
		return nil, apperr.Internal("object storage is not configured", nil)
	}
	if r == nil {
		return nil, apperr.InvalidArgument("file is required")
	}

	profile, err := s.loadOrInit(userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%d/%s%s", prefix, userID, uuid.NewString(), path.Ext(filename))
	url, err := s.media.Save(ctx, key, r, contentType)
	if err != nil {
		return nil, apperr.Internal("failed to upload media", err)
	}

	var oldKey string
	switch prefix {
	case "avatars":
		oldKey = profile.AvatarObjectID
		profile.AvatarURL = url
		profile.AvatarObjectID = key
	case "covers":
		oldKey = profile.CoverObjectID
		profile.CoverURL = url
		profile.CoverObjectID = key
	}

	if err := s.profiles.Save(profile); err != nil {
		return nil, apperr.Internal("failed to save profile", err)
	}

	if oldKey != "" && oldKey != key {
		if err := s.media.Delete(ctx, oldKey); err != nil {
			zap.L().Warn("replaced media object not deleted",
				zap.String("key", oldKey),
				zap.Error(err),
			)
		}
	}

	return profile, nil
}

// SearchUsers matches users by username or full name, excluding the caller,
// and annotates each hit with the caller's relationship status.
func (s *ProfileService) SearchUsers(actorID uint, query string, limit int) ([]*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.InvalidArgument("query is required")
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	users, err := s.users.Search(query, actorID, limit)
	if err != nil {
		return nil, apperr.Internal("failed to search users", err)
	}

	results := make([]*SearchResult, 0, len(users))
	for _, u := range users {
		status, err := s.friendships.StatusBetween(actorID, u.ID)
		if err != nil {
			return nil, err
		}
		results = append(results, &SearchResult{User: u, FriendshipStatus: status})
	}
	return results, nil
}
