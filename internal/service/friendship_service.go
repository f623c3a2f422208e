package service

import (
	"errors"

	"social-system/internal/model"
	"social-system/pkg/apperr"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Friend-request decisions accepted by RespondRequest.
const (
	DecisionAccept  = "accept"
	DecisionDecline = "decline"
)

// FriendshipService runs the relationship lifecycle:
// pending -> accepted | declined, no transitions out of a terminal state.
type FriendshipService struct {
	store    FriendshipStore
	users    UserStore
	notifier *NotificationService

	// allowRerequest reopens a declined pair on a new request instead of
	// rejecting it. Named policy; the strict default treats any existing
	// row as blocking.
	allowRerequest bool
}

func NewFriendshipService(store FriendshipStore, users UserStore, notifier *NotificationService, allowRerequestAfterDecline bool) *FriendshipService {
	return &FriendshipService{
		store:          store,
		users:          users,
		notifier:       notifier,
		allowRerequest: allowRerequestAfterDecline,
	}
}

// SendRequest creates a pending request from requester to target. Any
// existing row over the unordered pair blocks with a conflict, in either
// direction; the unique pair-key index backstops the lookup against
// concurrent requests.
func (s *FriendshipService) SendRequest(requesterID, targetID uint) (*model.Friendship, error) {
	if requesterID == targetID {
		return nil, apperr.InvalidArgument("cannot send a friend request to yourself")
	}

	if _, err := s.users.GetByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("failed to load user", err)
	}

	existing, err := s.store.FindByPair(requesterID, targetID)
	switch {
	case err == nil:
		if existing.Status == model.FriendshipDeclined && s.allowRerequest {
			return s.reopenDeclined(existing, requesterID, targetID)
		}
		return nil, apperr.Conflict("a relationship between these users already exists")
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apperr.Internal("failed to look up relationship", err)
	}

	friendship := &model.Friendship{
		UserID:   requesterID,
		FriendID: targetID,
		Status:   model.FriendshipPending,
	}
	if err := s.store.Create(friendship); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost the race against a concurrent request over the same pair
			return nil, apperr.Conflict("a relationship between these users already exists")
		}
		return nil, apperr.Internal("failed to create friend request", err)
	}

	s.notifyRequest(friendship)

	return friendship, nil
}

func (s *FriendshipService) reopenDeclined(existing *model.Friendship, requesterID, targetID uint) (*model.Friendship, error) {
	if err := s.store.Reopen(existing.ID, requesterID, targetID); err != nil {
		return nil, apperr.Internal("failed to reopen friend request", err)
	}

	friendship, err := s.store.GetByID(existing.ID)
	if err != nil {
		return nil, apperr.Internal("failed to reload friend request", err)
	}

	s.notifyRequest(friendship)

	return friendship, nil
}

func (s *FriendshipService) notifyRequest(f *model.Friendship) {
	_, err := s.notifier.Notify(f.FriendID, f.UserID,
		model.NotifyFriendRequest,
		"sent you a friend request",
		map[string]interface{}{"friendship_id": f.ID},
	)
	if err != nil {
		zap.L().Error("friend request notification failed",
			zap.Uint("friendship_id", f.ID),
			zap.Error(err),
		)
	}
}

// RespondRequest lets the addressed party accept or decline a pending
// request. The status transition is atomic: a row no longer pending
// conflicts rather than being overwritten.
func (s *FriendshipService) RespondRequest(responderID, requestID uint, decision string) (*model.Friendship, error) {
	var status string
	switch decision {
	case DecisionAccept:
		status = model.FriendshipAccepted
	case DecisionDecline:
		status = model.FriendshipDeclined
	default:
		return nil, apperr.InvalidArgument("decision must be accept or decline")
	}

	friendship, err := s.store.GetByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("friend request not found")
		}
		return nil, apperr.Internal("failed to load friend request", err)
	}

	if friendship.FriendID != responderID {
		return nil, apperr.Forbidden("only the addressed user may respond to this request")
	}
	if friendship.Status != model.FriendshipPending {
		return nil, apperr.Conflict("friend request has already been responded to")
	}

	ok, err := s.store.UpdateStatusIfPending(requestID, status)
	if err != nil {
		return nil, apperr.Internal("failed to update friend request", err)
	}
	if !ok {
		return nil, apperr.Conflict("friend request has already been responded to")
	}
	friendship.Status = status

	if status == model.FriendshipAccepted {
		_, err := s.notifier.Notify(friendship.UserID, friendship.FriendID,
			model.NotifyFriendAccept,
			"accepted your friend request",
			map[string]interface{}{"friendship_id": friendship.ID},
		)
		if err != nil {
			zap.L().Error("friend accept notification failed",
				zap.Uint("friendship_id", friendship.ID),
				zap.Error(err),
			)
		}
	}

	return friendship, nil
}

// ListFriends returns the identity summaries of everyone the user holds an
// accepted relationship with, normalized to the other party.
func (s *FriendshipService) ListFriends(userID uint) ([]*model.User, error) {
	friendships, err := s.store.ListAcceptedByUser(userID)
	if err != nil {
		return nil, apperr.Internal("failed to list friends", err)
	}

	ids := make([]uint, 0, len(friendships))
	for _, f := range friendships {
		if f.UserID == userID {
			ids = append(ids, f.FriendID)
		} else {
			ids = append(ids, f.UserID)
		}
	}

	friends, err := s.users.ListByIDsWithProfile(ids)
	if err != nil {
		return nil, apperr.Internal("failed to load friend summaries", err)
	}
	return friends, nil
}

// ListPendingRequests returns the user's incoming pending requests.
func (s *FriendshipService) ListPendingRequests(userID uint) ([]*model.Friendship, error) {
	friendships, err := s.store.ListPendingForUser(userID)
	if err != nil {
		return nil, apperr.Internal("failed to list pending requests", err)
	}
	return friendships, nil
}

// StatusBetween reports the relationship status toward another user, or ""
// when no row exists. Used to annotate search results.
func (s *FriendshipService) StatusBetween(a, b uint) (string, error) {
	friendship, err := s.store.FindByPair(a, b)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", apperr.Internal("failed to look up relationship", err)
	}
	return friendship.Status, nil
}
