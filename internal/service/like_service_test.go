package service

import (
	"testing"

	"social-system/internal/model"
	"social-system/pkg/apperr"
)

func newLikeFixture(t *testing.T) (*LikeService, *fakeNotifications) {
	t.Helper()
	likes := newFakeLikes()
	posts := newFakePosts(&model.Post{ID: 10, UserID: 1, Content: "hello"})
	users := newFakeUsers(
		&model.User{ID: 1, Username: "alice"},
		&model.User{ID: 2, Username: "bob"},
	)
	notifStore := newFakeNotifications()
	notifier := NewNotificationService(notifStore, users, &fakePublisher{})
	return NewLikeService(likes, posts, notifier), notifStore
}

func TestLikePostNotifiesOwner(t *testing.T) {
	svc, notifStore := newLikeFixture(t)

	like, err := svc.LikePost(2, 10)
	if err != nil {
		t.Fatalf("LikePost: %v", err)
	}
	if like.ID == 0 {
		t.Fatal("expected a persisted like")
	}

	if got, _ := notifStore.CountUnread(1); got != 1 {
		t.Fatalf("owner unread = %d, want exactly 1", got)
	}
	unread, _ := notifStore.GetUnread(1, 10)
	if unread[0].Type != model.NotifyLike {
		t.Fatalf("notification type = %q, want %q", unread[0].Type, model.NotifyLike)
	}
}

func TestLikeOwnPostIsQuiet(t *testing.T) {
	svc, notifStore := newLikeFixture(t)

	if _, err := svc.LikePost(1, 10); err != nil {
		t.Fatalf("LikePost: %v", err)
	}
	if got, _ := notifStore.CountUnread(1); got != 0 {
		t.Fatalf("owner unread = %d, want 0 for self-like", got)
	}
}

func TestDoubleLikeConflicts(t *testing.T) {
	svc, notifStore := newLikeFixture(t)

	if _, err := svc.LikePost(2, 10); err != nil {
		t.Fatalf("LikePost: %v", err)
	}
	if _, err := svc.LikePost(2, 10); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("second like error = %v, want conflict", err)
	}

	// the duplicate attempt produced no second notification
	if got, _ := notifStore.CountUnread(1); got != 1 {
		t.Fatalf("owner unread = %d, want 1", got)
	}
}

func TestLikeMissingPost(t *testing.T) {
	svc, _ := newLikeFixture(t)

	if _, err := svc.LikePost(2, 99); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestUnlikeThenLikeAgain(t *testing.T) {
	svc, _ := newLikeFixture(t)

	if _, err := svc.LikePost(2, 10); err != nil {
		t.Fatalf("LikePost: %v", err)
	}
	if err := svc.UnlikePost(2, 10); err != nil {
		t.Fatalf("UnlikePost: %v", err)
	}
	// unliking frees the slot for a fresh like
	if _, err := svc.LikePost(2, 10); err != nil {
		t.Fatalf("re-like after unlike: %v", err)
	}
}

func TestUnlikeWithoutLike(t *testing.T) {
	svc, _ := newLikeFixture(t)

	if err := svc.UnlikePost(2, 10); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
}
