package service

import (
	"testing"

	"social-system/internal/model"
	"social-system/pkg/apperr"
)

func newCommentFixture(t *testing.T) (*CommentService, *fakeComments, *fakeNotifications) {
	t.Helper()
	comments := newFakeComments()
	posts := newFakePosts(&model.Post{ID: 10, UserID: 1, Content: "hello"})
	users := newFakeUsers(
		&model.User{ID: 1, Username: "alice"},
		&model.User{ID: 2, Username: "bob"},
	)
	notifStore := newFakeNotifications()
	notifier := NewNotificationService(notifStore, users, &fakePublisher{})
	return NewCommentService(comments, posts, notifier), comments, notifStore
}

func TestCreateCommentNotifiesOwner(t *testing.T) {
	svc, _, notifStore := newCommentFixture(t)

	comment, err := svc.CreateComment(2, 10, "nice post")
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if comment.ID == 0 {
		t.Fatal("expected a persisted comment")
	}

	if got, _ := notifStore.CountUnread(1); got != 1 {
		t.Fatalf("owner unread = %d, want exactly 1", got)
	}
	if got, _ := notifStore.CountUnread(2); got != 0 {
		t.Fatalf("commenter unread = %d, want 0", got)
	}

	unread, _ := notifStore.GetUnread(1, 10)
	if unread[0].Type != model.NotifyComment {
		t.Fatalf("notification type = %q, want %q", unread[0].Type, model.NotifyComment)
	}
	if unread[0].SenderID != 2 {
		t.Fatalf("notification sender = %d, want 2", unread[0].SenderID)
	}
}

func TestCreateCommentOnOwnPostIsQuiet(t *testing.T) {
	svc, _, notifStore := newCommentFixture(t)

	if _, err := svc.CreateComment(1, 10, "replying to myself"); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if got, _ := notifStore.CountUnread(1); got != 0 {
		t.Fatalf("owner unread = %d, want 0 for self-comment", got)
	}
}

func TestCreateCommentValidation(t *testing.T) {
	svc, _, _ := newCommentFixture(t)

	if _, err := svc.CreateComment(2, 10, "   "); !apperr.IsKind(err, apperr.KindInvalidArgument) {
		t.Fatalf("blank content error = %v, want invalid argument", err)
	}
	if _, err := svc.CreateComment(2, 99, "hi"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("missing post error = %v, want not found", err)
	}
}

func TestDeleteCommentAuthorOnly(t *testing.T) {
	svc, comments, _ := newCommentFixture(t)

	comment, err := svc.CreateComment(2, 10, "nice post")
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	// the post owner still cannot delete someone else's comment
	if err := svc.DeleteComment(1, comment.ID); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("foreign delete error = %v, want forbidden", err)
	}
	if _, err := comments.GetByID(comment.ID); err != nil {
		t.Fatal("comment should survive a forbidden delete")
	}

	if err := svc.DeleteComment(2, comment.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if _, err := comments.GetByID(comment.ID); err == nil {
		t.Fatal("comment should be gone after the author deletes it")
	}
}

func TestDeleteMissingComment(t *testing.T) {
	svc, _, _ := newCommentFixture(t)

	if err := svc.DeleteComment(2, 99); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestListCommentsChronological(t *testing.T) {
	svc, _, _ := newCommentFixture(t)

	first, _ := svc.CreateComment(2, 10, "first")
	second, _ := svc.CreateComment(1, 10, "second")

	list, err := svc.ListComments(10)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d comments, want 2", len(list))
	}
	if list[0].ID != first.ID || list[1].ID != second.ID {
		t.Fatal("comments not in chronological order")
	}

	if _, err := svc.ListComments(99); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("missing post error = %v, want not found", err)
	}
}
