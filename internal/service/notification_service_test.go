package service

import (
	"encoding/json"
	"testing"

	"social-system/internal/model"
	"social-system/pkg/apperr"
	"social-system/pkg/websocket"
)

func newNotifyFixture(t *testing.T) (*NotificationService, *fakeNotifications, *fakePublisher) {
	t.Helper()
	store := newFakeNotifications()
	users := newFakeUsers(
		&model.User{ID: 1, Username: "alice"},
		&model.User{ID: 2, Username: "bob"},
	)
	pub := &fakePublisher{}
	return NewNotificationService(store, users, pub), store, pub
}

func TestNotifyPersistsAndPublishes(t *testing.T) {
	svc, store, pub := newNotifyFixture(t)

	n, err := svc.Notify(1, 2, model.NotifyComment, "commented on your post", map[string]interface{}{"post_id": 7})
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if n == nil || n.ID == 0 {
		t.Fatal("expected a persisted notification")
	}
	if got, _ := store.CountUnread(1); got != 1 {
		t.Fatalf("unread count = %d, want 1", got)
	}

	if pub.count() != 1 {
		t.Fatalf("published %d messages, want 1", pub.count())
	}
	if pub.messages[0].channel != websocket.UserChannel(1) {
		t.Fatalf("published to %q, want %q", pub.messages[0].channel, websocket.UserChannel(1))
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(pub.messages[0].payload, &payload); err != nil {
		t.Fatalf("payload not json: %v", err)
	}
	if payload["type"] != "notification" {
		t.Fatalf("payload type = %v", payload["type"])
	}
}

func TestNotifySuppressesSelfAction(t *testing.T) {
	svc, store, pub := newNotifyFixture(t)

	n, err := svc.Notify(1, 1, model.NotifyLike, "liked your post", nil)
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if n != nil {
		t.Fatal("self-action should not produce a notification")
	}
	if got, _ := store.CountUnread(1); got != 0 {
		t.Fatalf("unread count = %d, want 0", got)
	}
	if pub.count() != 0 {
		t.Fatalf("published %d messages, want 0", pub.count())
	}
}

func TestNotifyStoreFailureSurfaces(t *testing.T) {
	svc, store, pub := newNotifyFixture(t)
	store.createErr = errStoreDown

	if _, err := svc.Notify(1, 2, model.NotifyLike, "liked your post", nil); err == nil {
		t.Fatal("expected error when the store is down")
	}
	if pub.count() != 0 {
		t.Fatal("nothing should be published when persistence fails")
	}
}

func TestMarkReadReceiverOnly(t *testing.T) {
	svc, store, _ := newNotifyFixture(t)

	n, err := svc.Notify(1, 2, model.NotifyLike, "liked your post", nil)
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if err := svc.MarkRead(2, n.ID); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("foreign MarkRead error = %v, want forbidden", err)
	}
	if err := svc.MarkRead(1, n.ID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if got, _ := store.CountUnread(1); got != 0 {
		t.Fatalf("unread count = %d, want 0", got)
	}

	// idempotent on an already-read row
	if err := svc.MarkRead(1, n.ID); err != nil {
		t.Fatalf("second MarkRead: %v", err)
	}
}

func TestMarkReadMissingNotification(t *testing.T) {
	svc, _, _ := newNotifyFixture(t)

	if err := svc.MarkRead(1, 99); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestMarkAllRead(t *testing.T) {
	svc, store, _ := newNotifyFixture(t)

	for i := 0; i < 3; i++ {
		if _, err := svc.Notify(1, 2, model.NotifyLike, "liked your post", nil); err != nil {
			t.Fatalf("Notify: %v", err)
		}
	}

	if err := svc.MarkAllRead(1); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if got, _ := store.CountUnread(1); got != 0 {
		t.Fatalf("unread count = %d, want 0", got)
	}
}

func TestListNewestFirst(t *testing.T) {
	svc, _, _ := newNotifyFixture(t)

	first, _ := svc.Notify(1, 2, model.NotifyLike, "liked your post", nil)
	second, _ := svc.Notify(1, 2, model.NotifyComment, "commented on your post", nil)

	list, err := svc.List(1, 1, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d notifications, want 2", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatal("notifications not in newest-first order")
	}
}
