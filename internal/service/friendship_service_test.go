package service

import (
	"testing"

	"social-system/internal/model"
	"social-system/pkg/apperr"
)

func newFriendshipFixture(t *testing.T, allowRerequest bool) (*FriendshipService, *fakeFriendships, *fakeNotifications) {
	t.Helper()
	store := newFakeFriendships()
	users := newFakeUsers(
		&model.User{ID: 1, Username: "alice"},
		&model.User{ID: 2, Username: "bob"},
		&model.User{ID: 3, Username: "carol"},
	)
	notifStore := newFakeNotifications()
	notifier := NewNotificationService(notifStore, users, &fakePublisher{})
	return NewFriendshipService(store, users, notifier, allowRerequest), store, notifStore
}

func TestSendRequestCreatesPending(t *testing.T) {
	svc, _, notifStore := newFriendshipFixture(t, false)

	f, err := svc.SendRequest(1, 2)
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if f.Status != model.FriendshipPending {
		t.Fatalf("status = %q, want pending", f.Status)
	}
	if f.UserID != 1 || f.FriendID != 2 {
		t.Fatalf("direction = %d->%d, want 1->2", f.UserID, f.FriendID)
	}

	// the addressee hears about it
	if got, _ := notifStore.CountUnread(2); got != 1 {
		t.Fatalf("addressee unread = %d, want 1", got)
	}
	if got, _ := notifStore.CountUnread(1); got != 0 {
		t.Fatalf("requester unread = %d, want 0", got)
	}
}

func TestSendRequestToSelf(t *testing.T) {
	svc, _, _ := newFriendshipFixture(t, false)

	if _, err := svc.SendRequest(1, 1); !apperr.IsKind(err, apperr.KindInvalidArgument) {
		t.Fatalf("error = %v, want invalid argument", err)
	}
}

func TestSendRequestUnknownTarget(t *testing.T) {
	svc, _, _ := newFriendshipFixture(t, false)

	if _, err := svc.SendRequest(1, 99); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestSendRequestConflictsBothDirections(t *testing.T) {
	svc, _, _ := newFriendshipFixture(t, false)

	if _, err := svc.SendRequest(1, 2); err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if _, err := svc.SendRequest(1, 2); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("repeat error = %v, want conflict", err)
	}
	if _, err := svc.SendRequest(2, 1); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("reverse error = %v, want conflict", err)
	}
}

func TestRespondAccept(t *testing.T) {
	svc, _, notifStore := newFriendshipFixture(t, false)

	f, _ := svc.SendRequest(1, 2)
	accepted, err := svc.RespondRequest(2, f.ID, DecisionAccept)
	if err != nil {
		t.Fatalf("RespondRequest: %v", err)
	}
	if accepted.Status != model.FriendshipAccepted {
		t.Fatalf("status = %q, want accepted", accepted.Status)
	}

	// the requester is told about the acceptance
	if got, _ := notifStore.CountUnread(1); got != 1 {
		t.Fatalf("requester unread = %d, want 1", got)
	}

	friends, err := svc.ListFriends(1)
	if err != nil {
		t.Fatalf("ListFriends: %v", err)
	}
	if len(friends) != 1 || friends[0].ID != 2 {
		t.Fatalf("friends of 1 = %v, want [2]", friends)
	}
}

func TestRespondDeclineIsQuiet(t *testing.T) {
	svc, _, notifStore := newFriendshipFixture(t, false)

	f, _ := svc.SendRequest(1, 2)
	declined, err := svc.RespondRequest(2, f.ID, DecisionDecline)
	if err != nil {
		t.Fatalf("RespondRequest: %v", err)
	}
	if declined.Status != model.FriendshipDeclined {
		t.Fatalf("status = %q, want declined", declined.Status)
	}
	if got, _ := notifStore.CountUnread(1); got != 0 {
		t.Fatalf("requester unread = %d, want 0 after decline", got)
	}
}

func TestRespondWrongParty(t *testing.T) {
	svc, _, _ := newFriendshipFixture(t, false)

	f, _ := svc.SendRequest(1, 2)

	// the requester cannot accept their own request
	if _, err := svc.RespondRequest(1, f.ID, DecisionAccept); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("requester respond error = %v, want forbidden", err)
	}
	// neither can a third party
	if _, err := svc.RespondRequest(3, f.ID, DecisionAccept); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("third party respond error = %v, want forbidden", err)
	}
}

func TestRespondTwiceConflictsAndKeepsStatus(t *testing.T) {
	svc, store, _ := newFriendshipFixture(t, false)

	f, _ := svc.SendRequest(1, 2)
	if _, err := svc.RespondRequest(2, f.ID, DecisionAccept); err != nil {
		t.Fatalf("RespondRequest: %v", err)
	}

	if _, err := svc.RespondRequest(2, f.ID, DecisionDecline); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("second respond error = %v, want conflict", err)
	}

	row, _ := store.GetByID(f.ID)
	if row.Status != model.FriendshipAccepted {
		t.Fatalf("status after conflicting respond = %q, want accepted unchanged", row.Status)
	}
}

func TestRespondBadDecision(t *testing.T) {
	svc, _, _ := newFriendshipFixture(t, false)

	f, _ := svc.SendRequest(1, 2)
	if _, err := svc.RespondRequest(2, f.ID, "maybe"); !apperr.IsKind(err, apperr.KindInvalidArgument) {
		t.Fatalf("error = %v, want invalid argument", err)
	}
}

func TestRespondMissingRequest(t *testing.T) {
	svc, _, _ := newFriendshipFixture(t, false)

	if _, err := svc.RespondRequest(2, 99, DecisionAccept); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestDeclinedPairBlocksRerequestByDefault(t *testing.T) {
	svc, _, _ := newFriendshipFixture(t, false)

	f, _ := svc.SendRequest(1, 2)
	if _, err := svc.RespondRequest(2, f.ID, DecisionDecline); err != nil {
		t.Fatalf("RespondRequest: %v", err)
	}

	if _, err := svc.SendRequest(1, 2); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("re-request error = %v, want conflict", err)
	}
	if _, err := svc.SendRequest(2, 1); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("reverse re-request error = %v, want conflict", err)
	}
}

func TestDeclinedPairReopensWhenPolicyAllows(t *testing.T) {
	svc, store, _ := newFriendshipFixture(t, true)

	f, _ := svc.SendRequest(1, 2)
	if _, err := svc.RespondRequest(2, f.ID, DecisionDecline); err != nil {
		t.Fatalf("RespondRequest: %v", err)
	}

	// the former addressee asks this time; the row flips direction
	reopened, err := svc.SendRequest(2, 1)
	if err != nil {
		t.Fatalf("re-request: %v", err)
	}
	if reopened.ID != f.ID {
		t.Fatalf("reopened id = %d, want original row %d", reopened.ID, f.ID)
	}
	if reopened.Status != model.FriendshipPending {
		t.Fatalf("status = %q, want pending", reopened.Status)
	}
	if reopened.UserID != 2 || reopened.FriendID != 1 {
		t.Fatalf("direction = %d->%d, want 2->1", reopened.UserID, reopened.FriendID)
	}

	row, _ := store.GetByID(f.ID)
	if row.Status != model.FriendshipPending {
		t.Fatalf("stored status = %q, want pending", row.Status)
	}
}

func TestListPendingRequests(t *testing.T) {
	svc, _, _ := newFriendshipFixture(t, false)

	if _, err := svc.SendRequest(1, 2); err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if _, err := svc.SendRequest(3, 2); err != nil {
		t.Fatalf("SendRequest: %v", err)
	}

	pending, err := svc.ListPendingRequests(2)
	if err != nil {
		t.Fatalf("ListPendingRequests: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("got %d pending requests, want 2", len(pending))
	}

	// outgoing requests are not in the incoming list
	pending, err = svc.ListPendingRequests(1)
	if err != nil {
		t.Fatalf("ListPendingRequests: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("got %d pending requests for requester, want 0", len(pending))
	}
}

func TestStatusBetween(t *testing.T) {
	svc, _, _ := newFriendshipFixture(t, false)

	status, err := svc.StatusBetween(1, 2)
	if err != nil {
		t.Fatalf("StatusBetween: %v", err)
	}
	if status != "" {
		t.Fatalf("status = %q, want empty before any request", status)
	}

	f, _ := svc.SendRequest(1, 2)
	if status, _ = svc.StatusBetween(2, 1); status != model.FriendshipPending {
		t.Fatalf("status = %q, want pending", status)
	}

	if _, err := svc.RespondRequest(2, f.ID, DecisionAccept); err != nil {
		t.Fatalf("RespondRequest: %v", err)
	}
	if status, _ = svc.StatusBetween(1, 2); status != model.FriendshipAccepted {
		t.Fatalf("status = %q, want accepted", status)
	}
}
