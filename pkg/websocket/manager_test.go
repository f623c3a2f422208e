package websocket

import "testing"

func newTestClient(userID uint) *Client {
	return &Client{UserID: userID, Send: make(chan []byte, 4)}
}

func TestPublishReachesAllSessions(t *testing.T) {
	m := NewManager()
	channel := UserChannel(1)

	tab1 := newTestClient(1)
	tab2 := newTestClient(1)
	m.Subscribe(channel, tab1)
	m.Subscribe(channel, tab2)

	m.Publish(channel, []byte("hello"))

	for i, c := range []*Client{tab1, tab2} {
		select {
		case msg := <-c.Send:
			if string(msg) != "hello" {
				t.Fatalf("session %d got %q", i, msg)
			}
		default:
			t.Fatalf("session %d received nothing", i)
		}
	}
}

func TestPublishToEmptyChannelIsNoOp(t *testing.T) {
	m := NewManager()
	// must not panic or block
	m.Publish(UserChannel(42), []byte("into the void"))
}

func TestPublishDoesNotCrossChannels(t *testing.T) {
	m := NewManager()
	alice := newTestClient(1)
	bob := newTestClient(2)
	m.Subscribe(UserChannel(1), alice)
	m.Subscribe(UserChannel(2), bob)

	m.Publish(UserChannel(1), []byte("for alice"))

	select {
	case <-bob.Send:
		t.Fatal("bob should not receive alice's message")
	default:
	}
	select {
	case <-alice.Send:
	default:
		t.Fatal("alice should have received her message")
	}
}

func TestUnsubscribeClosesSend(t *testing.T) {
	m := NewManager()
	channel := UserChannel(1)
	c := newTestClient(1)

	m.Subscribe(channel, c)
	if got := m.SessionCount(channel); got != 1 {
		t.Fatalf("SessionCount = %d, want 1", got)
	}

	m.Unsubscribe(channel, c)
	if got := m.SessionCount(channel); got != 0 {
		t.Fatalf("SessionCount after unsubscribe = %d, want 0", got)
	}
	if _, open := <-c.Send; open {
		t.Fatal("send queue should be closed after unsubscribe")
	}

	// repeated unsubscribe must not close twice
	m.Unsubscribe(channel, c)
}

func TestPublishSkipsFullQueue(t *testing.T) {
	m := NewManager()
	channel := UserChannel(1)
	c := &Client{UserID: 1, Send: make(chan []byte, 1)}
	m.Subscribe(channel, c)

	m.Publish(channel, []byte("first"))
	// queue is full now; this publish must drop, not block
	m.Publish(channel, []byte("second"))

	if msg := <-c.Send; string(msg) != "first" {
		t.Fatalf("got %q, want the first message", msg)
	}
	select {
	case msg := <-c.Send:
		t.Fatalf("unexpected extra message %q", msg)
	default:
	}
}
