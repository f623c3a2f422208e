package websocket

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one live websocket session. Send is drained by the session's
// write goroutine; a full buffer drops the frame rather than blocking the
// publisher.
type Client struct {
	UserID uint
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager is the process-wide session registry. Sessions subscribe under a
// channel key; a user may hold several live sessions (multiple tabs or
// devices) on the same channel.
type Manager struct {
	channels map[string]map[*Client]struct{}
	lock     sync.RWMutex
}

var manager = &Manager{
	channels: make(map[string]map[*Client]struct{}),
}

// GetManager returns the global session registry.
func GetManager() *Manager {
	return manager
}

// NewManager creates an empty registry; tests use this instead of the global.
func NewManager() *Manager {
	return &Manager{channels: make(map[string]map[*Client]struct{})}
}

// UserChannel derives the stable channel key for a recipient identity.
func UserChannel(userID uint) string {
	return fmt.Sprintf("user_%d", userID)
}

// Subscribe registers a session under a channel key.
func (m *Manager) Subscribe(channel string, client *Client) {
	m.lock.Lock()
	defer m.lock.Unlock()
	clients, ok := m.channels[channel]
	if !ok {
		clients = make(map[*Client]struct{})
		m.channels[channel] = clients
	}
	clients[client] = struct{}{}
}

// Unsubscribe removes a session and closes its send queue.
func (m *Manager) Unsubscribe(channel string, client *Client) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if clients, ok := m.channels[channel]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.Send)
		}
		if len(clients) == 0 {
			delete(m.channels, channel)
		}
	}
}

// Publish delivers a payload to every live session on the channel.
// Fire-and-forget: no acknowledgement, no retry, silent no-op when nobody
// is subscribed. Durable state lives in the notification store, never here.
func (m *Manager) Publish(channel string, payload []byte) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	for client := range m.channels[channel] {
		select {
		case client.Send <- payload:
		default:
			// session's queue is full, likely a dead connection
		}
	}
}

// SessionCount reports how many sessions are live on a channel.
func (m *Manager) SessionCount(channel string) int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.channels[channel])
}
