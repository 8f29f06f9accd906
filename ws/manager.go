package ws

import (
	"sync"

	"reliefhub_backend/internal/logger"
)

// Manager is the hub for per-user notification push connections. One client
// per user ID; a reconnect replaces the previous connection.
type Manager struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run owns the client map lifecycle. Start it once, in its own goroutine.
func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			if old, ok := m.clients[client.UserID]; ok {
				close(old.Send)
				old.Conn.Close()
			}
			m.clients[client.UserID] = client
			m.mu.Unlock()
			logger.Info("ws client registered", "user_id", client.UserID, "total", m.ClientCount())

		case client := <-m.unregister:
			m.mu.Lock()
			if current, ok := m.clients[client.UserID]; ok && current == client {
				close(client.Send)
				client.Conn.Close()
				delete(m.clients, client.UserID)
			}
			m.mu.Unlock()
			logger.Info("ws client unregistered", "user_id", client.UserID, "total", m.ClientCount())
		}
	}
}

// NotifyUser pushes a payload to one connected user. Delivery is best-effort:
// disconnected users get nothing (they will see the row on their next feed
// poll), and a client with a full send buffer is dropped.
func (m *Manager) NotifyUser(userID string, payload any) {
	m.mu.RLock()
	client, ok := m.clients[userID]
	m.mu.RUnlock()
	if !ok {
		return
	}

	select {
	case client.Send <- payload:
	default:
		logger.Warn("ws client send buffer full, disconnecting", "user_id", userID)
		go func() {
			m.unregister <- client
		}()
	}
}

// ClientCount returns the number of connected clients.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// IsConnected reports whether a user currently holds a live connection.
func (m *Manager) IsConnected(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.clients[userID]
	return exists
}
