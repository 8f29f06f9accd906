package ws

import (
	"github.com/gorilla/websocket"

	"reliefhub_backend/internal/logger"
)

// Client is one user's live notification connection. The notification stream
// is one-way: inbound frames are drained and discarded, outbound frames are
// notification rows pushed by the dispatcher.
type Client struct {
	UserID  string
	Conn    *websocket.Conn
	Send    chan any
	Manager *Manager
}

// readPump drains the connection until it closes, then unregisters the
// client. Connection teardown (logout, tab close) lands here, which is what
// guarantees the subscription is released.
func (c *Client) readPump() {
	defer func() {
		c.Manager.unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			logger.Debug("ws read closed", "user_id", c.UserID, "error", err.Error())
			break
		}
	}
}

func (c *Client) writePump() {
	for msg := range c.Send {
		if err := c.Conn.WriteJSON(msg); err != nil {
			logger.Debug("ws write failed", "user_id", c.UserID, "error", err.Error())
			break
		}
	}
}
