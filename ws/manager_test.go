package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSocketPair upgrades a real websocket and returns both ends: the server
// side goes into a Client, the peer side stands in for the browser.
func newSocketPair(t *testing.T) (server, peer *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	serverSide := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serverSide <- conn
	}))
	t.Cleanup(srv.Close)

	peer, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { peer.Close() })

	select {
	case server = <-serverSide:
	case <-time.After(time.Second):
		t.Fatal("server side of the socket never arrived")
	}
	t.Cleanup(func() { server.Close() })
	return server, peer
}

func TestManagerDeliversToConnectedUser(t *testing.T) {
	m := NewManager()
	go m.Run()
	serverConn, _ := newSocketPair(t)

	client := &Client{UserID: "user-1", Conn: serverConn, Send: make(chan any, 4), Manager: m}
	m.register <- client
	require.Eventually(t, func() bool { return m.IsConnected("user-1") }, time.Second, 5*time.Millisecond)

	m.NotifyUser("user-1", "payload")

	select {
	case got := <-client.Send:
		assert.Equal(t, "payload", got)
	case <-time.After(time.Second):
		t.Fatal("expected payload on send channel")
	}
}

func TestManagerIgnoresDisconnectedUser(t *testing.T) {
	m := NewManager()
	go m.Run()

	// Must not panic or block.
	m.NotifyUser("nobody", "payload")
	assert.Zero(t, m.ClientCount())
}

func TestManagerDropsClientWithFullBuffer(t *testing.T) {
	m := NewManager()
	go m.Run()
	serverConn, peer := newSocketPair(t)

	client := &Client{UserID: "user-1", Conn: serverConn, Send: make(chan any, 1), Manager: m}
	m.register <- client
	require.Eventually(t, func() bool { return m.IsConnected("user-1") }, time.Second, 5*time.Millisecond)

	m.NotifyUser("user-1", "first")  // fills the buffer
	m.NotifyUser("user-1", "second") // overflows, client gets dropped

	assert.Eventually(t, func() bool { return !m.IsConnected("user-1") }, time.Second, 5*time.Millisecond)

	// The drop closes the underlying socket, so the peer sees it end.
	require.NoError(t, peer.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := peer.ReadMessage()
	assert.Error(t, err)
}
