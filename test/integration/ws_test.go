package integration_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"reliefhub_backend/internal/models"
	"reliefhub_backend/test/helpers"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialWS(t *testing.T, ts *helpers.TestServer, token string) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.Server.URL, "http://", "ws://", 1) + "/ws"
	header := http.Header{"Authorization": []string{"Bearer " + token}}

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWS_PushesEmergencyToConnectedUser(t *testing.T) {
	ts := helpers.NewTestServer(t)

	volToken, volID := helpers.CreateAndLoginVolunteer(t, ts)
	conn := dialWS(t, ts, volToken)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/emergencies", "", map[string]interface{}{
		"type": "medical",
		"lat":  43.2,
		"lng":  76.9,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err, "connected user should receive the push")

	var pushed models.Notification
	require.NoError(t, json.Unmarshal(message, &pushed))
	assert.Equal(t, volID, pushed.UserID)
	assert.Equal(t, models.NotificationEmergency, pushed.Type)
	assert.Contains(t, pushed.Message, "MEDICAL emergency")
}

func TestWS_RequiresToken(t *testing.T) {
	ts := helpers.NewTestServer(t)

	wsURL := strings.Replace(ts.Server.URL, "http://", "ws://", 1) + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
