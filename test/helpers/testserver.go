package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reliefhub_backend/internal/app"
	"reliefhub_backend/internal/config"
	"reliefhub_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
}

// TestConfig returns a config suitable for tests: no config file, a dead
// geocode endpoint that fails fast, and a sweep interval long enough that
// the background worker never fires on its own.
func TestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.Geocode.BaseURL = "http://127.0.0.1:1/reverse"
	cfg.Geocode.TimeoutMS = 100
	cfg.Reminder.SweepIntervalSec = 3600
	cfg.Reminder.StalenessMin = 10
	return cfg
}

// NewTestServer spins up the real router over an in-memory database.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	gin.SetMode(gin.TestMode)
	cfg := TestConfig()
	config.AppConfig = cfg

	db := NewTestDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	router := app.SetupRouter(ctx, cfg, db)

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		cancel()
	})

	return &TestServer{
		Server: server,
		DB:     db,
	}
}

func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	url := ts.Server.URL + path

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "failed to encode request body")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err, "failed to build request")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err, "request failed")

	resBodyBytes, err := io.ReadAll(res.Body)
	require.NoError(t, err, "failed to read response body")
	defer res.Body.Close()

	return res, string(resBodyBytes)
}

// RegisterUser registers through the API and returns the token and user ID.
func RegisterUser(t *testing.T, ts *TestServer, fullName, email, password string, role models.UserRole) (string, string) {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":     email,
		"password":  password,
		"full_name": fullName,
		"role":      string(role),
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "registration should succeed: "+body)

	var resp struct {
		AccessToken string `json:"access_token"`
		UserID      string `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.NotEmpty(t, resp.AccessToken)

	return resp.AccessToken, resp.UserID
}

// CreateAndLoginVolunteer registers a volunteer with a unique email.
func CreateAndLoginVolunteer(t *testing.T, ts *TestServer) (string, string) {
	t.Helper()
	email := fmt.Sprintf("volunteer_%d@test.com", time.Now().UnixNano())
	return RegisterUser(t, ts, "Test Volunteer", email, "password123", models.UserRoleVolunteer)
}

// CreateAndLoginNGO registers an NGO coordinator with a unique email.
func CreateAndLoginNGO(t *testing.T, ts *TestServer) (string, string) {
	t.Helper()
	email := fmt.Sprintf("ngo_%d@test.com", time.Now().UnixNano())
	return RegisterUser(t, ts, "Test NGO", email, "password123", models.UserRoleNGO)
}
