package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"reliefhub_backend/internal/services/dto"
	"reliefhub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_UpdateFlow(t *testing.T) {
	ts := helpers.NewTestServer(t)

	volToken, volID := helpers.CreateAndLoginVolunteer(t, ts)

	res, body := ts.SendRequest(t, http.MethodPut, "/api/v1/profiles/me", volToken, map[string]interface{}{
		"full_name": "Dana Serik",
		"phone":     "+7 701 000 0000",
		"skills":    []string{"first_aid", "driving"},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/profiles/me", volToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var profile dto.ProfileResponse
	require.NoError(t, json.Unmarshal([]byte(body), &profile))
	assert.Equal(t, volID, profile.UserID)
	assert.Equal(t, "Dana Serik", profile.FullName)
	assert.Equal(t, []string{"first_aid", "driving"}, profile.Skills)

	// Empty full name is rejected.
	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/profiles/me", volToken, map[string]interface{}{
		"full_name": "",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestProfile_RoleDirectories(t *testing.T) {
	ts := helpers.NewTestServer(t)

	volToken, _ := helpers.CreateAndLoginVolunteer(t, ts)
	helpers.CreateAndLoginVolunteer(t, ts)
	helpers.CreateAndLoginNGO(t, ts)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/profiles/volunteers", volToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var listResp struct {
		Profiles []dto.ProfileResponse `json:"profiles"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &listResp))
	assert.Len(t, listResp.Profiles, 2)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/profiles/ngos", volToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	require.NoError(t, json.Unmarshal([]byte(body), &listResp))
	assert.Len(t, listResp.Profiles, 1)
}
