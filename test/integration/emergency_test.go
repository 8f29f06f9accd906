package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"reliefhub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmergency_AnonymousOneTapFlow(t *testing.T) {
	ts := helpers.NewTestServer(t)

	ngoToken, _ := helpers.CreateAndLoginNGO(t, ts)
	volToken, _ := helpers.CreateAndLoginVolunteer(t, ts)

	// No token: the panic button must not stop for a login screen.
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/emergencies", "", map[string]interface{}{
		"type": "medical",
		"lat":  43.238949,
		"lng":  76.889709,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var emergency struct {
		ID          string  `json:"id"`
		Address     string  `json:"address"`
		Status      string  `json:"status"`
		RequesterID *string `json:"requester_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &emergency))
	assert.Equal(t, "pending", emergency.Status)
	// The test geocode endpoint is dead, so the address degrades.
	assert.Equal(t, "Unknown location", emergency.Address)

	// Everyone with a profile is alerted, role regardless.
	for _, token := range []string{ngoToken, volToken} {
		feed := getFeed(t, ts, token, "emergency")
		require.Len(t, feed, 1)
		assert.Contains(t, feed[0].Message, "🚨 MEDICAL emergency at Unknown location")
		require.NotNil(t, feed[0].Emergency)
		assert.Equal(t, emergency.ID, feed[0].Emergency.EmergencyID)
	}
}

func TestEmergency_ClaimExclusivity(t *testing.T) {
	ts := helpers.NewTestServer(t)

	helper1Token, helper1ID := helpers.CreateAndLoginVolunteer(t, ts)
	helper2Token, _ := helpers.CreateAndLoginVolunteer(t, ts)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/emergencies", "", map[string]interface{}{
		"type": "trapped",
		"lat":  43.2,
		"lng":  76.9,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var emergency struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &emergency))

	// First claim wins, second gets the conflict.
	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/emergencies/"+emergency.ID+"/accept", helper1Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/emergencies/"+emergency.ID+"/accept", helper2Token, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	// Other viewers see who is helping.
	feed := getFeed(t, ts, helper2Token, "emergency")
	require.Len(t, feed, 1)
	require.NotNil(t, feed[0].Emergency)
	assert.EqualValues(t, "in_progress", feed[0].Emergency.Status)
	require.NotNil(t, feed[0].Emergency.HelperID)
	assert.Equal(t, helper1ID, *feed[0].Emergency.HelperID)
	assert.NotEmpty(t, feed[0].Emergency.HelperName)

	// Only the assigned helper may complete.
	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/emergencies/"+emergency.ID+"/complete", helper2Token, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/emergencies/"+emergency.ID+"/complete", helper1Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, getBody := ts.SendRequest(t, http.MethodGet, "/api/v1/emergencies/"+emergency.ID, helper1Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, getBody)
	assert.Contains(t, getBody, `"status":"completed"`)
}

func TestEmergency_ValidationAndListing(t *testing.T) {
	ts := helpers.NewTestServer(t)

	volToken, _ := helpers.CreateAndLoginVolunteer(t, ts)

	// Unknown emergency type is rejected at the door.
	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/emergencies", "", map[string]interface{}{
		"type": "alien_invasion",
		"lat":  1.0,
		"lng":  1.0,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// Zero is a real coordinate (equator, prime meridian), not a missing one.
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/emergencies", "", map[string]interface{}{
		"type": "medical",
		"lat":  0.0,
		"lng":  6.5,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
	assert.Contains(t, body, `"lat":0`)

	// Absent coordinates are still rejected.
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/emergencies", "", map[string]interface{}{
		"type": "medical",
		"lng":  6.5,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// Listing requires auth.
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/emergencies", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	// Authenticated requesters are recorded on the row.
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/emergencies", volToken, map[string]interface{}{
		"type": "food",
		"lat":  2.0,
		"lng":  2.0,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/emergencies?status=pending", volToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var listResp struct {
		Emergencies []json.RawMessage `json:"emergencies"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &listResp))
	assert.Len(t, listResp.Emergencies, 2)
}
