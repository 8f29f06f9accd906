package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"reliefhub_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinProgram(t *testing.T, ts *helpers.TestServer, token, programID string) {
	t.Helper()
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/programs/"+programID+"/join", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
}

func TestResource_RequestAndProvideFlow(t *testing.T) {
	ts := helpers.NewTestServer(t)

	ngoToken, _ := helpers.CreateAndLoginNGO(t, ts)
	requesterToken, _ := helpers.CreateAndLoginVolunteer(t, ts)
	providerToken, _ := helpers.CreateAndLoginVolunteer(t, ts)

	programID := createProgram(t, ts, ngoToken)
	joinProgram(t, ts, requesterToken, programID)
	joinProgram(t, ts, providerToken, programID)

	// A member asks for a resource.
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/programs/"+programID+"/resources", requesterToken, map[string]interface{}{
		"item_name": "Water purification tablets",
		"quantity":  50,
		"urgency":   "high",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var request struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &request))
	assert.Equal(t, "pending", request.Status)

	// The other member is notified; the requester is not.
	providerFeed := getFeed(t, ts, providerToken, "resource_request")
	require.Len(t, providerFeed, 1)
	assert.Contains(t, providerFeed[0].Message, "Water purification tablets")
	assert.Empty(t, getFeed(t, ts, requesterToken, "resource_request"))

	// Provider accepts; a second acceptor loses.
	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/resources/"+request.ID+"/accept", providerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/resources/"+request.ID+"/accept", requesterToken, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	// The feed card reflects the live status.
	providerFeed = getFeed(t, ts, providerToken, "resource_request")
	require.NotNil(t, providerFeed[0].ResourceRequest)
	assert.EqualValues(t, "providing", providerFeed[0].ResourceRequest.Status)

	// Only the provider completes; completed is terminal.
	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/resources/"+request.ID+"/complete", requesterToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/resources/"+request.ID+"/complete", providerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/resources/"+request.ID+"/accept", providerToken, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

func TestResource_OnlyMembersMayRequest(t *testing.T) {
	ts := helpers.NewTestServer(t)

	ngoToken, _ := helpers.CreateAndLoginNGO(t, ts)
	outsiderToken, _ := helpers.CreateAndLoginVolunteer(t, ts)

	programID := createProgram(t, ts, ngoToken)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/programs/"+programID+"/resources", outsiderToken, map[string]interface{}{
		"item_name": "Tents",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// The creator may request even without a membership row.
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/programs/"+programID+"/resources", ngoToken, map[string]interface{}{
		"item_name": "Tents",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var request struct {
		Quantity int    `json:"quantity"`
		Urgency  string `json:"urgency"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &request))
	assert.Equal(t, 1, request.Quantity, "quantity defaults to 1")
	assert.Equal(t, "medium", request.Urgency, "urgency defaults to medium")
}

func TestResource_ListByProgram(t *testing.T) {
	ts := helpers.NewTestServer(t)

	ngoToken, _ := helpers.CreateAndLoginNGO(t, ts)
	programID := createProgram(t, ts, ngoToken)

	for _, item := range []string{"Blankets", "Flashlights"} {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/programs/"+programID+"/resources", ngoToken, map[string]interface{}{
			"item_name": item,
		})
		require.Equal(t, http.StatusCreated, res.StatusCode, body)
	}

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/programs/"+programID+"/resources", ngoToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var listResp struct {
		ResourceRequests []json.RawMessage `json:"resource_requests"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &listResp))
	assert.Len(t, listResp.ResourceRequests, 2)
}
