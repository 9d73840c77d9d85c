package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"adops_backend/internal/models"
	"adops_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCampaignCRUD(t *testing.T) {
	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, "Campaign Owner", models.UserRoleManager)

	// Create
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/campaigns", token, map[string]interface{}{
		"name":      "Autumn awareness push",
		"objective": "awareness",
		"budget":    25000,
		"channels":  []string{"display", "video"},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	assert.Equal(t, "draft", created.Status)

	// Read
	res, body = ts.SendRequest(t, http.MethodGet, "/api/v1/campaigns/"+created.ID, token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "Autumn awareness push")

	// Update
	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/campaigns/"+created.ID, token, map[string]interface{}{
		"name": "Autumn awareness push v2",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "v2")

	// Delete (draft, so allowed)
	res, body = ts.SendRequest(t, http.MethodDelete, "/api/v1/campaigns/"+created.ID, token, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, body)

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/campaigns/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestCampaignStatusTransitions(t *testing.T) {
	ts := GetTestServer(t)
	token, user := helpers.CreateAndLoginUser(t, ts, "Status Owner", models.UserRoleManager)
	campaign := helpers.CreateCampaign(t, ts.DB, user.ID, "Status test", models.CampaignStatusDraft)

	// draft -> active is not allowed directly.
	res, body := ts.SendRequest(t, http.MethodPatch, "/api/v1/campaigns/"+campaign.ID+"/status", token,
		map[string]interface{}{"status": "active"})
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)

	// draft -> pending_review is.
	res, body = ts.SendRequest(t, http.MethodPatch, "/api/v1/campaigns/"+campaign.ID+"/status", token,
		map[string]interface{}{"status": "pending_review"})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "pending_review")
}

func TestCampaignOwnership(t *testing.T) {
	ts := GetTestServer(t)
	_, owner := helpers.CreateAndLoginUser(t, ts, "Real Owner", models.UserRoleManager)
	intruderToken, _ := helpers.CreateAndLoginUser(t, ts, "Intruder", models.UserRoleManager)
	adminToken, _ := helpers.CreateAndLoginUser(t, ts, "Admin", models.UserRoleAdmin)

	campaign := helpers.CreateCampaign(t, ts.DB, owner.ID, "Owned campaign", models.CampaignStatusDraft)

	// Another manager cannot edit it.
	res, body := ts.SendRequest(t, http.MethodPut, "/api/v1/campaigns/"+campaign.ID, intruderToken,
		map[string]interface{}{"name": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)

	// An admin can.
	res, body = ts.SendRequest(t, http.MethodPut, "/api/v1/campaigns/"+campaign.ID, adminToken,
		map[string]interface{}{"name": "Admin renamed"})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)
}

func TestCampaignList_MineFilter(t *testing.T) {
	ts := GetTestServer(t)
	token, user := helpers.CreateAndLoginUser(t, ts, "List Owner", models.UserRoleManager)
	helpers.CreateCampaign(t, ts.DB, user.ID, "Mine list test", models.CampaignStatusDraft)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/campaigns?mine=true", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var listResponse struct {
		Items []struct {
			OwnerID string `json:"owner_id"`
		} `json:"items"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &listResponse))
	require.NotEmpty(t, listResponse.Items)
	for _, item := range listResponse.Items {
		assert.Equal(t, user.ID, item.OwnerID)
	}
}

func TestCampaignCreate_ValidationError(t *testing.T) {
	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, "Validation User", models.UserRoleManager)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/campaigns", token, map[string]interface{}{
		"name":     "ab", // below the minimum length
		"channels": []string{"carrier-pigeon"},
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, body)
}
