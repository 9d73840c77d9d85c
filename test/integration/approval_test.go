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

func requestApproval(t *testing.T, ts *helpers.TestServer, token, campaignID string) string {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/campaigns/"+campaignID+"/approvals", token, nil)
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var approval struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &approval))
	return approval.ID
}

func TestApprovalFlow_Approve(t *testing.T) {
	ts := GetTestServer(t)
	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, "Approval Owner", models.UserRoleManager)
	reviewerToken, _ := helpers.CreateAndLoginUser(t, ts, "Reviewer", models.UserRoleAdmin)

	campaign := helpers.CreateCampaign(t, ts.DB, owner.ID, "Needs approval", models.CampaignStatusDraft)
	approvalID := requestApproval(t, ts, ownerToken, campaign.ID)

	// Requesting moves the campaign into review.
	var reloaded models.Campaign
	require.NoError(t, ts.DB.First(&reloaded, "id = ?", campaign.ID).Error)
	assert.Equal(t, models.CampaignStatusPendingReview, reloaded.Status)

	// Approving activates it.
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/approvals/"+approvalID+"/decision", reviewerToken,
		map[string]interface{}{"decision": "approved", "note": "Looks good"})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)

	require.NoError(t, ts.DB.First(&reloaded, "id = ?", campaign.ID).Error)
	assert.Equal(t, models.CampaignStatusActive, reloaded.Status)
}

func TestApprovalFlow_Reject(t *testing.T) {
	ts := GetTestServer(t)
	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, "Rejected Owner", models.UserRoleManager)
	reviewerToken, _ := helpers.CreateAndLoginUser(t, ts, "Strict Reviewer", models.UserRoleAdmin)

	campaign := helpers.CreateCampaign(t, ts.DB, owner.ID, "Will be rejected", models.CampaignStatusDraft)
	approvalID := requestApproval(t, ts, ownerToken, campaign.ID)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/approvals/"+approvalID+"/decision", reviewerToken,
		map[string]interface{}{"decision": "rejected", "note": "Budget unjustified"})
	assert.Equal(t, http.StatusOK, res.StatusCode, body)

	// Rejection sends the campaign back to draft.
	var reloaded models.Campaign
	require.NoError(t, ts.DB.First(&reloaded, "id = ?", campaign.ID).Error)
	assert.Equal(t, models.CampaignStatusDraft, reloaded.Status)
}

func TestApprovalDecision_ForbiddenForNonAdmins(t *testing.T) {
	ts := GetTestServer(t)
	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, "Ambitious Owner", models.UserRoleManager)
	viewerToken, _ := helpers.CreateAndLoginUser(t, ts, "Curious Viewer", models.UserRoleViewer)

	campaign := helpers.CreateCampaign(t, ts.DB, owner.ID, "Guarded decision", models.CampaignStatusDraft)
	approvalID := requestApproval(t, ts, ownerToken, campaign.ID)

	for _, token := range []string{ownerToken, viewerToken} {
		res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/approvals/"+approvalID+"/decision", token,
			map[string]interface{}{"decision": "approved"})
		assert.Equal(t, http.StatusForbidden, res.StatusCode, body)
	}

	// The campaign never left review.
	var reloaded models.Campaign
	require.NoError(t, ts.DB.First(&reloaded, "id = ?", campaign.ID).Error)
	assert.Equal(t, models.CampaignStatusPendingReview, reloaded.Status)
}

func TestApproval_NoSelfReview(t *testing.T) {
	ts := GetTestServer(t)
	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, "Self Reviewer", models.UserRoleAdmin)

	campaign := helpers.CreateCampaign(t, ts.DB, owner.ID, "Self review attempt", models.CampaignStatusDraft)
	approvalID := requestApproval(t, ts, ownerToken, campaign.ID)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/approvals/"+approvalID+"/decision", ownerToken,
		map[string]interface{}{"decision": "approved"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, body)
}

func TestApproval_NoDuplicatePending(t *testing.T) {
	ts := GetTestServer(t)
	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, "Duplicate Requester", models.UserRoleManager)

	campaign := helpers.CreateCampaign(t, ts.DB, owner.ID, "Double request", models.CampaignStatusDraft)
	requestApproval(t, ts, ownerToken, campaign.ID)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/campaigns/"+campaign.ID+"/approvals", ownerToken, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)
}
