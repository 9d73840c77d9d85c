package services

import (
	"net/http"
	"testing"

	"adops_backend/internal/models"
	"adops_backend/internal/services/dto"
	"adops_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCampaign(repo *fakeCampaignRepo, id, ownerID string, status models.CampaignStatus) {
	c := repo.campaigns[id]
	if c == nil {
		c = &models.Campaign{}
		c.ID = id
		repo.campaigns[id] = c
	}
	c.OwnerID = ownerID
	c.Status = status
}

func assertHTTPCode(t *testing.T, err error, want int) {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, want, appErr.HTTPCode)
}

func TestCampaignCreate_StartsAsDraft(t *testing.T) {
	repo := newFakeCampaignRepo()
	svc := NewCampaignService(repo)

	resp, err := svc.Create(&dto.CreateCampaignRequest{
		OwnerID:  "owner-1",
		Name:     "Summer push",
		Channels: []string{"display", "social"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.CampaignStatusDraft, resp.Status)
	assert.Equal(t, []string{"display", "social"}, resp.Channels)
}

func TestCampaignUpdateStatus_AllowedTransition(t *testing.T) {
	repo := newFakeCampaignRepo("c1")
	seedCampaign(repo, "c1", "owner-1", models.CampaignStatusDraft)
	svc := NewCampaignService(repo)

	resp, err := svc.UpdateStatus("c1", "owner-1", models.UserRoleManager, models.CampaignStatusPendingReview)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusPendingReview, resp.Status)
}

func TestCampaignUpdateStatus_RejectsIllegalTransition(t *testing.T) {
	repo := newFakeCampaignRepo("c1")
	seedCampaign(repo, "c1", "owner-1", models.CampaignStatusDraft)
	svc := NewCampaignService(repo)

	// Draft campaigns must go through review before activating.
	_, err := svc.UpdateStatus("c1", "owner-1", models.UserRoleManager, models.CampaignStatusActive)
	require.Error(t, err)
	assertHTTPCode(t, err, http.StatusConflict)
	assert.Equal(t, models.CampaignStatusDraft, repo.campaigns["c1"].Status)
}

func TestCampaignUpdate_ForbiddenForNonOwner(t *testing.T) {
	repo := newFakeCampaignRepo("c1")
	seedCampaign(repo, "c1", "owner-1", models.CampaignStatusDraft)
	svc := NewCampaignService(repo)

	name := "Renamed"
	_, err := svc.Update("c1", "intruder", models.UserRoleManager, &dto.UpdateCampaignRequest{Name: &name})
	require.Error(t, err)
	assertHTTPCode(t, err, http.StatusForbidden)
}

func TestCampaignUpdate_AdminBypassesOwnership(t *testing.T) {
	repo := newFakeCampaignRepo("c1")
	seedCampaign(repo, "c1", "owner-1", models.CampaignStatusDraft)
	svc := NewCampaignService(repo)

	name := "Renamed"
	resp, err := svc.Update("c1", "someone-else", models.UserRoleAdmin, &dto.UpdateCampaignRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", resp.Name)
}

func TestCampaignUpdate_CompletedIsFrozen(t *testing.T) {
	repo := newFakeCampaignRepo("c1")
	seedCampaign(repo, "c1", "owner-1", models.CampaignStatusCompleted)
	svc := NewCampaignService(repo)

	name := "Renamed"
	_, err := svc.Update("c1", "owner-1", models.UserRoleManager, &dto.UpdateCampaignRequest{Name: &name})
	require.Error(t, err)
	assertHTTPCode(t, err, http.StatusConflict)
}

func TestCampaignDelete_BlocksActive(t *testing.T) {
	repo := newFakeCampaignRepo("c1")
	seedCampaign(repo, "c1", "owner-1", models.CampaignStatusActive)
	svc := NewCampaignService(repo)

	err := svc.Delete("c1", "owner-1", models.UserRoleManager)
	require.Error(t, err)
	assertHTTPCode(t, err, http.StatusConflict)

	seedCampaign(repo, "c1", "owner-1", models.CampaignStatusPaused)
	require.NoError(t, svc.Delete("c1", "owner-1", models.UserRoleManager))
	_, err = svc.Get("c1")
	require.Error(t, err)
}
