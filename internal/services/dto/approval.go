package dto

import (
	"time"

	"adops_backend/internal/models"
)

// --- Approval Requests ---

type CreateApprovalRequest struct {
	CampaignID  string `json:"campaign_id" validate:"-"` // set from the URL
	RequesterID string `json:"requester_id" validate:"-"`
}

type DecideApprovalRequest struct {
	Decision models.ApprovalStatus `json:"decision" validate:"required,oneof=approved rejected"`
	Note     string                `json:"note" validate:"omitempty,max=2000"`
}

type ListApprovalsRequest struct {
	Status string `form:"status" validate:"omitempty,oneof=pending approved rejected expired"`

	Page     int `form:"-"`
	PageSize int `form:"-"`
}

// --- Approval Responses ---

type ApprovalResponse struct {
	ID          string                `json:"id"`
	CampaignID  string                `json:"campaign_id"`
	RequesterID string                `json:"requester_id"`
	ReviewerID  *string               `json:"reviewer_id,omitempty"`
	Status      models.ApprovalStatus `json:"status"`
	Note        string                `json:"note,omitempty"`
	DecidedAt   *time.Time            `json:"decided_at,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

func NewApprovalResponse(a *models.ApprovalRequest) ApprovalResponse {
	return ApprovalResponse{
		ID:          a.ID,
		CampaignID:  a.CampaignID,
		RequesterID: a.RequesterID,
		ReviewerID:  a.ReviewerID,
		Status:      a.Status,
		Note:        a.Note,
		DecidedAt:   a.DecidedAt,
		CreatedAt:   a.CreatedAt,
	}
}
