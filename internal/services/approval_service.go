package services

import (
	"fmt"

	"adops_backend/internal/email"
	"adops_backend/internal/logger"
	"adops_backend/internal/models"
	"adops_backend/internal/repositories"
	"adops_backend/internal/services/dto"
	"adops_backend/pkg/apperrors"
)

type ApprovalService interface {
	Request(campaignID, requesterID string) (*dto.ApprovalResponse, error)
	Decide(id, reviewerID string, req *dto.DecideApprovalRequest) (*dto.ApprovalResponse, error)
	Get(id string) (*dto.ApprovalResponse, error)
	List(req *dto.ListApprovalsRequest) ([]dto.ApprovalResponse, int64, error)
}

type approvalService struct {
	approvalRepo repositories.ApprovalRepository
	campaignRepo repositories.CampaignRepository
	userRepo     repositories.UserRepository
	mailer       email.Provider
}

func NewApprovalService(
	approvalRepo repositories.ApprovalRepository,
	campaignRepo repositories.CampaignRepository,
	userRepo repositories.UserRepository,
	mailer email.Provider,
) ApprovalService {
	return &approvalService{
		approvalRepo: approvalRepo,
		campaignRepo: campaignRepo,
		userRepo:     userRepo,
		mailer:       mailer,
	}
}

// Request submits a campaign for review, moving it to pending_review.
func (s *approvalService) Request(campaignID, requesterID string) (*dto.ApprovalResponse, error) {
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCampaignNotFound) {
			return nil, apperrors.NewNotFoundError("campaign", "Campaign not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if campaign.OwnerID != requesterID {
		return nil, apperrors.NewForbiddenError("Only the campaign owner can request approval")
	}
	if campaign.Status != models.CampaignStatusDraft {
		return nil, apperrors.NewInvalidStatusError("approval", "Only draft campaigns can be submitted for review")
	}

	if _, err := s.approvalRepo.FindPendingByCampaign(campaignID); err == nil {
		return nil, apperrors.NewConflictError("approval", "Campaign already has a pending approval request")
	}

	request := &models.ApprovalRequest{
		CampaignID:  campaignID,
		RequesterID: requesterID,
		Status:      models.ApprovalStatusPending,
	}
	if err := s.approvalRepo.Create(request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.campaignRepo.UpdateStatus(campaignID, models.CampaignStatusPendingReview); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewApprovalResponse(request)
	return &resp, nil
}

// Decide records the reviewer's decision and moves the campaign
// accordingly: approved -> active, rejected -> back to draft. The
// requester is notified by email; a mail failure is logged, never
// surfaced, since the decision itself already committed.
func (s *approvalService) Decide(id, reviewerID string, req *dto.DecideApprovalRequest) (*dto.ApprovalResponse, error) {
	request, err := s.approvalRepo.GetByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApprovalNotFound) {
			return nil, apperrors.NewNotFoundError("approval", "Approval request not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if request.Status != models.ApprovalStatusPending {
		return nil, apperrors.NewInvalidStatusError("approval", "Approval request has already been decided")
	}
	if request.RequesterID == reviewerID {
		return nil, apperrors.NewForbiddenError("Requesters cannot review their own campaigns")
	}

	if err := s.approvalRepo.Decide(id, reviewerID, req.Decision, req.Note); err != nil {
		if apperrors.Is(err, repositories.ErrApprovalNotFound) {
			return nil, apperrors.NewConflictError("approval", "Approval request was decided concurrently")
		}
		return nil, apperrors.InternalError(err)
	}

	nextStatus := models.CampaignStatusActive
	if req.Decision == models.ApprovalStatusRejected {
		nextStatus = models.CampaignStatusDraft
	}
	if err := s.campaignRepo.UpdateStatus(request.CampaignID, nextStatus); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifyRequester(request, req.Decision, req.Note)

	updated, err := s.approvalRepo.GetByID(id)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := dto.NewApprovalResponse(updated)
	return &resp, nil
}

func (s *approvalService) Get(id string) (*dto.ApprovalResponse, error) {
	request, err := s.approvalRepo.GetByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApprovalNotFound) {
			return nil, apperrors.NewNotFoundError("approval", "Approval request not found")
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewApprovalResponse(request)
	return &resp, nil
}

func (s *approvalService) List(req *dto.ListApprovalsRequest) ([]dto.ApprovalResponse, int64, error) {
	requests, total, err := s.approvalRepo.ListByStatus(
		models.ApprovalStatus(req.Status),
		req.PageSize,
		(req.Page-1)*req.PageSize,
	)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}

	responses := make([]dto.ApprovalResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, dto.NewApprovalResponse(&requests[i]))
	}
	return responses, total, nil
}

func (s *approvalService) notifyRequester(request *models.ApprovalRequest, decision models.ApprovalStatus, note string) {
	requester, err := s.userRepo.FindByID(request.RequesterID)
	if err != nil {
		logger.Warn("approval notification skipped: requester lookup failed",
			"approval_id", request.ID, "error", err)
		return
	}

	campaign, err := s.campaignRepo.GetByID(request.CampaignID)
	if err != nil {
		logger.Warn("approval notification skipped: campaign lookup failed",
			"approval_id", request.ID, "error", err)
		return
	}

	subject := fmt.Sprintf("Campaign %q was %s", campaign.Name, decision)
	body := fmt.Sprintf("<p>Your campaign <b>%s</b> was <b>%s</b>.</p>", campaign.Name, decision)
	if note != "" {
		body += fmt.Sprintf("<p>Reviewer note: %s</p>", note)
	}

	if err := s.mailer.Send(requester.Email, subject, body); err != nil {
		logger.Warn("approval notification failed", "approval_id", request.ID, "error", err)
	}
}
