package services

import (
	"encoding/json"

	"adops_backend/internal/models"
	"adops_backend/internal/repositories"
	"adops_backend/internal/services/dto"
	"adops_backend/pkg/apperrors"

	"gorm.io/datatypes"
)

type CampaignService interface {
	Create(req *dto.CreateCampaignRequest) (*dto.CampaignResponse, error)
	Get(id string) (*dto.CampaignResponse, error)
	Update(id, actorID string, actorRole models.UserRole, req *dto.UpdateCampaignRequest) (*dto.CampaignResponse, error)
	UpdateStatus(id, actorID string, actorRole models.UserRole, status models.CampaignStatus) (*dto.CampaignResponse, error)
	Delete(id, actorID string, actorRole models.UserRole) error
	List(req *dto.ListCampaignsRequest, actorID string) ([]dto.CampaignResponse, int64, error)
	StatusCounts() (map[models.CampaignStatus]int64, error)
}

type campaignService struct {
	campaignRepo repositories.CampaignRepository
}

func NewCampaignService(campaignRepo repositories.CampaignRepository) CampaignService {
	return &campaignService{campaignRepo: campaignRepo}
}

func (s *campaignService) Create(req *dto.CreateCampaignRequest) (*dto.CampaignResponse, error) {
	campaign := &models.Campaign{
		OwnerID:     req.OwnerID,
		Name:        req.Name,
		Description: req.Description,
		Objective:   req.Objective,
		Status:      models.CampaignStatusDraft,
		Budget:      req.Budget,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Channels:    marshalJSON(req.Channels),
	}

	if err := s.campaignRepo.Create(campaign); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewCampaignResponse(campaign)
	return &resp, nil
}

func (s *campaignService) Get(id string) (*dto.CampaignResponse, error) {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCampaignNotFound) {
			return nil, apperrors.NewNotFoundError("campaign", "Campaign not found")
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewCampaignResponse(campaign)
	return &resp, nil
}

func (s *campaignService) Update(id, actorID string, actorRole models.UserRole, req *dto.UpdateCampaignRequest) (*dto.CampaignResponse, error) {
	campaign, err := s.authorize(id, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	if campaign.Status == models.CampaignStatusCompleted {
		return nil, apperrors.NewInvalidStatusError("campaign", "Completed campaigns cannot be edited")
	}

	if req.Name != nil {
		campaign.Name = *req.Name
	}
	if req.Description != nil {
		campaign.Description = *req.Description
	}
	if req.Objective != nil {
		campaign.Objective = *req.Objective
	}
	if req.Budget != nil {
		campaign.Budget = *req.Budget
	}
	if req.StartDate != nil {
		campaign.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		campaign.EndDate = req.EndDate
	}
	if req.Channels != nil {
		campaign.Channels = marshalJSON(req.Channels)
	}

	if err := s.campaignRepo.Update(campaign); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewCampaignResponse(campaign)
	return &resp, nil
}

func (s *campaignService) UpdateStatus(id, actorID string, actorRole models.UserRole, status models.CampaignStatus) (*dto.CampaignResponse, error) {
	campaign, err := s.authorize(id, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	if !models.CanTransition(campaign.Status, status) {
		return nil, apperrors.NewInvalidStatusError("campaign",
			"Cannot move campaign from '"+string(campaign.Status)+"' to '"+string(status)+"'")
	}

	if err := s.campaignRepo.UpdateStatus(id, status); err != nil {
		return nil, apperrors.InternalError(err)
	}

	campaign.Status = status
	resp := dto.NewCampaignResponse(campaign)
	return &resp, nil
}

func (s *campaignService) Delete(id, actorID string, actorRole models.UserRole) error {
	campaign, err := s.authorize(id, actorID, actorRole)
	if err != nil {
		return err
	}

	if campaign.Status == models.CampaignStatusActive {
		return apperrors.NewInvalidStatusError("campaign", "Active campaigns must be paused before deletion")
	}

	if err := s.campaignRepo.Delete(id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *campaignService) List(req *dto.ListCampaignsRequest, actorID string) ([]dto.CampaignResponse, int64, error) {
	filter := repositories.CampaignFilter{
		Status:   models.CampaignStatus(req.Status),
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.Mine {
		filter.OwnerID = actorID
	}

	campaigns, total, err := s.campaignRepo.List(filter)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}

	responses := make([]dto.CampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		responses = append(responses, dto.NewCampaignResponse(&campaigns[i]))
	}
	return responses, total, nil
}

// StatusCounts reports how many campaigns sit in each status, for the
// admin dashboard.
func (s *campaignService) StatusCounts() (map[models.CampaignStatus]int64, error) {
	counts := make(map[models.CampaignStatus]int64, len(models.CampaignStatusTransitions))
	for status := range models.CampaignStatusTransitions {
		n, err := s.campaignRepo.CountByStatus(status)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		counts[status] = n
	}
	return counts, nil
}

// authorize loads the campaign and checks that the actor owns it or is
// an admin.
func (s *campaignService) authorize(id, actorID string, actorRole models.UserRole) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCampaignNotFound) {
			return nil, apperrors.NewNotFoundError("campaign", "Campaign not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if campaign.OwnerID != actorID && actorRole != models.UserRoleAdmin {
		return nil, apperrors.NewForbiddenError("You do not own this campaign")
	}

	return campaign, nil
}

func marshalJSON(v interface{}) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
