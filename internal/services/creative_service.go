package services

import (
	"io"
	"path/filepath"

	"adops_backend/internal/models"
	"adops_backend/internal/repositories"
	"adops_backend/internal/services/dto"
	"adops_backend/internal/storage"
	"adops_backend/pkg/apperrors"

	"github.com/google/uuid"
)

type CreativeService interface {
	Create(req *dto.CreateCreativeRequest) (*dto.CreativeResponse, error)
	Get(id string) (*dto.CreativeResponse, error)
	Update(id, actorID string, actorRole models.UserRole, req *dto.UpdateCreativeRequest) (*dto.CreativeResponse, error)
	Delete(id, actorID string, actorRole models.UserRole) error
	List(req *dto.ListCreativesRequest, actorID string) ([]dto.CreativeResponse, int64, error)
	UploadAsset(id, actorID string, actorRole models.UserRole, filename, mimeType string, size int64, content io.Reader) (*dto.CreativeResponse, error)
	OpenAsset(id string) (io.ReadCloser, string, error)
	Attach(id, campaignID, actorID string, actorRole models.UserRole) error
	Detach(id, actorID string, actorRole models.UserRole) error
}

type creativeService struct {
	creativeRepo repositories.CreativeRepository
	campaignRepo repositories.CampaignRepository
	store        storage.Storage
}

func NewCreativeService(
	creativeRepo repositories.CreativeRepository,
	campaignRepo repositories.CampaignRepository,
	store storage.Storage,
) CreativeService {
	return &creativeService{
		creativeRepo: creativeRepo,
		campaignRepo: campaignRepo,
		store:        store,
	}
}

func (s *creativeService) Create(req *dto.CreateCreativeRequest) (*dto.CreativeResponse, error) {
	creative := &models.Creative{
		OwnerID: req.OwnerID,
		Name:    req.Name,
		Format:  req.Format,
		Status:  models.CreativeStatusDraft,
		Tags:    marshalJSON(req.Tags),
	}

	if err := s.creativeRepo.Create(creative); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewCreativeResponse(creative)
	return &resp, nil
}

func (s *creativeService) Get(id string) (*dto.CreativeResponse, error) {
	creative, err := s.creativeRepo.GetByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCreativeNotFound) {
			return nil, apperrors.NewNotFoundError("creative", "Creative not found")
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewCreativeResponse(creative)
	return &resp, nil
}

func (s *creativeService) Update(id, actorID string, actorRole models.UserRole, req *dto.UpdateCreativeRequest) (*dto.CreativeResponse, error) {
	creative, err := s.authorize(id, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		creative.Name = *req.Name
	}
	if req.Format != nil {
		creative.Format = *req.Format
	}
	if req.Status != nil {
		creative.Status = *req.Status
	}
	if req.Tags != nil {
		creative.Tags = marshalJSON(req.Tags)
	}

	if err := s.creativeRepo.Update(creative); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewCreativeResponse(creative)
	return &resp, nil
}

func (s *creativeService) Delete(id, actorID string, actorRole models.UserRole) error {
	creative, err := s.authorize(id, actorID, actorRole)
	if err != nil {
		return err
	}

	if creative.AssetPath != "" {
		// Best effort: a dangling file is preferable to a failed delete.
		_ = s.store.Delete(creative.AssetPath)
	}

	if err := s.creativeRepo.Delete(id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *creativeService) List(req *dto.ListCreativesRequest, actorID string) ([]dto.CreativeResponse, int64, error) {
	filter := repositories.CreativeFilter{
		CampaignID: req.CampaignID,
		Format:     req.Format,
		Status:     models.CreativeStatus(req.Status),
		Page:       req.Page,
		PageSize:   req.PageSize,
	}
	if req.Mine {
		filter.OwnerID = actorID
	}

	creatives, total, err := s.creativeRepo.List(filter)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}

	responses := make([]dto.CreativeResponse, 0, len(creatives))
	for i := range creatives {
		responses = append(responses, dto.NewCreativeResponse(&creatives[i]))
	}
	return responses, total, nil
}

func (s *creativeService) UploadAsset(id, actorID string, actorRole models.UserRole, filename, mimeType string, size int64, content io.Reader) (*dto.CreativeResponse, error) {
	creative, err := s.authorize(id, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	key := "creatives/" + creative.ID + "/" + uuid.NewString() + filepath.Ext(filename)
	url, err := s.store.Save(key, content)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if creative.AssetPath != "" {
		_ = s.store.Delete(creative.AssetPath)
	}

	creative.AssetPath = key
	creative.AssetURL = url
	creative.MimeType = mimeType
	creative.SizeBytes = size
	creative.Status = models.CreativeStatusReady

	if err := s.creativeRepo.Update(creative); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewCreativeResponse(creative)
	return &resp, nil
}

// OpenAsset streams the stored asset. Any authenticated user may read
// assets; only writes are ownership-checked.
func (s *creativeService) OpenAsset(id string) (io.ReadCloser, string, error) {
	creative, err := s.creativeRepo.GetByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCreativeNotFound) {
			return nil, "", apperrors.NewNotFoundError("creative", "Creative not found")
		}
		return nil, "", apperrors.InternalError(err)
	}

	if creative.AssetPath == "" {
		return nil, "", apperrors.NewNotFoundError("creative", "Creative has no uploaded asset")
	}

	reader, err := s.store.Open(creative.AssetPath)
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}
	return reader, creative.MimeType, nil
}

func (s *creativeService) Attach(id, campaignID, actorID string, actorRole models.UserRole) error {
	if _, err := s.authorize(id, actorID, actorRole); err != nil {
		return err
	}

	if _, err := s.campaignRepo.GetByID(campaignID); err != nil {
		if apperrors.Is(err, repositories.ErrCampaignNotFound) {
			return apperrors.NewNotFoundError("campaign", "Campaign not found")
		}
		return apperrors.InternalError(err)
	}

	if err := s.creativeRepo.AttachToCampaign(id, campaignID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *creativeService) Detach(id, actorID string, actorRole models.UserRole) error {
	if _, err := s.authorize(id, actorID, actorRole); err != nil {
		return err
	}

	if err := s.creativeRepo.DetachFromCampaign(id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *creativeService) authorize(id, actorID string, actorRole models.UserRole) (*models.Creative, error) {
	creative, err := s.creativeRepo.GetByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCreativeNotFound) {
			return nil, apperrors.NewNotFoundError("creative", "Creative not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if creative.OwnerID != actorID && actorRole != models.UserRoleAdmin {
		return nil, apperrors.NewForbiddenError("You do not own this creative")
	}

	return creative, nil
}
