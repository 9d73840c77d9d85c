package repositories

import (
	"errors"

	"adops_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCampaignNotFound = errors.New("campaign not found")

// CampaignFilter narrows List results.
type CampaignFilter struct {
	OwnerID  string
	Status   models.CampaignStatus
	Search   string
	Page     int
	PageSize int
}

type CampaignRepository interface {
	Create(campaign *models.Campaign) error
	GetByID(id string) (*models.Campaign, error)
	Update(campaign *models.Campaign) error
	UpdateStatus(id string, status models.CampaignStatus) error
	Delete(id string) error
	List(filter CampaignFilter) ([]models.Campaign, int64, error)
	CountByStatus(status models.CampaignStatus) (int64, error)
}

type campaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) Create(campaign *models.Campaign) error {
	return r.db.Create(campaign).Error
}

func (r *campaignRepository) GetByID(id string) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.Preload("Creatives").First(&campaign, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}
	return &campaign, nil
}

func (r *campaignRepository) Update(campaign *models.Campaign) error {
	result := r.db.Model(campaign).Updates(map[string]interface{}{
		"name":        campaign.Name,
		"description": campaign.Description,
		"objective":   campaign.Objective,
		"budget":      campaign.Budget,
		"start_date":  campaign.StartDate,
		"end_date":    campaign.EndDate,
		"channels":    campaign.Channels,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCampaignNotFound
	}
	return nil
}

func (r *campaignRepository) UpdateStatus(id string, status models.CampaignStatus) error {
	result := r.db.Model(&models.Campaign{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCampaignNotFound
	}
	return nil
}

func (r *campaignRepository) Delete(id string) error {
	result := r.db.Delete(&models.Campaign{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCampaignNotFound
	}
	return nil
}

func (r *campaignRepository) List(filter CampaignFilter) ([]models.Campaign, int64, error) {
	query := r.db.Model(&models.Campaign{})

	if filter.OwnerID != "" {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var campaigns []models.Campaign
	err := query.
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&campaigns).Error

	return campaigns, total, err
}

func (r *campaignRepository) CountByStatus(status models.CampaignStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Campaign{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
