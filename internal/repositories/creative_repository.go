package repositories

import (
	"errors"

	"adops_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCreativeNotFound = errors.New("creative not found")

type CreativeFilter struct {
	OwnerID    string
	CampaignID string
	Format     string
	Status     models.CreativeStatus
	Page       int
	PageSize   int
}

type CreativeRepository interface {
	Create(creative *models.Creative) error
	GetByID(id string) (*models.Creative, error)
	Update(creative *models.Creative) error
	Delete(id string) error
	List(filter CreativeFilter) ([]models.Creative, int64, error)
	AttachToCampaign(creativeID, campaignID string) error
	DetachFromCampaign(creativeID string) error
}

type creativeRepository struct {
	db *gorm.DB
}

func NewCreativeRepository(db *gorm.DB) CreativeRepository {
	return &creativeRepository{db: db}
}

func (r *creativeRepository) Create(creative *models.Creative) error {
	return r.db.Create(creative).Error
}

func (r *creativeRepository) GetByID(id string) (*models.Creative, error) {
	var creative models.Creative
	err := r.db.First(&creative, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreativeNotFound
		}
		return nil, err
	}
	return &creative, nil
}

func (r *creativeRepository) Update(creative *models.Creative) error {
	result := r.db.Model(creative).Updates(map[string]interface{}{
		"name":   creative.Name,
		"format": creative.Format,
		"status": creative.Status,
		"tags":   creative.Tags,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCreativeNotFound
	}
	return nil
}

func (r *creativeRepository) Delete(id string) error {
	result := r.db.Delete(&models.Creative{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCreativeNotFound
	}
	return nil
}

func (r *creativeRepository) List(filter CreativeFilter) ([]models.Creative, int64, error) {
	query := r.db.Model(&models.Creative{})

	if filter.OwnerID != "" {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.CampaignID != "" {
		query = query.Where("campaign_id = ?", filter.CampaignID)
	}
	if filter.Format != "" {
		query = query.Where("format = ?", filter.Format)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var creatives []models.Creative
	err := query.
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&creatives).Error

	return creatives, total, err
}

func (r *creativeRepository) AttachToCampaign(creativeID, campaignID string) error {
	result := r.db.Model(&models.Creative{}).
		Where("id = ?", creativeID).
		Update("campaign_id", campaignID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCreativeNotFound
	}
	return nil
}

func (r *creativeRepository) DetachFromCampaign(creativeID string) error {
	result := r.db.Model(&models.Creative{}).
		Where("id = ?", creativeID).
		Update("campaign_id", nil)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCreativeNotFound
	}
	return nil
}
