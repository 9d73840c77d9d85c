package repositories

import (
	"errors"
	"time"

	"adops_backend/internal/models"

	"gorm.io/gorm"
)

var ErrApprovalNotFound = errors.New("approval request not found")

type ApprovalRepository interface {
	Create(request *models.ApprovalRequest) error
	GetByID(id string) (*models.ApprovalRequest, error)
	FindPendingByCampaign(campaignID string) (*models.ApprovalRequest, error)
	ListByStatus(status models.ApprovalStatus, limit, offset int) ([]models.ApprovalRequest, int64, error)
	Decide(id, reviewerID string, status models.ApprovalStatus, note string) error
	ExpireOlderThan(cutoff time.Time) (int64, error)
}

type approvalRepository struct {
	db *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) ApprovalRepository {
	return &approvalRepository{db: db}
}

func (r *approvalRepository) Create(request *models.ApprovalRequest) error {
	return r.db.Create(request).Error
}

func (r *approvalRepository) GetByID(id string) (*models.ApprovalRequest, error) {
	var request models.ApprovalRequest
	err := r.db.First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApprovalNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *approvalRepository) FindPendingByCampaign(campaignID string) (*models.ApprovalRequest, error) {
	var request models.ApprovalRequest
	err := r.db.
		Where("campaign_id = ? AND status = ?", campaignID, models.ApprovalStatusPending).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApprovalNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *approvalRepository) ListByStatus(status models.ApprovalStatus, limit, offset int) ([]models.ApprovalRequest, int64, error) {
	query := r.db.Model(&models.ApprovalRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []models.ApprovalRequest
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&requests).Error
	return requests, total, err
}

func (r *approvalRepository) Decide(id, reviewerID string, status models.ApprovalStatus, note string) error {
	now := time.Now()
	result := r.db.Model(&models.ApprovalRequest{}).
		Where("id = ? AND status = ?", id, models.ApprovalStatusPending).
		Updates(map[string]interface{}{
			"reviewer_id": reviewerID,
			"status":      status,
			"note":        note,
			"decided_at":  &now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApprovalNotFound
	}
	return nil
}

func (r *approvalRepository) ExpireOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Model(&models.ApprovalRequest{}).
		Where("status = ? AND created_at < ?", models.ApprovalStatusPending, cutoff).
		Update("status", models.ApprovalStatusExpired)
	return result.RowsAffected, result.Error
}
