package dto

import (
	"encoding/json"
	"time"

	"adops_backend/internal/models"
)

// --- Creative Requests ---

type CreateCreativeRequest struct {
	OwnerID string   `json:"owner_id" validate:"-"` // set by the server
	Name    string   `json:"name" validate:"required,min=2,max=120"`
	Format  string   `json:"format" validate:"required,oneof=banner video native audio"`
	Tags    []string `json:"tags" validate:"omitempty,max=20,dive,max=40"`
}

type UpdateCreativeRequest struct {
	Name   *string                `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Format *string                `json:"format,omitempty" validate:"omitempty,oneof=banner video native audio"`
	Status *models.CreativeStatus `json:"status,omitempty" validate:"omitempty,oneof=draft ready archived"`
	Tags   []string               `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=40"`
}

type ListCreativesRequest struct {
	CampaignID string `form:"campaign_id" validate:"omitempty,uuid"`
	Format     string `form:"format" validate:"omitempty,oneof=banner video native audio"`
	Status     string `form:"status" validate:"omitempty,oneof=draft ready archived"`
	Mine       bool   `form:"mine"`

	Page     int `form:"-"`
	PageSize int `form:"-"`
}

// --- Creative Responses ---

type CreativeResponse struct {
	ID         string                `json:"id"`
	CampaignID *string               `json:"campaign_id,omitempty"`
	OwnerID    string                `json:"owner_id"`
	Name       string                `json:"name"`
	Format     string                `json:"format"`
	Status     models.CreativeStatus `json:"status"`
	AssetURL   string                `json:"asset_url,omitempty"`
	MimeType   string                `json:"mime_type,omitempty"`
	SizeBytes  int64                 `json:"size_bytes,omitempty"`
	Tags       []string              `json:"tags"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

func NewCreativeResponse(c *models.Creative) CreativeResponse {
	resp := CreativeResponse{
		ID:         c.ID,
		CampaignID: c.CampaignID,
		OwnerID:    c.OwnerID,
		Name:       c.Name,
		Format:     c.Format,
		Status:     c.Status,
		AssetURL:   c.AssetURL,
		MimeType:   c.MimeType,
		SizeBytes:  c.SizeBytes,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}

	if len(c.Tags) > 0 {
		_ = json.Unmarshal(c.Tags, &resp.Tags)
	}

	return resp
}
