package dto

import (
	"encoding/json"
	"time"

	"adops_backend/internal/models"
)

// --- Campaign Requests ---

type CreateCampaignRequest struct {
	OwnerID     string     `json:"owner_id" validate:"-"` // set by the server
	Name        string     `json:"name" validate:"required,min=3,max=120"`
	Description string     `json:"description" validate:"omitempty,max=5000"`
	Objective   string     `json:"objective" validate:"omitempty,oneof=awareness traffic engagement conversions"`
	Budget      float64    `json:"budget" validate:"omitempty,min=0"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Channels    []string   `json:"channels" validate:"omitempty,dive,oneof=display video social search native"`
}

type UpdateCampaignRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=3,max=120"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	Objective   *string    `json:"objective,omitempty" validate:"omitempty,oneof=awareness traffic engagement conversions"`
	Budget      *float64   `json:"budget,omitempty" validate:"omitempty,min=0"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Channels    []string   `json:"channels,omitempty" validate:"omitempty,dive,oneof=display video social search native"`
}

type UpdateCampaignStatusRequest struct {
	Status models.CampaignStatus `json:"status" validate:"required,oneof=draft pending_review active paused completed"`
}

type ListCampaignsRequest struct {
	Status string `form:"status" validate:"omitempty,oneof=draft pending_review active paused completed"`
	Search string `form:"search" validate:"omitempty,max=120"`
	Mine   bool   `form:"mine"`

	Page     int `form:"-"`
	PageSize int `form:"-"`
}

// --- Campaign Responses ---

type CampaignResponse struct {
	ID          string                `json:"id"`
	OwnerID     string                `json:"owner_id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Objective   string                `json:"objective"`
	Status      models.CampaignStatus `json:"status"`
	Budget      float64               `json:"budget"`
	StartDate   *time.Time            `json:"start_date,omitempty"`
	EndDate     *time.Time            `json:"end_date,omitempty"`
	Channels    []string              `json:"channels"`
	Creatives   []CreativeResponse    `json:"creatives,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

func NewCampaignResponse(c *models.Campaign) CampaignResponse {
	resp := CampaignResponse{
		ID:          c.ID,
		OwnerID:     c.OwnerID,
		Name:        c.Name,
		Description: c.Description,
		Objective:   c.Objective,
		Status:      c.Status,
		Budget:      c.Budget,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}

	if len(c.Channels) > 0 {
		_ = json.Unmarshal(c.Channels, &resp.Channels)
	}
	for i := range c.Creatives {
		resp.Creatives = append(resp.Creatives, NewCreativeResponse(&c.Creatives[i]))
	}

	return resp
}
