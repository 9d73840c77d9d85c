package dto

import "adops_backend/internal/models"

// --- Admin user management ---

type UpdateUserStatusRequest struct {
	Status models.UserStatus `json:"status" validate:"required,oneof=pending active suspended"`
}

type ListUsersRequest struct {
	Page     int `form:"-"`
	PageSize int `form:"-"`
}
