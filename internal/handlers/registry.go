package handlers

import (
	"adops_backend/internal/config"
	"adops_backend/internal/services"
	"adops_backend/internal/validator"
)

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	Auth      *AuthHandler
	User      *UserHandler
	Campaign  *CampaignHandler
	Creative  *CreativeHandler
	Approval  *ApprovalHandler
	Analytics *AnalyticsHandler
	Export    *ExportHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator, cfg *config.Config) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:      NewAuthHandler(base, sc.AuthService),
		User:      NewUserHandler(base, sc.UserService),
		Campaign:  NewCampaignHandler(base, sc.CampaignService),
		Creative:  NewCreativeHandler(base, sc.CreativeService, cfg.Upload),
		Approval:  NewApprovalHandler(base, sc.ApprovalService),
		Analytics: NewAnalyticsHandler(base, sc.AnalyticsService),
		Export:    NewExportHandler(base, sc.ExportService),
	}
}
