package services

// ServiceContainer bundles all business services for wiring.
type ServiceContainer struct {
	AuthService      AuthService
	UserService      UserService
	CampaignService  CampaignService
	CreativeService  CreativeService
	ApprovalService  ApprovalService
	AnalyticsService AnalyticsService
	ExportService    ExportService
}
