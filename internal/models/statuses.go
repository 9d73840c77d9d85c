package models

type UserStatus string
type UserRole string
type CampaignStatus string
type CreativeStatus string
type ApprovalStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	UserRoleAdmin   UserRole = "admin"
	UserRoleManager UserRole = "manager"
	UserRoleViewer  UserRole = "viewer"

	CampaignStatusDraft         CampaignStatus = "draft"
	CampaignStatusPendingReview CampaignStatus = "pending_review"
	CampaignStatusActive        CampaignStatus = "active"
	CampaignStatusPaused        CampaignStatus = "paused"
	CampaignStatusCompleted     CampaignStatus = "completed"

	CreativeStatusDraft    CreativeStatus = "draft"
	CreativeStatusReady    CreativeStatus = "ready"
	CreativeStatusArchived CreativeStatus = "archived"

	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
	ApprovalStatusExpired  ApprovalStatus = "expired"
)

// CampaignStatusTransitions lists the allowed status moves.
var CampaignStatusTransitions = map[CampaignStatus][]CampaignStatus{
	CampaignStatusDraft:         {CampaignStatusPendingReview},
	CampaignStatusPendingReview: {CampaignStatusActive, CampaignStatusDraft},
	CampaignStatusActive:        {CampaignStatusPaused, CampaignStatusCompleted},
	CampaignStatusPaused:        {CampaignStatusActive, CampaignStatusCompleted},
	CampaignStatusCompleted:     {},
}

// CanTransition reports whether a campaign may move from one status to another.
func CanTransition(from, to CampaignStatus) bool {
	for _, allowed := range CampaignStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
