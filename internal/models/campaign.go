package models

import (
	"time"

	"gorm.io/datatypes"
)

type Campaign struct {
	BaseModel
	OwnerID     string `gorm:"type:uuid;not null;index"`
	Name        string `gorm:"not null"`
	Description string
	Objective   string         `gorm:"type:varchar(40)"`
	Status      CampaignStatus `gorm:"type:varchar(20);default:'draft';index"`
	Budget      float64
	StartDate   *time.Time
	EndDate     *time.Time
	Channels    datatypes.JSON `gorm:"type:jsonb"` // ["display","video",...]

	// Relations
	Creatives []Creative        `gorm:"foreignKey:CampaignID"`
	Records   []AnalyticsRecord `gorm:"foreignKey:CampaignID"`
}

type Creative struct {
	BaseModel
	CampaignID *string `gorm:"type:uuid;index"` // nil while still in the library
	OwnerID    string  `gorm:"type:uuid;not null;index"`
	Name       string  `gorm:"not null"`
	Format     string  `gorm:"type:varchar(30)"` // banner, video, native...
	Status     CreativeStatus `gorm:"type:varchar(20);default:'draft'"`
	AssetPath  string
	AssetURL   string
	MimeType   string
	SizeBytes  int64
	Tags       datatypes.JSON `gorm:"type:jsonb"`
}

type ApprovalRequest struct {
	BaseModel
	CampaignID  string         `gorm:"type:uuid;not null;index"`
	RequesterID string         `gorm:"type:uuid;not null;index"`
	ReviewerID  *string        `gorm:"type:uuid"`
	Status      ApprovalStatus `gorm:"type:varchar(20);default:'pending';index"`
	Note        string
	DecidedAt   *time.Time
}
