package models

import (
	"time"

	"gorm.io/datatypes"
)

// AnalyticsRecord is one day of delivery performance for a campaign.
// The nested payloads are stored exactly as they arrive from the
// delivery partners; the analytics engine does its own parsing, so a
// malformed payload here never blocks ingestion.
type AnalyticsRecord struct {
	BaseModel
	CampaignID  string    `gorm:"type:uuid;not null;index:idx_campaign_date,unique"`
	Date        time.Time `gorm:"not null;index:idx_campaign_date,unique"`
	Impressions int64     `gorm:"not null;default:0"`
	Engagements int64     `gorm:"not null;default:0"`
	Conversions int64     `gorm:"not null;default:0"`

	// Fractional rates in [0,1] precomputed upstream. They are not
	// recomputed from the counts on this row; see the analytics engine.
	CTR            float64 `gorm:"not null;default:0"`
	ConversionRate float64 `gorm:"not null;default:0"`

	// Seconds; nil means not measured that day, which is different
	// from measured-as-zero.
	AverageDwellTime *float64

	CostData        datatypes.JSON `gorm:"type:jsonb"`
	AudienceMetrics datatypes.JSON `gorm:"type:jsonb"`
	EmotionMetrics  datatypes.JSON `gorm:"type:jsonb"`
}
