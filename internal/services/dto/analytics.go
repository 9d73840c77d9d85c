package dto

import (
	"encoding/json"

	"adops_backend/internal/analytics"
)

// --- Analytics Requests ---

// AnalyticsQuery selects the time window for the analytics page.
type AnalyticsQuery struct {
	Range string `form:"range" validate:"omitempty,timerange"`
}

// IngestRecordRequest is one day of performance data pushed by an
// integration. Date uses the wire format YYYY-MM-DD. The nested
// payloads are accepted as raw JSON (object or string-encoded) and
// stored untouched.
type IngestRecordRequest struct {
	Date           string  `json:"date" validate:"required,datetime=2006-01-02"`
	Impressions    int64   `json:"impressions" validate:"min=0"`
	Engagements    int64   `json:"engagements" validate:"min=0"`
	Conversions    int64   `json:"conversions" validate:"min=0"`
	CTR            float64 `json:"ctr" validate:"min=0,max=1"`
	ConversionRate float64 `json:"conversionRate" validate:"min=0,max=1"`

	AverageDwellTime *float64 `json:"averageDwellTime,omitempty" validate:"omitempty,min=0"`

	CostData        json.RawMessage `json:"costData,omitempty"`
	AudienceMetrics json.RawMessage `json:"audienceMetrics,omitempty"`
	EmotionMetrics  json.RawMessage `json:"emotionMetrics,omitempty"`
}

type IngestRecordsRequest struct {
	Records []IngestRecordRequest `json:"records" validate:"required,min=1,max=366,dive"`
}

// ExportRequest selects the export format and window.
type ExportRequest struct {
	Format    string `json:"format" validate:"required,oneof=csv pdf"`
	TimeRange string `json:"timeRange" validate:"omitempty,timerange"`
}

// --- Analytics Responses ---

// CampaignAnalyticsResponse is everything the analytics page renders.
// ComparisonSynthetic marks deltas computed against a synthesized
// placeholder window because the campaign has no earlier history.
type CampaignAnalyticsResponse struct {
	CampaignID          string                  `json:"campaign_id"`
	Range               string                  `json:"range"`
	Series              []analytics.SeriesPoint `json:"series"`
	Summary             analytics.Summary       `json:"summary"`
	Comparison          analytics.Comparison    `json:"comparison"`
	ComparisonSynthetic bool                    `json:"comparison_synthetic"`
	Breakdowns          analytics.Breakdowns    `json:"breakdowns"`
}
