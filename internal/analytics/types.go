// Package analytics turns a campaign's raw per-day performance records
// into the series, summary, period-over-period comparison and breakdown
// structures shown on the analytics page.
//
// Every function here is a pure transformation: no I/O, no shared state,
// fresh outputs on every call. Fetching the records (and the prior
// window used for comparison) is the caller's job.
package analytics

import (
	"encoding/json"
	"time"
)

// Record is the wire shape of one day of campaign performance.
// CostData, AudienceMetrics and EmotionMetrics may each arrive either
// as a JSON object or as a JSON-encoded string, so they are kept raw
// until the stage that needs them.
type Record struct {
	Date           time.Time       `json:"date"`
	Impressions    int64           `json:"impressions"`
	Engagements    int64           `json:"engagements"`
	Conversions    int64           `json:"conversions"`
	CTR            float64         `json:"ctr"`            // fraction in [0,1]
	ConversionRate float64         `json:"conversionRate"` // fraction in [0,1]

	// nil means the dwell time was not measured that day; it is then
	// excluded from the series default but still counted in the
	// summary divisor (see Summarize).
	AverageDwellTime *float64 `json:"averageDwellTime,omitempty"`

	CostData        json.RawMessage `json:"costData,omitempty"`
	AudienceMetrics json.RawMessage `json:"audienceMetrics,omitempty"`
	EmotionMetrics  json.RawMessage `json:"emotionMetrics,omitempty"`
}

// NormalizedRecord is the uniform in-memory record produced by
// Normalize. Spend is already parsed out of the cost payload; the
// audience and emotion payloads stay raw because not every breakdown
// dimension is requested on every render.
type NormalizedRecord struct {
	Date           time.Time
	Impressions    int64
	Engagements    int64
	Conversions    int64
	CTR            float64
	ConversionRate float64
	DwellTime      *float64
	Spend          float64

	Audience json.RawMessage
	Emotion  json.RawMessage
}

// SeriesPoint is one chart point. CTR and ConversionRate here are
// percentages rounded to two decimals, taken from the record's own
// precomputed fractional rates, NOT recomputed from the counts. The
// summary computes its rates from the totals instead, and the two can
// legitimately disagree.
type SeriesPoint struct {
	Date             string  `json:"date"` // short label, e.g. "Jan 2"
	Impressions      int64   `json:"impressions"`
	Engagements      int64   `json:"engagements"`
	Conversions      int64   `json:"conversions"`
	CTR              float64 `json:"ctr"`
	ConversionRate   float64 `json:"conversionRate"`
	Spend            float64 `json:"spend"`
	AverageDwellTime float64 `json:"averageDwellTime"`
}

// Summary holds campaign-level totals over the selected window.
// AverageCTR and AverageConversionRate are percentages in [0,100],
// unlike the fractional per-record rates.
type Summary struct {
	TotalImpressions      int64   `json:"totalImpressions"`
	TotalEngagements      int64   `json:"totalEngagements"`
	TotalConversions      int64   `json:"totalConversions"`
	TotalSpend            float64 `json:"totalSpend"`
	AverageCTR            float64 `json:"averageCTR"`
	AverageConversionRate float64 `json:"averageConversionRate"`
	AverageDwellTime      float64 `json:"averageDwellTime"`
}

// Comparison is the signed percentage change of each tracked metric
// against the prior window. Positive always means an increase; whether
// an increase is good (impressions) or bad (spend) is presentation.
type Comparison struct {
	Impressions float64 `json:"impressions"`
	Engagements float64 `json:"engagements"`
	Conversions float64 `json:"conversions"`
	Spend       float64 `json:"spend"`
}

// BreakdownEntry is one slice of a categorical distribution.
type BreakdownEntry struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Breakdowns bundles the three chart dimensions.
type Breakdowns struct {
	Age       []BreakdownEntry `json:"age"`
	Sentiment []BreakdownEntry `json:"sentiment"`
	Device    []BreakdownEntry `json:"device"`
}
