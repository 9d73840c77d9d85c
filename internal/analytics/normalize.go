package analytics

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Normalize produces a uniform record per raw record. Cardinality and
// order are preserved. A record with a corrupt cost payload is kept
// with spend 0 so the count totals stay accurate.
func Normalize(records []Record) []NormalizedRecord {
	out := make([]NormalizedRecord, 0, len(records))
	for _, r := range records {
		out = append(out, NormalizedRecord{
			Date:           r.Date,
			Impressions:    r.Impressions,
			Engagements:    r.Engagements,
			Conversions:    r.Conversions,
			CTR:            r.CTR,
			ConversionRate: r.ConversionRate,
			DwellTime:      r.AverageDwellTime,
			Spend:          parseSpend(r.CostData),
			Audience:       r.AudienceMetrics,
			Emotion:        r.EmotionMetrics,
		})
	}
	return out
}

// parseSpend extracts spend from the cost payload. The payload may be
// an object or a JSON-encoded string holding an object, and spend
// itself may be a number or a numeric string. Any failure yields 0.
func parseSpend(raw json.RawMessage) float64 {
	body := unwrapPayload(raw)
	if body == nil {
		return 0
	}

	var payload struct {
		Spend interface{} `json:"spend"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return 0
	}
	return coerceNumber(payload.Spend)
}

// unwrapPayload returns the object bytes of a payload that may be
// double-encoded as a JSON string. Returns nil when there is nothing
// usable.
func unwrapPayload(raw json.RawMessage) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return nil
		}
		return []byte(inner)
	}

	return trimmed
}

// coerceNumber converts a decoded JSON value to float64.
// Non-numeric values contribute 0.
func coerceNumber(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
