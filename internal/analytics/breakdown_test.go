package analytics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeBreakdown_AccumulatesAcrossRecords(t *testing.T) {
	const n = 4
	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, Record{
			Date:            day("2026-08-01").AddDate(0, 0, i),
			AudienceMetrics: json.RawMessage(`{"ageGroups":{"A":10,"B":5}}`),
		})
	}

	got := AgeBreakdown(Normalize(records))
	require.Equal(t, []BreakdownEntry{
		{Name: "A", Value: 10 * n},
		{Name: "B", Value: 5 * n},
	}, got)
}

func TestAgeBreakdown_PreservesFirstAppearanceOrder(t *testing.T) {
	records := []Record{
		{Date: day("2026-08-01"), AudienceMetrics: json.RawMessage(`{"ageGroups":{"25-34":3,"18-24":1}}`)},
		{Date: day("2026-08-02"), AudienceMetrics: json.RawMessage(`{"ageGroups":{"55+":2,"18-24":4}}`)},
	}

	got := AgeBreakdown(Normalize(records))
	require.Len(t, got, 3)
	assert.Equal(t, "25-34", got[0].Name)
	assert.Equal(t, "18-24", got[1].Name)
	assert.Equal(t, "55+", got[2].Name)
	assert.Equal(t, 5.0, got[1].Value)
}

func TestAgeBreakdown_StringEncodedPayload(t *testing.T) {
	records := []Record{
		{Date: day("2026-08-01"), AudienceMetrics: json.RawMessage(`"{\"ageGroups\":{\"18-24\":7}}"`)},
	}

	got := AgeBreakdown(Normalize(records))
	require.Equal(t, []BreakdownEntry{{Name: "18-24", Value: 7}}, got)
}

func TestAgeBreakdown_FallbackWhenNoData(t *testing.T) {
	cases := map[string][]Record{
		"no records":         nil,
		"no payloads":        {{Date: day("2026-08-01")}},
		"malformed payloads": {{Date: day("2026-08-01"), AudienceMetrics: json.RawMessage(`"{oops"`)}},
	}

	for name, records := range cases {
		t.Run(name, func(t *testing.T) {
			got := AgeBreakdown(Normalize(records))
			require.NotEmpty(t, got, "a dimension must never render empty")
			assert.Equal(t, fallbackAge, got)
		})
	}
}

func TestSentimentBreakdown(t *testing.T) {
	records := []Record{
		{Date: day("2026-08-01"), EmotionMetrics: json.RawMessage(`{"sentiments":{"positive":10,"neutral":5,"negative":2}}`)},
		{Date: day("2026-08-02"), EmotionMetrics: json.RawMessage(`{"sentiments":{"positive":1,"neutral":1,"negative":1}}`)},
		{Date: day("2026-08-03")}, // absent contributes nothing
	}

	got := SentimentBreakdown(Normalize(records))
	require.Equal(t, []BreakdownEntry{
		{Name: "Positive", Value: 11},
		{Name: "Neutral", Value: 6},
		{Name: "Negative", Value: 3},
	}, got)
}

func TestSentimentBreakdown_FallbackWhenNoData(t *testing.T) {
	got := SentimentBreakdown(nil)
	assert.Equal(t, fallbackSentiment, got)
}

func TestSentimentBreakdown_EmptyObjectFallsBack(t *testing.T) {
	// A present-but-empty sentiments object is no data, not a real
	// all-zero distribution.
	records := []Record{
		{Date: day("2026-08-01"), EmotionMetrics: json.RawMessage(`{"sentiments":{}}`)},
	}

	got := SentimentBreakdown(Normalize(records))
	assert.Equal(t, fallbackSentiment, got)
}

func TestDeviceBreakdown_AlwaysFallback(t *testing.T) {
	// no wire field carries device data; the constant is expected even
	// when records are present
	records := []Record{
		{Date: day("2026-08-01"), AudienceMetrics: json.RawMessage(`{"ageGroups":{"18-24":1}}`)},
	}

	got := DeviceBreakdown(Normalize(records))
	assert.Equal(t, fallbackDevice, got)
}

func TestBreakdowns_FallbacksAreFreshCopies(t *testing.T) {
	a := DeviceBreakdown(nil)
	a[0].Value = 999

	b := DeviceBreakdown(nil)
	assert.Equal(t, 62.0, b[0].Value, "callers must not be able to corrupt the shared constant")
}
