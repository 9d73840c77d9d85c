package analytics

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func floatPtr(v float64) *float64 { return &v }

func TestNormalize_CostDataVariants(t *testing.T) {
	records := []Record{
		{Date: day("2026-08-01"), CostData: json.RawMessage(`{"spend": 50}`)},
		{Date: day("2026-08-02"), CostData: json.RawMessage(`{"spend": "25.5"}`)},
		// whole payload double-encoded as a JSON string
		{Date: day("2026-08-03"), CostData: json.RawMessage(`"{\"spend\":\"25.5\"}"`)},
		// malformed payload: record kept, spend 0
		{Date: day("2026-08-04"), Impressions: 70, CostData: json.RawMessage(`"{bad json"`)},
		// missing payload
		{Date: day("2026-08-05")},
	}

	out := Normalize(records)
	require.Len(t, out, len(records), "normalization must keep every record")

	assert.Equal(t, 50.0, out[0].Spend)
	assert.Equal(t, 25.5, out[1].Spend)
	assert.Equal(t, 25.5, out[2].Spend)
	assert.Equal(t, 0.0, out[3].Spend)
	assert.Equal(t, int64(70), out[3].Impressions, "corrupt cost data must not touch counts")
	assert.Equal(t, 0.0, out[4].Spend)

	// order preserved
	for i, n := range out {
		assert.Equal(t, records[i].Date, n.Date)
	}
}

func TestNormalize_NonNumericSpend(t *testing.T) {
	out := Normalize([]Record{
		{Date: day("2026-08-01"), CostData: json.RawMessage(`{"spend": "lots"}`)},
		{Date: day("2026-08-02"), CostData: json.RawMessage(`{"spend": null}`)},
		{Date: day("2026-08-03"), CostData: json.RawMessage(`{"spend": {"amount": 5}}`)},
	})

	for _, n := range out {
		assert.Equal(t, 0.0, n.Spend)
	}
}

func TestBuildSeries(t *testing.T) {
	records := Normalize([]Record{
		{
			Date:             day("2026-01-02"),
			Impressions:      1000,
			Engagements:      120,
			Conversions:      12,
			CTR:              0.1234,
			ConversionRate:   0.0567,
			AverageDwellTime: floatPtr(4.2),
			CostData:         json.RawMessage(`{"spend": 10}`),
		},
		{Date: day("2026-01-03"), Impressions: 500},
	})

	series := BuildSeries(records)
	require.Len(t, series, 2)

	assert.Equal(t, "Jan 2", series[0].Date)
	assert.Equal(t, 12.34, series[0].CTR, "ctr is the record fraction x100, 2dp")
	assert.Equal(t, 5.67, series[0].ConversionRate)
	assert.Equal(t, 4.2, series[0].AverageDwellTime)
	assert.Equal(t, 10.0, series[0].Spend)

	assert.Equal(t, "Jan 3", series[1].Date)
	assert.Equal(t, 0.0, series[1].AverageDwellTime, "missing dwell time defaults to 0 in the series")
}

func TestBuildSeries_Empty(t *testing.T) {
	series := BuildSeries(nil)
	assert.NotNil(t, series)
	assert.Empty(t, series)
}

func TestSummarize_ScenarioA(t *testing.T) {
	records := Normalize([]Record{
		{
			Date:        day("2026-08-01"),
			Impressions: 100,
			Engagements: 10,
			Conversions: 1,
			CostData:    json.RawMessage(`{"spend": "50"}`),
		},
	})

	s := Summarize(records)
	assert.Equal(t, int64(100), s.TotalImpressions)
	assert.Equal(t, int64(10), s.TotalEngagements)
	assert.Equal(t, int64(1), s.TotalConversions)
	assert.Equal(t, 50.0, s.TotalSpend)
	assert.Equal(t, 10.0, s.AverageCTR)
	assert.Equal(t, 10.0, s.AverageConversionRate)
}

func TestSummarize_EmptyInput(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, Summary{}, s, "empty window degrades to the zero summary")
}

func TestSummarize_DivisionGuards(t *testing.T) {
	// impressions 0 -> CTR 0 even with engagements present
	s := Summarize(Normalize([]Record{
		{Date: day("2026-08-01"), Engagements: 5, Conversions: 3},
	}))
	assert.Equal(t, 0.0, s.AverageCTR)
	assert.Equal(t, 60.0, s.AverageConversionRate)

	// engagements 0 -> conversion rate 0 regardless of conversions
	s = Summarize(Normalize([]Record{
		{Date: day("2026-08-01"), Impressions: 10, Conversions: 7},
	}))
	assert.Equal(t, 0.0, s.AverageConversionRate)
}

func TestSummarize_RatesWithinBounds(t *testing.T) {
	s := Summarize(Normalize([]Record{
		{Date: day("2026-08-01"), Impressions: 100, Engagements: 100},
		{Date: day("2026-08-02"), Impressions: 400, Engagements: 40},
	}))
	assert.GreaterOrEqual(t, s.AverageCTR, 0.0)
	assert.LessOrEqual(t, s.AverageCTR, 100.0)
}

func TestSummarize_DwellTimeDivisor(t *testing.T) {
	// divisor is the full record count, missing dwell treated as 0
	s := Summarize(Normalize([]Record{
		{Date: day("2026-08-01"), AverageDwellTime: floatPtr(6)},
		{Date: day("2026-08-02"), AverageDwellTime: floatPtr(3)},
		{Date: day("2026-08-03")},
	}))
	assert.InDelta(t, 3.0, s.AverageDwellTime, 1e-9)
}

func TestPriorWindow(t *testing.T) {
	start, end := PriorWindow(day("2026-08-15"), 7)
	assert.Equal(t, day("2026-08-14"), end, "prior window ends the day before the current one starts")
	assert.Equal(t, day("2026-08-08"), start, "prior window has the same length")
}

func TestCompare(t *testing.T) {
	current := Summary{TotalImpressions: 120, TotalEngagements: 90, TotalConversions: 10, TotalSpend: 50}
	previous := Summary{TotalImpressions: 100, TotalEngagements: 100, TotalConversions: 0, TotalSpend: 100}

	c := Compare(current, previous)
	assert.InDelta(t, 20.0, c.Impressions, 1e-9)
	assert.InDelta(t, -10.0, c.Engagements, 1e-9)
	assert.Equal(t, 0.0, c.Conversions, "previous 0 yields 0, never Inf")
	assert.InDelta(t, -50.0, c.Spend, 1e-9)
}

func TestSyntheticPrior_Reproducible(t *testing.T) {
	current := Summary{TotalImpressions: 1000, TotalEngagements: 100, TotalConversions: 10, TotalSpend: 500}

	a := SyntheticPrior(current, 42)
	b := SyntheticPrior(current, 42)
	assert.Equal(t, a, b, "same seed yields the same placeholder")

	// scaled within [0.8, 1.2]
	assert.GreaterOrEqual(t, a.TotalImpressions, int64(800))
	assert.LessOrEqual(t, a.TotalImpressions, int64(1200))
	assert.GreaterOrEqual(t, a.TotalSpend, 400.0)
	assert.LessOrEqual(t, a.TotalSpend, 600.0)
}

func TestPipeline_Idempotent(t *testing.T) {
	records := []Record{
		{
			Date:             day("2026-08-01"),
			Impressions:      100,
			Engagements:      10,
			Conversions:      1,
			CTR:              0.1,
			ConversionRate:   0.1,
			AverageDwellTime: floatPtr(2.5),
			CostData:         json.RawMessage(`{"spend": 50}`),
			AudienceMetrics:  json.RawMessage(`{"ageGroups":{"18-24":10,"25-34":5}}`),
		},
		{Date: day("2026-08-02"), Impressions: 200, Engagements: 20, Conversions: 2},
	}

	runOnce := func() ([]SeriesPoint, Summary, Breakdowns) {
		n := Normalize(records)
		return BuildSeries(n), Summarize(n), BuildBreakdowns(n)
	}

	series1, summary1, breakdowns1 := runOnce()
	series2, summary2, breakdowns2 := runOnce()

	assert.Equal(t, series1, series2)
	assert.Equal(t, summary1, summary2)
	assert.Equal(t, breakdowns1, breakdowns2)
}

func TestTotalsAreExactIntegerSums(t *testing.T) {
	records := make([]Record, 0, 90)
	var want int64
	for i := 0; i < 90; i++ {
		imp := int64(i*37 + 1)
		want += imp
		records = append(records, Record{
			Date:        day("2026-05-01").AddDate(0, 0, i),
			Impressions: imp,
		})
	}

	s := Summarize(Normalize(records))
	assert.Equal(t, want, s.TotalImpressions)
}
