package analytics

import "math"

// BuildSeries converts normalized records into chart points, one per
// day, in the order received. Rates are the record's own fractional
// values scaled to percentages and rounded to two decimals; they are
// deliberately not recomputed from the counts (that is Summarize's
// definition, and the two may differ).
func BuildSeries(records []NormalizedRecord) []SeriesPoint {
	series := make([]SeriesPoint, 0, len(records))
	for _, r := range records {
		dwell := 0.0
		if r.DwellTime != nil {
			dwell = *r.DwellTime
		}

		series = append(series, SeriesPoint{
			Date:             r.Date.Format("Jan 2"),
			Impressions:      r.Impressions,
			Engagements:      r.Engagements,
			Conversions:      r.Conversions,
			CTR:              round2(r.CTR * 100),
			ConversionRate:   round2(r.ConversionRate * 100),
			Spend:            r.Spend,
			AverageDwellTime: dwell,
		})
	}
	return series
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
