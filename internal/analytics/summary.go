package analytics

// Summarize reduces the window to campaign-level totals and the two
// platform-standard derived rates. Every division is guarded: an empty
// window or zero denominator yields 0, never NaN or Inf.
//
// AverageDwellTime divides by the full record count, with missing
// values counted as 0. That matches the numbers the console has always
// shown; changing the divisor would silently move them.
func Summarize(records []NormalizedRecord) Summary {
	var s Summary
	if len(records) == 0 {
		return s
	}

	var dwellSum float64
	for _, r := range records {
		s.TotalImpressions += r.Impressions
		s.TotalEngagements += r.Engagements
		s.TotalConversions += r.Conversions
		s.TotalSpend += r.Spend
		if r.DwellTime != nil {
			dwellSum += *r.DwellTime
		}
	}

	if s.TotalImpressions > 0 {
		s.AverageCTR = float64(s.TotalEngagements) / float64(s.TotalImpressions) * 100
	}
	if s.TotalEngagements > 0 {
		s.AverageConversionRate = float64(s.TotalConversions) / float64(s.TotalEngagements) * 100
	}
	s.AverageDwellTime = dwellSum / float64(len(records))

	return s
}
