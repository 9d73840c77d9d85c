package analytics

import (
	"bytes"
	"encoding/json"
)

// Fixed illustrative distributions shown when no real data exists for
// a dimension, so the UI never renders an empty chart. Values are
// percentages, which makes them visually distinguishable from the
// absolute counts real aggregation produces.
var (
	fallbackAge = []BreakdownEntry{
		{Name: "18-24", Value: 25},
		{Name: "25-34", Value: 35},
		{Name: "35-44", Value: 20},
		{Name: "45-54", Value: 12},
		{Name: "55+", Value: 8},
	}

	fallbackSentiment = []BreakdownEntry{
		{Name: "Positive", Value: 55},
		{Name: "Neutral", Value: 30},
		{Name: "Negative", Value: 15},
	}

	fallbackDevice = []BreakdownEntry{
		{Name: "Mobile", Value: 62},
		{Name: "Desktop", Value: 28},
		{Name: "Tablet", Value: 10},
	}
)

// accumulator sums values per category, remembering first-appearance
// order. Category sets are open (age bands and sentiment labels are
// whatever the partner sends), so an ordered label->total pair list is
// the natural shape.
type accumulator struct {
	order  []string
	totals map[string]float64
}

func newAccumulator() *accumulator {
	return &accumulator{totals: make(map[string]float64)}
}

func (a *accumulator) add(name string, value float64) {
	if _, seen := a.totals[name]; !seen {
		a.order = append(a.order, name)
	}
	a.totals[name] += value
}

func (a *accumulator) entries() []BreakdownEntry {
	out := make([]BreakdownEntry, 0, len(a.order))
	for _, name := range a.order {
		out = append(out, BreakdownEntry{Name: name, Value: a.totals[name]})
	}
	return out
}

// AgeBreakdown aggregates audienceMetrics.ageGroups across all
// records. Absent or unparseable payloads contribute nothing; if no
// record contributes, the fallback distribution is returned.
func AgeBreakdown(records []NormalizedRecord) []BreakdownEntry {
	acc := newAccumulator()
	for _, r := range records {
		body := unwrapPayload(r.Audience)
		if body == nil {
			continue
		}

		var payload struct {
			AgeGroups json.RawMessage `json:"ageGroups"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			continue
		}
		forEachOrderedCount(payload.AgeGroups, acc.add)
	}

	if len(acc.order) == 0 {
		return clone(fallbackAge)
	}
	return acc.entries()
}

// SentimentBreakdown aggregates emotionMetrics.sentiments across all
// records into the three fixed sentiment slices.
func SentimentBreakdown(records []NormalizedRecord) []BreakdownEntry {
	acc := newAccumulator()
	for _, r := range records {
		body := unwrapPayload(r.Emotion)
		if body == nil {
			continue
		}

		var payload struct {
			Sentiments *struct {
				Positive interface{} `json:"positive"`
				Neutral  interface{} `json:"neutral"`
				Negative interface{} `json:"negative"`
			} `json:"sentiments"`
		}
		if err := json.Unmarshal(body, &payload); err != nil || payload.Sentiments == nil {
			continue
		}
		// An empty sentiments object carries no data; counting it
		// would masquerade as a real all-zero distribution.
		if payload.Sentiments.Positive == nil && payload.Sentiments.Neutral == nil &&
			payload.Sentiments.Negative == nil {
			continue
		}

		acc.add("Positive", coerceNumber(payload.Sentiments.Positive))
		acc.add("Neutral", coerceNumber(payload.Sentiments.Neutral))
		acc.add("Negative", coerceNumber(payload.Sentiments.Negative))
	}

	if len(acc.order) == 0 {
		return clone(fallbackSentiment)
	}
	return acc.entries()
}

// DeviceBreakdown always returns the fallback distribution: no wire
// field carries device data yet. Placeholder until the delivery feed
// includes a device dimension, not a bug to fix here.
func DeviceBreakdown(_ []NormalizedRecord) []BreakdownEntry {
	return clone(fallbackDevice)
}

// BuildBreakdowns runs all three dimensions.
func BuildBreakdowns(records []NormalizedRecord) Breakdowns {
	return Breakdowns{
		Age:       AgeBreakdown(records),
		Sentiment: SentimentBreakdown(records),
		Device:    DeviceBreakdown(records),
	}
}

// forEachOrderedCount walks a flat JSON object of category -> count in
// document order. encoding/json maps would scramble the order, so the
// object is read token by token.
func forEachOrderedCount(obj json.RawMessage, visit func(name string, value float64)) {
	trimmed := bytes.TrimSpace(obj)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	if _, err := dec.Token(); err != nil { // opening brace
		return
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return
		}
		key, ok := keyTok.(string)
		if !ok {
			return
		}

		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return
		}
		visit(key, coerceNumber(value))
	}
}

func clone(entries []BreakdownEntry) []BreakdownEntry {
	out := make([]BreakdownEntry, len(entries))
	copy(out, entries)
	return out
}
