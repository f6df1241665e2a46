package analytics

import (
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// Summary is the five-number summary of a sample.
type Summary struct {
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
	Count  int
}

// IQR returns the interquartile range.
func (s Summary) IQR() float64 {
	return s.Q3 - s.Q1
}

// Summarize computes the five-number summary of values using empirical quantiles.
// It reports false for an empty sample.
func Summarize(values []float64) (Summary, bool) {
	if len(values) == 0 {
		return Summary{}, false
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return Summary{
		Min:    sorted[0],
		Q1:     stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, sorted, nil),
		Max:    sorted[len(sorted)-1],
		Count:  len(sorted),
	}, true
}

// GroupSummary is the summary of one category.
type GroupSummary struct {
	Group string
	Summary
}

// SummarizeBy computes a five-number summary of value per category, in first-seen order.
func SummarizeBy(records []models.Observation, key KeyFunc[string], value ValueFunc) []GroupSummary {
	g := collect(records, key, value)
	out := make([]GroupSummary, 0, len(g.keys))
	for i, k := range g.keys {
		s, _ := Summarize(g.values[i])
		out = append(out, GroupSummary{Group: k, Summary: s})
	}
	return out
}
