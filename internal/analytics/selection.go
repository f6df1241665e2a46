// Package analytics derives the filtered and grouped rental statistics behind every view.
//
// Functions in this package are pure. Records are passed in explicitly, never mutated,
// and every result is computed fresh for the selection it was asked about.
package analytics

import (
	"slices"

	"github.com/samber/lo"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// LabelSet is an ordered set of category labels. The zero value is empty.
type LabelSet struct {
	labels []string
	index  map[string]struct{}
}

// NewLabelSet builds a set from labels, dropping duplicates and keeping first-seen order.
func NewLabelSet(labels ...string) LabelSet {
	s := LabelSet{index: make(map[string]struct{}, len(labels))}
	for _, l := range labels {
		if _, ok := s.index[l]; ok {
			continue
		}
		s.index[l] = struct{}{}
		s.labels = append(s.labels, l)
	}
	return s
}

// Contains reports whether label is a member. Matching is exact.
func (s LabelSet) Contains(label string) bool {
	_, ok := s.index[label]
	return ok
}

// Len returns the number of labels.
func (s LabelSet) Len() int {
	return len(s.labels)
}

// Labels returns a copy of the members in insertion order.
func (s LabelSet) Labels() []string {
	return slices.Clone(s.labels)
}

// Toggle returns a new set with label removed if present, appended otherwise.
func (s LabelSet) Toggle(label string) LabelSet {
	if s.Contains(label) {
		return NewLabelSet(lo.Without(s.labels, label)...)
	}
	return NewLabelSet(append(slices.Clone(s.labels), label)...)
}

// Selection is the pair of label sets the filter engine matches against.
type Selection struct {
	Seasons LabelSet
	Weather LabelSet
}

// NewSelection builds a selection from two label lists.
func NewSelection(seasons, weather []string) Selection {
	return Selection{
		Seasons: NewLabelSet(seasons...),
		Weather: NewLabelSet(weather...),
	}
}

// Apply filters records through the selection.
func (sel Selection) Apply(records []models.Observation) []models.Observation {
	return Select(records, sel.Seasons, sel.Weather)
}

// Select returns the records whose season is in seasons and whose weather is in weather.
// The result is a new slice in input order. An empty set on either dimension matches nothing.
func Select(records []models.Observation, seasons, weather LabelSet) []models.Observation {
	if seasons.Len() == 0 || weather.Len() == 0 {
		return []models.Observation{}
	}
	return lo.Filter(records, func(r models.Observation, _ int) bool {
		return seasons.Contains(r.Season) && weather.Contains(r.Weather)
	})
}

// Options lists the labels present in a dataset in first-seen order.
type Options struct {
	Seasons []string
	Weather []string
}

// OptionsFrom collects the distinct season and weather labels of records.
func OptionsFrom(records []models.Observation) Options {
	return Options{
		Seasons: lo.Uniq(lo.Map(records, func(r models.Observation, _ int) string { return r.Season })),
		Weather: lo.Uniq(lo.Map(records, func(r models.Observation, _ int) string { return r.Weather })),
	}
}

// All is the selection used when no filter is configured: every label of the dataset.
func (o Options) All() Selection {
	return NewSelection(o.Seasons, o.Weather)
}

// DefaultSelection is shorthand for OptionsFrom(records).All().
func DefaultSelection(records []models.Observation) Selection {
	return OptionsFrom(records).All()
}
