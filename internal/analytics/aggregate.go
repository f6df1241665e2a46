package analytics

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// Reducer collapses the values of one group into a single number.
type Reducer int

const (
	// Mean is the arithmetic mean of the group.
	Mean Reducer = iota
	// Sum is the total of the group.
	Sum
)

// String returns the reducer name.
func (r Reducer) String() string {
	switch r {
	case Mean:
		return "mean"
	case Sum:
		return "sum"
	default:
		return "unknown"
	}
}

// reduce is only called with non-empty groups.
func (r Reducer) reduce(values []float64) float64 {
	if r == Mean {
		return stat.Mean(values, nil)
	}
	return floats.Sum(values)
}

// Entry is one group of an aggregate.
type Entry[K comparable] struct {
	Key   K
	Value float64
	Count int
}

// Aggregate is an ordered key to value mapping produced by GroupReduce.
type Aggregate[K comparable] struct {
	entries []Entry[K]
}

// NewAggregate builds an aggregate from entries in the given order.
func NewAggregate[K comparable](entries ...Entry[K]) Aggregate[K] {
	return Aggregate[K]{entries: slices.Clone(entries)}
}

// Len returns the number of groups.
func (a Aggregate[K]) Len() int {
	return len(a.entries)
}

// Entries returns a copy of the groups in iteration order.
func (a Aggregate[K]) Entries() []Entry[K] {
	return slices.Clone(a.entries)
}

// Keys returns the group keys in iteration order.
func (a Aggregate[K]) Keys() []K {
	keys := make([]K, len(a.entries))
	for i, e := range a.entries {
		keys[i] = e.Key
	}
	return keys
}

// Values returns the reduced values in iteration order.
func (a Aggregate[K]) Values() []float64 {
	values := make([]float64, len(a.entries))
	for i, e := range a.entries {
		values[i] = e.Value
	}
	return values
}

// Lookup returns the entry for key.
func (a Aggregate[K]) Lookup(key K) (Entry[K], bool) {
	for _, e := range a.entries {
		if e.Key == key {
			return e, true
		}
	}
	return Entry[K]{}, false
}

// Total returns the sum of the reduced values.
func (a Aggregate[K]) Total() float64 {
	if len(a.entries) == 0 {
		return 0
	}
	return floats.Sum(a.Values())
}

// SortedBy returns a copy ordered by key. Equal keys keep their relative order.
func (a Aggregate[K]) SortedBy(compare func(x, y K) int) Aggregate[K] {
	entries := slices.Clone(a.entries)
	slices.SortStableFunc(entries, func(x, y Entry[K]) int {
		return compare(x.Key, y.Key)
	})
	return Aggregate[K]{entries: entries}
}

// Filter returns the entries whose key satisfies keep, in the same order.
func (a Aggregate[K]) Filter(keep func(K) bool) Aggregate[K] {
	var entries []Entry[K]
	for _, e := range a.entries {
		if keep(e.Key) {
			entries = append(entries, e)
		}
	}
	return Aggregate[K]{entries: entries}
}

// KeyFunc extracts a grouping key. Records for which ok is false are skipped.
type KeyFunc[K comparable] = func(models.Observation) (key K, ok bool)

// ValueFunc extracts the measure being reduced.
type ValueFunc = func(models.Observation) float64

// groups holds record values bucketed by key in first-seen order.
type groups[K comparable] struct {
	keys   []K
	values [][]float64
}

func collect[K comparable](records []models.Observation, key KeyFunc[K], value ValueFunc) groups[K] {
	var g groups[K]
	index := make(map[K]int)
	for _, r := range records {
		k, ok := key(r)
		if !ok {
			continue
		}
		i, seen := index[k]
		if !seen {
			i = len(g.keys)
			index[k] = i
			g.keys = append(g.keys, k)
			g.values = append(g.values, nil)
		}
		g.values[i] = append(g.values[i], value(r))
	}
	return g
}

// GroupReduce groups records by key and reduces value within each group.
// Groups appear in the order their key is first seen; only keys present in records exist.
func GroupReduce[K comparable](records []models.Observation, key KeyFunc[K], value ValueFunc, reducer Reducer) Aggregate[K] {
	g := collect(records, key, value)
	entries := make([]Entry[K], len(g.keys))
	for i, k := range g.keys {
		entries[i] = Entry[K]{
			Key:   k,
			Value: reducer.reduce(g.values[i]),
			Count: len(g.values[i]),
		}
	}
	return Aggregate[K]{entries: entries}
}

// PairKey groups by a category label and an hour of day.
type PairKey struct {
	Group string
	Hour  int
}

// BySeason keys a record by its season label.
func BySeason(r models.Observation) (string, bool) { return r.Season, true }

// ByWeather keys a record by its weather label.
func ByWeather(r models.Observation) (string, bool) { return r.Weather, true }

// ByHour keys a record by hour of day, skipping daily-only rows.
func ByHour(r models.Observation) (int, bool) { return r.Hour, r.HasHour() }

// ByLabel keys a record by its label on dimension d.
func ByLabel(d models.Dimension) KeyFunc[string] {
	return func(r models.Observation) (string, bool) { return r.Label(d), true }
}

// ByLabelHour keys a record by its label on dimension d paired with its hour.
func ByLabelHour(d models.Dimension) KeyFunc[PairKey] {
	return func(r models.Observation) (PairKey, bool) {
		return PairKey{Group: r.Label(d), Hour: r.Hour}, r.HasHour()
	}
}

// DailyCount is the daily rental total of a record.
func DailyCount(r models.Observation) float64 { return float64(r.DailyCount) }

// HourlyCount is the hourly rental total of a record.
func HourlyCount(r models.Observation) float64 { return float64(r.HourlyCount) }

// ByHourAscending orders hour keys for chart axes.
func ByHourAscending(a, b int) int { return cmp.Compare(a, b) }

// GroupedByHour orders a paired aggregate by first-seen group, then by ascending hour.
func GroupedByHour(pairs Aggregate[PairKey]) Aggregate[PairKey] {
	rank := make(map[string]int)
	for _, e := range pairs.entries {
		if _, ok := rank[e.Key.Group]; !ok {
			rank[e.Key.Group] = len(rank)
		}
	}
	return pairs.SortedBy(func(x, y PairKey) int {
		if c := cmp.Compare(rank[x.Group], rank[y.Group]); c != 0 {
			return c
		}
		return cmp.Compare(x.Hour, y.Hour)
	})
}

// Nest splits a paired aggregate into one hour aggregate per outer group.
// Groups keep first-seen order and hours inside each group are ascending.
func Nest(pairs Aggregate[PairKey]) []Group {
	var out []Group
	for _, e := range GroupedByHour(pairs).entries {
		if n := len(out); n == 0 || out[n-1].Name != e.Key.Group {
			out = append(out, Group{Name: e.Key.Group})
		}
		last := &out[len(out)-1]
		last.Hours.entries = append(last.Hours.entries, Entry[int]{
			Key:   e.Key.Hour,
			Value: e.Value,
			Count: e.Count,
		})
	}
	return out
}

// Group is the hourly aggregate restricted to one outer category.
type Group struct {
	Name  string
	Hours Aggregate[int]
}
