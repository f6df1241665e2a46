package analytics

// Extremum holds the highest and lowest groups of an aggregate.
// Valid is false when the aggregate was empty; Max and Min are then zero values.
type Extremum[K comparable] struct {
	Max   Entry[K]
	Min   Entry[K]
	Valid bool
}

// FindExtremum returns the maximal and minimal entries of a.
// On ties the entry that comes first in iteration order wins.
func FindExtremum[K comparable](a Aggregate[K]) (Extremum[K], error) {
	if len(a.entries) == 0 {
		return Extremum[K]{}, ErrAbsentExtremum
	}

	ext := Extremum[K]{Max: a.entries[0], Min: a.entries[0], Valid: true}
	for _, e := range a.entries[1:] {
		if e.Value > ext.Max.Value {
			ext.Max = e
		}
		if e.Value < ext.Min.Value {
			ext.Min = e
		}
	}
	return ext, nil
}

// extremumOf discards the absent signal; callers read Valid instead.
func extremumOf[K comparable](a Aggregate[K]) Extremum[K] {
	ext, _ := FindExtremum(a)
	return ext
}
