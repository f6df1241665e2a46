package analytics

// Share is a group's percentage of the aggregate total.
type Share[K comparable] struct {
	Key     K
	Value   float64
	Percent float64
}

// PercentageShare returns 100 * value / total for every entry of a, in iteration order.
func PercentageShare[K comparable](a Aggregate[K]) ([]Share[K], error) {
	total := a.Total()
	if total == 0 {
		return nil, ErrDivisionUndefined
	}

	shares := make([]Share[K], len(a.entries))
	for i, e := range a.entries {
		shares[i] = Share[K]{
			Key:     e.Key,
			Value:   e.Value,
			Percent: 100 * e.Value / total,
		}
	}
	return shares, nil
}
