package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentageShare(t *testing.T) {
	agg := NewAggregate(
		Entry[string]{Key: "spring", Value: 1000},
		Entry[string]{Key: "summer", Value: 4000},
		Entry[string]{Key: "fall", Value: 3000},
		Entry[string]{Key: "winter", Value: 2000},
	)

	shares, err := PercentageShare(agg)
	require.NoError(t, err)
	require.Len(t, shares, 4)

	want := map[string]float64{"spring": 10, "summer": 40, "fall": 30, "winter": 20}
	for i, sh := range shares {
		assert.Equal(t, agg.Keys()[i], sh.Key, "shares keep aggregate order")
		assert.InDelta(t, want[sh.Key], sh.Percent, 1e-9)
	}
}

func TestPercentageShare_SumsToHundred(t *testing.T) {
	records := randomRecords(600, 21)
	agg := GroupReduce(records, BySeason, DailyCount, Sum)

	shares, err := PercentageShare(agg)
	require.NoError(t, err)

	var total float64
	for _, sh := range shares {
		total += sh.Percent
	}
	assert.InDelta(t, 100.0, total, 1e-9)
}

func TestPercentageShare_ZeroTotal(t *testing.T) {
	tests := []struct {
		name string
		agg  Aggregate[string]
	}{
		{"empty", Aggregate[string]{}},
		{"all zero", NewAggregate(Entry[string]{Key: "a"}, Entry[string]{Key: "b"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := PercentageShare(tt.agg)
			assert.ErrorIs(t, err, ErrDivisionUndefined)
			assert.Nil(t, shares)
		})
	}
}
