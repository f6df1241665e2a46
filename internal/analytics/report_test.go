package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

func TestBuild_WeatherImpactMeans(t *testing.T) {
	records := []models.Observation{
		obs("Spring", "clear", models.NoHour, 100, 0),
		obs("Spring", "clear", models.NoHour, 200, 0),
		obs("Spring", "rain", models.NoHour, 50, 0),
	}

	r := Build(records, DefaultSelection(records))

	require.Equal(t, StatusOK, r.Weather.Status)
	assert.Equal(t, []string{"clear", "rain"}, r.Weather.Means.Keys())
	assert.Equal(t, []float64{150, 50}, r.Weather.Means.Values())
}

func TestBuild_HourlyTrendPeak(t *testing.T) {
	records := []models.Observation{
		obs("Summer", "Clear", 17, 0, 280),
		obs("Summer", "Clear", 8, 0, 300),
		obs("Summer", "Clear", 2, 0, 5),
		obs("Summer", "Clear", 12, 0, 120),
	}

	r := Build(records, DefaultSelection(records))

	require.Equal(t, StatusOK, r.Hourly.Status)
	assert.Equal(t, []int{2, 8, 12, 17}, r.Hourly.Means.Keys(), "hours are ascending")
	require.True(t, r.Hourly.Extremum.Valid)
	assert.Equal(t, 8, r.Hourly.Extremum.Max.Key)
	assert.Equal(t, 300.0, r.Hourly.Extremum.Max.Value)
	assert.Equal(t, 2, r.Hourly.Extremum.Min.Key)
	assert.Equal(t, 5.0, r.Hourly.Extremum.Min.Value)
}

func TestBuild_SeasonalShares(t *testing.T) {
	records := []models.Observation{
		obs("spring", "Clear", models.NoHour, 1000, 0),
		obs("summer", "Clear", models.NoHour, 2500, 0),
		obs("fall", "Clear", models.NoHour, 3000, 0),
		obs("summer", "Clear", models.NoHour, 1500, 0),
		obs("winter", "Clear", models.NoHour, 2000, 0),
	}

	r := Build(records, DefaultSelection(records))

	require.Equal(t, StatusOK, r.Seasonal.Status)
	assert.Equal(t, []string{"spring", "summer", "fall", "winter"}, r.Seasonal.Totals.Keys())
	assert.Equal(t, 10000.0, r.Seasonal.Totals.Total())
	assert.Equal(t, "summer", r.Seasonal.Extremum.Max.Key)
	assert.Equal(t, "spring", r.Seasonal.Extremum.Min.Key)

	require.True(t, r.Seasonal.HasShares())
	for key, want := range map[string]float64{"spring": 10, "summer": 40, "fall": 30, "winter": 20} {
		got, ok := r.Seasonal.ShareOf(key)
		require.True(t, ok, key)
		assert.InDelta(t, want, got, 1e-9, key)
	}
	_, ok := r.Seasonal.ShareOf("monsoon")
	assert.False(t, ok)
}

func TestBuild_SeasonalZeroTotalOmitsShares(t *testing.T) {
	records := []models.Observation{
		obs("spring", "Clear", models.NoHour, 0, 0),
		obs("summer", "Clear", models.NoHour, 0, 0),
	}

	r := Build(records, DefaultSelection(records))

	require.Equal(t, StatusOK, r.Seasonal.Status)
	assert.False(t, r.Seasonal.HasShares())
	assert.True(t, r.Seasonal.Extremum.Valid)
	assert.Equal(t, "spring", r.Seasonal.Extremum.Max.Key)
}

func TestBuild_EmptyWeatherSelectionYieldsNoData(t *testing.T) {
	records := randomRecords(300, 1)
	opts := OptionsFrom(records)
	sel := NewSelection(opts.Seasons, nil)

	r := Build(records, sel)

	assert.False(t, r.HasData())
	assert.Equal(t, StatusNoData, r.Weather.Status)
	assert.Equal(t, StatusNoData, r.Hourly.Status)
	assert.Equal(t, StatusNoData, r.Seasonal.Status)
	assert.Equal(t, StatusNoData, r.BySeason.Status)
	assert.Equal(t, StatusNoData, r.ByWeather.Status)
	assert.Equal(t, StatusNoData, r.Spread.Status)

	assert.Equal(t, 0, r.Weather.Means.Len())
	assert.False(t, r.Hourly.Extremum.Valid)
	assert.False(t, r.Seasonal.HasShares())
	assert.ErrorIs(t, r.Hourly.Status.Err(), ErrEmptySelection)
}

func TestBuild_EmptyInput(t *testing.T) {
	r := Build(nil, NewSelection([]string{"Spring"}, []string{"Clear"}))

	assert.Equal(t, 0, r.RecordCount)
	assert.Equal(t, StatusNoData, r.Weather.Status)
	assert.Equal(t, StatusNoData, r.BySeason.Status)
	assert.Equal(t, models.DimensionSeason, r.BySeason.Dimension)
	assert.Equal(t, models.DimensionWeather, r.ByWeather.Dimension)
}

func TestBuild_HourlyTieResolvesToEarlierHour(t *testing.T) {
	records := []models.Observation{
		obs("Fall", "Clear", 8, 0, 250),
		obs("Fall", "Clear", 20, 0, 250),
		obs("Fall", "Clear", 14, 0, 90),
	}

	r := Build(records, DefaultSelection(records))

	assert.Equal(t, 8, r.Hourly.Extremum.Max.Key)
	require.Len(t, r.BySeason.Profiles, 1)
	assert.Equal(t, 8, r.BySeason.Profiles[0].Extremum.Max.Key)
}

func TestBuild_DailyOnlySubsetHasNoHourlyExtremum(t *testing.T) {
	records := []models.Observation{
		obs("Winter", "Mist", models.NoHour, 800, 0),
		obs("Winter", "Mist", models.NoHour, 900, 0),
	}

	r := Build(records, DefaultSelection(records))

	assert.Equal(t, StatusOK, r.Hourly.Status)
	assert.Equal(t, 0, r.Hourly.Means.Len())
	assert.False(t, r.Hourly.Extremum.Valid)
	assert.Empty(t, r.BySeason.Profiles)
	assert.Equal(t, StatusOK, r.Weather.Status)
}

func TestBuild_PerGroupExtremaAreIndependent(t *testing.T) {
	records := []models.Observation{
		obs("Summer", "Clear", 8, 0, 500),
		obs("Summer", "Clear", 17, 0, 450),
		obs("Winter", "Mist", 8, 0, 40),
		obs("Winter", "Mist", 17, 0, 120),
		obs("Winter", "Mist", 3, 0, 2),
	}

	r := Build(records, DefaultSelection(records))

	require.Len(t, r.BySeason.Profiles, 2)
	summer, winter := r.BySeason.Profiles[0], r.BySeason.Profiles[1]

	assert.Equal(t, "Summer", summer.Group)
	assert.Equal(t, 8, summer.Extremum.Max.Key)
	assert.Equal(t, 17, summer.Extremum.Min.Key)

	assert.Equal(t, "Winter", winter.Group)
	assert.Equal(t, []int{3, 8, 17}, winter.Hours.Keys())
	assert.Equal(t, 17, winter.Extremum.Max.Key)
	assert.Equal(t, 3, winter.Extremum.Min.Key)

	require.Len(t, r.ByWeather.Profiles, 2)
	assert.Equal(t, "Clear", r.ByWeather.Profiles[0].Group)
	assert.Equal(t, "Mist", r.ByWeather.Profiles[1].Group)
	assert.Equal(t, 5, r.ByWeather.Pairs.Len())
}

func TestBuild_FilterRestrictsEveryView(t *testing.T) {
	records := []models.Observation{
		obs("Summer", "Clear", 8, 4000, 500),
		obs("Summer", "Mist", 8, 3000, 300),
		obs("Winter", "Clear", 8, 1000, 100),
	}

	r := Build(records, NewSelection([]string{"Summer"}, []string{"Clear", "Mist"}))

	assert.Equal(t, 2, r.RecordCount)
	assert.Equal(t, []string{"Summer"}, r.Seasonal.Totals.Keys())
	assert.Equal(t, 7000.0, r.Seasonal.Totals.Total())
	assert.Equal(t, []string{"Clear", "Mist"}, r.Weather.Means.Keys())
	require.Len(t, r.Spread.Summaries, 2)
	assert.Equal(t, 4000.0, r.Spread.Summaries[0].Median)
}

func TestBuild_IsRepeatable(t *testing.T) {
	records := randomRecords(2000, 42)
	sel := NewSelection([]string{"Fall", "Spring"}, testWeather)

	first := Build(records, sel)
	second := Build(records, sel)

	assert.Equal(t, first, second)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "no data", StatusNoData.String())
	assert.Equal(t, "unknown", Status(5).String())
	assert.NoError(t, StatusOK.Err())
}

func TestBuild_HourlyTiesResolveToEarlierHour(t *testing.T) {
	records := []models.Observation{
		obs("Summer", "Clear", 20, 0, 100),
		obs("Summer", "Clear", 8, 0, 100),
		obs("Summer", "Clear", 3, 0, 5),
		obs("Summer", "Clear", 22, 0, 5),
	}

	r := Build(records, DefaultSelection(records))

	require.True(t, r.Hourly.Extremum.Valid)
	assert.Equal(t, []int{3, 8, 20, 22}, r.Hourly.Means.Keys(), "hours are ascending, not first-seen")
	assert.Equal(t, 8, r.Hourly.Extremum.Max.Key, "hour 20 is seen first but hour 8 sorts first")
	assert.Equal(t, 3, r.Hourly.Extremum.Min.Key)

	require.Len(t, r.BySeason.Profiles, 1)
	profile := r.BySeason.Profiles[0]
	assert.Equal(t, []int{3, 8, 20, 22}, profile.Hours.Keys())
	assert.Equal(t, 8, profile.Extremum.Max.Key)
	assert.Equal(t, 3, profile.Extremum.Min.Key)
}
