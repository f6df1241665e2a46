package analytics

import "github.com/j-veylop/bikeshare-dashboard-tui/internal/models"

// Status tells whether a view was computed over data or hit an empty selection.
type Status int

const (
	// StatusOK means the filtered subset was non-empty.
	StatusOK Status = iota
	// StatusNoData means the filter matched no records.
	StatusNoData
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoData:
		return "no data"
	default:
		return "unknown"
	}
}

// Err returns ErrEmptySelection for StatusNoData and nil otherwise.
func (s Status) Err() error {
	if s == StatusNoData {
		return ErrEmptySelection
	}
	return nil
}

// WeatherImpact is the mean daily rentals per weather condition.
type WeatherImpact struct {
	Status Status
	Means  Aggregate[string]
}

// HourlyTrend is the mean hourly rentals per hour of day.
type HourlyTrend struct {
	Status   Status
	Means    Aggregate[int]
	Extremum Extremum[int]
}

// SeasonalTrend is the total daily rentals per season.
type SeasonalTrend struct {
	Status   Status
	Totals   Aggregate[string]
	Extremum Extremum[string]
	// Shares is nil when the grand total is zero.
	Shares []Share[string]
}

// HasShares reports whether percentages could be computed.
func (s SeasonalTrend) HasShares() bool {
	return s.Shares != nil
}

// ShareOf returns the percentage of key.
func (s SeasonalTrend) ShareOf(key string) (float64, bool) {
	for _, sh := range s.Shares {
		if sh.Key == key {
			return sh.Percent, true
		}
	}
	return 0, false
}

// HourlyProfile is one category's hourly means with its own peak and trough.
type HourlyProfile struct {
	Group    string
	Hours    Aggregate[int]
	Extremum Extremum[int]
}

// HourlyBreakdown is the mean hourly rentals per (category, hour) pair.
type HourlyBreakdown struct {
	Status    Status
	Dimension models.Dimension
	Pairs     Aggregate[PairKey]
	Profiles  []HourlyProfile
}

// WeatherSpread is the distribution of daily rentals per weather condition.
type WeatherSpread struct {
	Status    Status
	Summaries []GroupSummary
}

// Report bundles every view for one selection.
type Report struct {
	Selection   Selection
	RecordCount int

	Weather   WeatherImpact
	Hourly    HourlyTrend
	Seasonal  SeasonalTrend
	BySeason  HourlyBreakdown
	ByWeather HourlyBreakdown
	Spread    WeatherSpread
}

// HasData reports whether the selection matched any record.
func (r Report) HasData() bool {
	return r.RecordCount > 0
}

// Build filters records through sel and assembles every view over the result.
func Build(records []models.Observation, sel Selection) Report {
	filtered := sel.Apply(records)
	return Report{
		Selection:   sel,
		RecordCount: len(filtered),
		Weather:     BuildWeatherImpact(filtered),
		Hourly:      BuildHourlyTrend(filtered),
		Seasonal:    BuildSeasonalTrend(filtered),
		BySeason:    BuildHourlyBreakdown(filtered, models.DimensionSeason),
		ByWeather:   BuildHourlyBreakdown(filtered, models.DimensionWeather),
		Spread:      BuildWeatherSpread(filtered),
	}
}

// BuildWeatherImpact computes mean daily rentals per weather label over an already filtered subset.
func BuildWeatherImpact(filtered []models.Observation) WeatherImpact {
	if len(filtered) == 0 {
		return WeatherImpact{Status: StatusNoData}
	}
	return WeatherImpact{
		Status: StatusOK,
		Means:  GroupReduce(filtered, ByWeather, DailyCount, Mean),
	}
}

// BuildHourlyTrend computes mean hourly rentals per hour and the peak and lowest hour.
// Daily-only rows are skipped, so a non-empty subset may still yield an empty aggregate.
func BuildHourlyTrend(filtered []models.Observation) HourlyTrend {
	if len(filtered) == 0 {
		return HourlyTrend{Status: StatusNoData}
	}
	means := GroupReduce(filtered, ByHour, HourlyCount, Mean).SortedBy(ByHourAscending)
	return HourlyTrend{
		Status:   StatusOK,
		Means:    means,
		Extremum: extremumOf(means),
	}
}

// BuildSeasonalTrend computes total daily rentals per season with extremum and shares.
func BuildSeasonalTrend(filtered []models.Observation) SeasonalTrend {
	if len(filtered) == 0 {
		return SeasonalTrend{Status: StatusNoData}
	}
	totals := GroupReduce(filtered, BySeason, DailyCount, Sum)
	view := SeasonalTrend{
		Status:   StatusOK,
		Totals:   totals,
		Extremum: extremumOf(totals),
	}
	// A zero grand total leaves Shares nil.
	if shares, err := PercentageShare(totals); err == nil {
		view.Shares = shares
	}
	return view
}

// BuildHourlyBreakdown computes mean hourly rentals per (label, hour) on dimension d, then
// resolves the peak and lowest hour separately for every label.
func BuildHourlyBreakdown(filtered []models.Observation, d models.Dimension) HourlyBreakdown {
	if len(filtered) == 0 {
		return HourlyBreakdown{Status: StatusNoData, Dimension: d}
	}
	pairs := GroupedByHour(GroupReduce(filtered, ByLabelHour(d), HourlyCount, Mean))
	groups := Nest(pairs)

	profiles := make([]HourlyProfile, len(groups))
	for i, g := range groups {
		profiles[i] = HourlyProfile{
			Group:    g.Name,
			Hours:    g.Hours,
			Extremum: extremumOf(g.Hours),
		}
	}
	return HourlyBreakdown{
		Status:    StatusOK,
		Dimension: d,
		Pairs:     pairs,
		Profiles:  profiles,
	}
}

// BuildWeatherSpread summarizes the daily rental distribution per weather label.
func BuildWeatherSpread(filtered []models.Observation) WeatherSpread {
	if len(filtered) == 0 {
		return WeatherSpread{Status: StatusNoData}
	}
	return WeatherSpread{
		Status:    StatusOK,
		Summaries: SummarizeBy(filtered, ByWeather, DailyCount),
	}
}
