// Package models defines data structures and domain types.
package models

import "time"

// NoHour marks a daily-only observation that carries no hour of day.
const NoHour = -1

// Season labels produced by the dataset loader for numeric season codes.
const (
	SeasonSpring = "Spring"
	SeasonSummer = "Summer"
	SeasonFall   = "Fall"
	SeasonWinter = "Winter"
)

// Weather labels produced by the dataset loader for numeric weather codes.
const (
	WeatherClear     = "Clear"
	WeatherMist      = "Mist"
	WeatherLightRain = "Light Rain"
	WeatherHeavyRain = "Heavy Rain"
)

// Observation is one row of the rental dataset.
// Slices of observations are ordered chronologically and treated as read-only.
type Observation struct {
	Date        time.Time
	Season      string
	Weather     string
	Hour        int
	DailyCount  int
	HourlyCount int
}

// HasHour reports whether the observation belongs to an hour of day.
func (o Observation) HasHour() bool {
	return o.Hour >= 0 && o.Hour <= 23
}

// Dimension names a categorical column of the dataset.
type Dimension int

const (
	// DimensionSeason groups by season label.
	DimensionSeason Dimension = iota
	// DimensionWeather groups by weather label.
	DimensionWeather
)

// String returns the display name for a dimension.
func (d Dimension) String() string {
	switch d {
	case DimensionSeason:
		return "Season"
	case DimensionWeather:
		return "Weather"
	default:
		return "Unknown"
	}
}

// Label returns the observation's label on the given dimension.
func (o Observation) Label(d Dimension) string {
	if d == DimensionWeather {
		return o.Weather
	}
	return o.Season
}
