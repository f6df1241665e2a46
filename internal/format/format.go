// Package format renders report values the same way in the terminal UI and the text report.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	// NotAvailable stands in for an absent extremum.
	NotAvailable = "N/A"

	// NoData is shown instead of a view when the filter matched no records.
	NoData = "No data available for the selected filter."

	// NoHourlyData is shown when the matched records carry no hour of day.
	NoHourlyData = "No hourly observations in the selected data."

	// NoLabels is shown for an empty label list.
	NoLabels = "(none)"
)

// Count renders a rental total with thousands separators.
func Count(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

// Mean renders a mean rounded to whole rentals.
func Mean(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

// Percent renders a share with two decimals.
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// Hour renders an hour of day as a clock time.
func Hour(h int) string {
	return fmt.Sprintf("%02d:00", h)
}

// Labels joins labels for display.
func Labels(labels []string) string {
	if len(labels) == 0 {
		return NoLabels
	}
	return strings.Join(labels, ", ")
}

// Bytes renders a file size.
func Bytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// Ago renders a timestamp relative to now, or "never" for the zero time.
func Ago(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}
