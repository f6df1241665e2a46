// Package report renders an analytics report as text for non-interactive use.
package report

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/analytics"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/format"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	headingStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	numberStyle  = cellStyle.Align(lipgloss.Right)
)

// Write renders r to w. total is the size of the unfiltered dataset.
func Write(w io.Writer, r analytics.Report, total int) error {
	_, err := io.WriteString(w, Render(r, total))
	return err
}

// Render returns the text report for r.
func Render(r analytics.Report, total int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Bike Sharing Report"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Records: %s of %s\n", format.Count(float64(r.RecordCount)), format.Count(float64(total)))
	fmt.Fprintf(&b, "Seasons: %s\n", format.Labels(r.Selection.Seasons.Labels()))
	fmt.Fprintf(&b, "Weather: %s\n", format.Labels(r.Selection.Weather.Labels()))

	section(&b, "Weather Impact (mean daily rentals)", r.Weather.Status, func() string {
		return renderWeather(r.Weather)
	})
	section(&b, "Hourly Trend (mean hourly rentals)", r.Hourly.Status, func() string {
		return renderHourly(r.Hourly)
	})
	section(&b, "Seasonal Trend (total daily rentals)", r.Seasonal.Status, func() string {
		return renderSeasonal(r.Seasonal)
	})
	section(&b, "Hourly by Season (mean hourly rentals)", r.BySeason.Status, func() string {
		return renderBreakdown(r.BySeason)
	})
	section(&b, "Hourly by Weather (mean hourly rentals)", r.ByWeather.Status, func() string {
		return renderBreakdown(r.ByWeather)
	})
	section(&b, "Weather Spread (daily rentals)", r.Spread.Status, func() string {
		return renderSpread(r.Spread)
	})

	return b.String()
}

func section(b *strings.Builder, title string, status analytics.Status, body func() string) {
	b.WriteString(headingStyle.Render(title))
	b.WriteString("\n")
	if status == analytics.StatusNoData {
		b.WriteString(format.NoData)
	} else {
		b.WriteString(body())
	}
	b.WriteString("\n")
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			default:
				return numberStyle
			}
		})
}

func renderWeather(v analytics.WeatherImpact) string {
	t := newTable("Weather", "Mean", "Rows")
	for _, e := range v.Means.Entries() {
		t.Row(e.Key, format.Mean(e.Value), format.Count(float64(e.Count)))
	}
	return t.String()
}

func extremumLine[K comparable](ext analytics.Extremum[K], label func(K) string, high, low string) string {
	if !ext.Valid {
		return fmt.Sprintf("%s: %s   %s: %s", high, format.NotAvailable, low, format.NotAvailable)
	}
	return fmt.Sprintf("%s: %s (%s)   %s: %s (%s)",
		high, label(ext.Max.Key), format.Mean(ext.Max.Value),
		low, label(ext.Min.Key), format.Mean(ext.Min.Value))
}

func identity(s string) string { return s }

func renderHourly(v analytics.HourlyTrend) string {
	peak := extremumLine(v.Extremum, format.Hour, "Peak hour", "Lowest hour")
	if v.Means.Len() == 0 {
		return format.NoHourlyData + "\n" + peak
	}

	t := newTable("Hour", "Mean", "Rows")
	for _, e := range v.Means.Entries() {
		t.Row(format.Hour(e.Key), format.Mean(e.Value), format.Count(float64(e.Count)))
	}
	return t.String() + "\n" + peak
}

func renderSeasonal(v analytics.SeasonalTrend) string {
	t := newTable("Season", "Total", "Share")
	for _, e := range v.Totals.Entries() {
		share := format.NotAvailable
		if p, ok := v.ShareOf(e.Key); ok {
			share = format.Percent(p)
		}
		t.Row(e.Key, format.Count(e.Value), share)
	}

	out := t.String() + "\n" + extremumLine(v.Extremum, identity, "Highest", "Lowest")
	if !v.HasShares() {
		out += "\nShares unavailable: total rentals are zero"
	}
	return out
}

// renderBreakdown prints one column per group and one row per hour seen in any group.
func renderBreakdown(v analytics.HourlyBreakdown) string {
	if len(v.Profiles) == 0 {
		return format.NoHourlyData
	}

	hours := lo.Uniq(lo.FlatMap(v.Profiles, func(p analytics.HourlyProfile, _ int) []int {
		return p.Hours.Keys()
	}))
	slices.Sort(hours)

	headers := append([]string{"Hour"}, lo.Map(v.Profiles, func(p analytics.HourlyProfile, _ int) string {
		return p.Group
	})...)
	t := newTable(headers...)
	for _, h := range hours {
		row := []string{format.Hour(h)}
		for _, p := range v.Profiles {
			cell := ""
			if e, ok := p.Hours.Lookup(h); ok {
				cell = format.Mean(e.Value)
			}
			row = append(row, cell)
		}
		t.Row(row...)
	}

	lines := []string{t.String()}
	for _, p := range v.Profiles {
		lines = append(lines, p.Group+": "+extremumLine(p.Extremum, format.Hour, "peak", "low"))
	}
	return strings.Join(lines, "\n")
}

func renderSpread(v analytics.WeatherSpread) string {
	t := newTable("Weather", "Min", "Q1", "Median", "Q3", "Max", "Rows")
	for _, g := range v.Summaries {
		s := g.Summary
		t.Row(g.Group,
			format.Mean(s.Min), format.Mean(s.Q1), format.Mean(s.Median),
			format.Mean(s.Q3), format.Mean(s.Max), format.Count(float64(s.Count)))
	}
	return t.String()
}
