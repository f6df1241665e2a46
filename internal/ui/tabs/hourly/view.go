package hourly

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/analytics"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/format"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

const chartHeight = 10

// View renders the hourly tab.
func (m *Model) View() string {
	report := m.state.GetReport()
	if m.state.IsInitialLoading() || report == nil {
		m.spinner.SetLabel(m.state.LoadingLabel())
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	breakdown := report.BySeason
	if m.dimension == models.DimensionWeather {
		breakdown = report.ByWeather
	}

	sections := []string{
		m.renderTitle(),
		m.renderTrendCard(report.Hourly),
		m.renderBreakdownCard(breakdown),
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) cardWidth() int {
	return min(max(m.width-8, 50), 110)
}

func (m *Model) chartWidth() int {
	return max(m.cardWidth()-16, 24)
}

func (m *Model) card(title string, rows ...string) string {
	all := append([]string{styles.CardTitleStyle.Render(title)}, rows...)
	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, all...))
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Hourly Patterns")
	subtitle := styles.HelpStyle.Render("Mean rentals per hour of day for the selected records")
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// renderTrendCard renders the overall hourly line chart with its peak and lowest hour.
func (m *Model) renderTrendCard(view analytics.HourlyTrend) string {
	const title = "Hourly Trend · mean hourly rentals"
	if view.Status == analytics.StatusNoData {
		return m.card(title, styles.EmptyStyle.Render(format.NoData))
	}
	if view.Means.Len() == 0 {
		return m.card(title, styles.HelpStyle.Render(format.NoHourlyData), peakLine(view.Extremum))
	}

	series := components.HourlySeries(view.Means.Keys(), view.Means.Values())
	return m.card(title,
		components.RenderLineChart(series, m.chartWidth(), chartHeight, "hour of day (00-23)"),
		"",
		components.RenderHourlyHeatmap(series),
		"",
		peakLine(view.Extremum),
	)
}

func peakLine(ext analytics.Extremum[int]) string {
	peak, low := format.NotAvailable, format.NotAvailable
	if ext.Valid {
		peak = fmt.Sprintf("%s (%s rentals)", format.Hour(ext.Max.Key), format.Mean(ext.Max.Value))
		low = fmt.Sprintf("%s (%s rentals)", format.Hour(ext.Min.Key), format.Mean(ext.Min.Value))
	}
	return styles.LabelStyle.Render("Peak hour: ") + styles.PeakStyle.Render(peak) +
		"   " + styles.LabelStyle.Render("Lowest hour: ") + styles.LowStyle.Render(low)
}

// renderBreakdownCard renders one hourly profile per category on a shared chart,
// followed by each category's own peak and lowest hour.
func (m *Model) renderBreakdownCard(view analytics.HourlyBreakdown) string {
	title := fmt.Sprintf("Hourly by %s · press d to switch", view.Dimension)
	if view.Status == analytics.StatusNoData {
		return m.card(title, styles.EmptyStyle.Render(format.NoData))
	}
	if len(view.Profiles) == 0 {
		return m.card(title, styles.HelpStyle.Render(format.NoHourlyData))
	}

	series := make([]components.Series, len(view.Profiles))
	for i, p := range view.Profiles {
		series[i] = components.Series{
			Label:  p.Group,
			Color:  styles.LabelColor(p.Group, i),
			Values: components.HourlySeries(p.Hours.Keys(), p.Hours.Values()),
		}
	}

	labelWidth := 0
	for _, p := range view.Profiles {
		labelWidth = max(labelWidth, lipgloss.Width(p.Group))
	}

	lines := make([]string, len(view.Profiles))
	for i, p := range view.Profiles {
		label := styles.LabelTextStyle(p.Group, i).Render(fmt.Sprintf("%-*s", labelWidth, p.Group))
		spark := components.RenderSparkline(series[i].Values, components.HoursPerDay)
		lines[i] = fmt.Sprintf("%s  %s  %s", label, spark, profileLine(p.Extremum))
	}

	return m.card(title,
		components.RenderMultiLineChart(series, m.chartWidth(), chartHeight, "hour of day (00-23)"),
		components.RenderLegend(components.LegendFor(series)),
		"",
		strings.Join(lines, "\n"),
	)
}

func profileLine(ext analytics.Extremum[int]) string {
	if !ext.Valid {
		return styles.HelpStyle.Render(format.NotAvailable)
	}
	return styles.LabelStyle.Render("peak ") +
		styles.PeakStyle.Render(fmt.Sprintf("%s (%s)", format.Hour(ext.Max.Key), format.Mean(ext.Max.Value))) +
		styles.LabelStyle.Render("  low ") +
		styles.LowStyle.Render(fmt.Sprintf("%s (%s)", format.Hour(ext.Min.Key), format.Mean(ext.Min.Value)))
}
