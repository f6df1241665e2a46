package overview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/analytics"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/format"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

// View renders the overview tab.
func (m *Model) View() string {
	report := m.state.GetReport()
	if m.state.IsInitialLoading() || report == nil {
		m.spinner.SetLabel(m.state.LoadingLabel())
		return components.RenderSpinnerCentered(m.spinner, m.width, m.height)
	}

	sections := []string{
		m.renderTitle(*report),
		m.renderWeatherCard(report.Weather),
		m.renderSeasonalCard(report.Seasonal),
		m.renderSpreadCard(report.Spread),
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) cardWidth() int {
	return min(max(m.width-8, 50), 100)
}

// renderTitle renders the title and the active filter.
func (m *Model) renderTitle(report analytics.Report) string {
	title := styles.TitleStyle.Render("Bike Sharing Overview")

	stats := m.state.GetStats()
	subtitle := styles.HelpStyle.Render(fmt.Sprintf("%s of %s records match the filter",
		format.Count(float64(report.RecordCount)), format.Count(float64(stats.Records))))

	filter := styles.HelpStyle.Render(fmt.Sprintf("Seasons: %s  ·  Weather: %s",
		format.Labels(report.Selection.Seasons.Labels()),
		format.Labels(report.Selection.Weather.Labels())))

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, filter, "")
}

func (m *Model) card(title string, rows ...string) string {
	all := append([]string{styles.CardTitleStyle.Render(title)}, rows...)
	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, all...))
}

func noData() string {
	return styles.EmptyStyle.Render(format.NoData)
}

// renderWeatherCard renders mean daily rentals per weather condition.
func (m *Model) renderWeatherCard(view analytics.WeatherImpact) string {
	const title = "Weather Impact · mean daily rentals"
	if view.Status == analytics.StatusNoData {
		return m.card(title, noData())
	}

	entries := view.Means.Entries()
	bars := make([]components.Bar, len(entries))
	for i, e := range entries {
		bars[i] = components.Bar{
			Label:   e.Key,
			Value:   e.Value,
			Display: format.Mean(e.Value),
			Color:   styles.LabelColor(e.Key, i),
		}
	}

	return m.card(title, components.RenderBarChart(bars, m.cardWidth()-6))
}

// renderSeasonalCard renders season totals, the busiest and quietest season and shares.
func (m *Model) renderSeasonalCard(view analytics.SeasonalTrend) string {
	const title = "Seasonal Trend · total daily rentals"
	if view.Status == analytics.StatusNoData {
		return m.card(title, noData())
	}

	entries := view.Totals.Entries()
	bars := make([]components.Bar, len(entries))
	for i, e := range entries {
		bars[i] = components.Bar{
			Label:   e.Key,
			Value:   e.Value,
			Display: format.Count(e.Value),
			Color:   styles.LabelColor(e.Key, i),
		}
	}

	rows := []string{
		components.RenderBarChart(bars, m.cardWidth()-6),
		"",
		renderExtremum(view.Extremum),
		"",
	}

	if view.HasShares() {
		labels := make([]string, len(view.Shares))
		percents := make([]float64, len(view.Shares))
		for i, s := range view.Shares {
			labels[i] = s.Key
			percents[i] = s.Percent
		}
		rows = append(rows, components.RenderShares(labels, percents, m.cardWidth()-6))
	} else {
		rows = append(rows, styles.HelpStyle.Render("Shares unavailable: total rentals are zero"))
	}

	return m.card(title, rows...)
}

func renderExtremum(ext analytics.Extremum[string]) string {
	high, low := format.NotAvailable, format.NotAvailable
	if ext.Valid {
		high = fmt.Sprintf("%s (%s)", ext.Max.Key, format.Count(ext.Max.Value))
		low = fmt.Sprintf("%s (%s)", ext.Min.Key, format.Count(ext.Min.Value))
	}
	return styles.LabelStyle.Render("Highest: ") + styles.PeakStyle.Render(high) +
		"   " + styles.LabelStyle.Render("Lowest: ") + styles.LowStyle.Render(low)
}

// renderSpreadCard renders the daily rental distribution per weather condition.
func (m *Model) renderSpreadCard(view analytics.WeatherSpread) string {
	const title = "Weather Spread · daily rentals"
	if view.Status == analytics.StatusNoData {
		return m.card(title, noData())
	}

	labelWidth := len("Weather")
	for _, s := range view.Summaries {
		labelWidth = max(labelWidth, lipgloss.Width(s.Group))
	}

	header := fmt.Sprintf("%-*s %8s %8s %8s %8s %8s %6s", labelWidth,
		"Weather", "Min", "Q1", "Median", "Q3", "Max", "Rows")
	lines := []string{styles.TableHeaderStyle.Render(header)}

	for i, s := range view.Summaries {
		label := styles.LabelTextStyle(s.Group, i).Render(fmt.Sprintf("%-*s", labelWidth, s.Group))
		values := fmt.Sprintf(" %8s %8s %8s %8s %8s %6d",
			format.Count(s.Min), format.Count(s.Q1), format.Count(s.Median),
			format.Count(s.Q3), format.Count(s.Max), s.Count)
		lines = append(lines, label+styles.TableCellStyle.Render(values))
	}

	return m.card(title, strings.Join(lines, "\n"))
}
