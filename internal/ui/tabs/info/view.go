package info

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/format"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	sections := []string{
		m.renderTitle(),
		m.renderConfigCard(),
		m.renderDatasetCard(),
		m.renderLabelsCard(),
		m.renderImportsCard(),
		m.renderAboutCard(),
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) cardWidth() int {
	return min(max(m.width-8, 50), 80)
}

func (m *Model) card(rows ...string) string {
	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderTitle renders the info tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration, dataset and build information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

// renderRow renders a key-value row.
func renderRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDisabled(path string) string {
	if path == "" {
		return "disabled"
	}
	return path
}

func (m *Model) renderConfigCard() string {
	rows := []string{styles.CardTitleStyle.Render("Configuration"), ""}

	if m.config == nil {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
		return m.card(rows...)
	}

	rows = append(rows,
		renderRow("Dataset", m.config.DatasetPath),
		renderRow("Database", orDisabled(m.config.DatabasePath)),
		renderRow("Log File", orDisabled(m.config.LogPath)),
		renderRow("Log Level", m.config.LogLevel),
		renderRow("Watch Dataset", yesNo(m.config.WatchDataset)),
		renderRow("Notify On Reload", yesNo(m.config.NotifyOnReload)),
		renderRow("Reload Debounce", m.config.ReloadDebounce.String()),
	)
	return m.card(rows...)
}

func (m *Model) renderDatasetCard() string {
	rows := []string{styles.CardTitleStyle.Render("Dataset"), ""}

	stats := m.state.GetStats()
	if stats.LoadedAt.IsZero() {
		rows = append(rows, styles.HelpStyle.Render("No dataset loaded yet"))
		return m.card(rows...)
	}

	source := "csv"
	if stats.FromCache {
		source = "record store"
	}

	rows = append(rows,
		renderRow("Source", stats.Source),
		renderRow("Loaded From", source),
		renderRow("Records", format.Count(float64(stats.Records))),
		renderRow("Hourly Rows", format.Count(float64(stats.Hourly))),
		renderRow("Daily-only Rows", format.Count(float64(stats.DailyOnly()))),
		renderRow("Rejected Rows", format.Count(float64(stats.Rejected))),
		renderRow("Loaded", format.Ago(stats.LoadedAt)),
		renderRow("Imported", format.Ago(stats.ImportedAt)),
	)
	if stats.Rejected > 0 {
		rows = append(rows, "", styles.WarningTextStyle.Render("Some rows were rejected; see the log for details"))
	}
	return m.card(rows...)
}

func renderCounts(title string, counts []models.LabelCount) []string {
	rows := []string{styles.LabelStyle.Render(title)}
	if len(counts) == 0 {
		return append(rows, styles.HelpStyle.Render("  "+format.NoLabels))
	}
	total := lo.SumBy(counts, func(c models.LabelCount) int { return c.Count })
	for i, c := range counts {
		share := format.NotAvailable
		if total > 0 {
			share = format.Percent(float64(c.Count) / float64(total) * 100)
		}
		label := styles.LabelTextStyle(c.Label, i).Width(12).Render(c.Label)
		rows = append(rows, fmt.Sprintf("  %s %10s  %s", label, format.Count(float64(c.Count)), styles.HelpStyle.Render(share)))
	}
	return rows
}

func (m *Model) renderLabelsCard() string {
	counts := m.state.GetLabelCounts()

	rows := []string{styles.CardTitleStyle.Render("Label Frequencies"), ""}
	rows = append(rows, renderCounts(models.DimensionSeason.String(), counts.Seasons)...)
	rows = append(rows, "")
	rows = append(rows, renderCounts(models.DimensionWeather.String(), counts.Weather)...)
	return m.card(rows...)
}

func (m *Model) renderImportsCard() string {
	rows := []string{styles.CardTitleStyle.Render("Import History"), ""}

	imports := m.state.GetImports()
	if len(imports) == 0 {
		msg := "No imports recorded"
		if m.config != nil && m.config.DatabasePath == "" {
			msg = "Record store disabled"
		}
		rows = append(rows, styles.HelpStyle.Render(msg))
		return m.card(rows...)
	}

	rows = append(rows, styles.TableHeaderStyle.Render(
		fmt.Sprintf("%-4s %10s %8s %9s  %s", "#", "Rows", "Rejected", "Size", "Imported")))
	for _, imp := range imports {
		rows = append(rows, styles.TableCellStyle.Render(fmt.Sprintf("%-4s %10s %8s %9s  %s",
			strconv.FormatInt(imp.ID, 10),
			format.Count(float64(imp.RowCount)),
			format.Count(float64(imp.Rejected)),
			format.Bytes(imp.Size),
			format.Ago(imp.ImportedAt),
		)))
	}
	return m.card(rows...)
}

// renderAboutCard renders the about/version information card.
func (m *Model) renderAboutCard() string {
	return m.card(
		styles.CardTitleStyle.Render("About "+version.Name),
		"",
		renderRow("Version", version.GetVersion()),
		renderRow("Build Date", version.GetDate()),
		renderRow("Git Commit", version.GetCommit()),
		renderRow("Go Version", runtime.Version()),
		renderRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
	)
}
