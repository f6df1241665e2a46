package filters

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/format"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

func formatRows(n int) string {
	return format.Count(float64(n)) + " rows"
}

// View renders the filters tab.
func (m *Model) View() string {
	m.sync()

	cardWidth := min(max(m.width-8, 40), 80)

	title := styles.TitleStyle.Render("Filters")
	subtitle := styles.HelpStyle.Render("Every change rebuilds all views from the full dataset")

	list := styles.CardStyle.Width(cardWidth).Render(m.checklist.View(cardWidth - 6))

	sections := []string{
		lipgloss.JoinVertical(lipgloss.Left, title, subtitle, ""),
		list,
		m.renderStatus(),
		"",
		m.renderHelp(),
	}

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderStatus() string {
	report := m.state.GetReport()
	if report == nil {
		return styles.HelpStyle.Render("Building report...")
	}
	if !report.HasData() {
		return styles.EmptyStyle.Render(format.NoData)
	}
	return styles.SuccessTextStyle.Render(fmt.Sprintf("%s of %s records match",
		format.Count(float64(report.RecordCount)), format.Count(float64(m.state.GetStats().Records))))
}

func (m *Model) renderHelp() string {
	var parts []string
	for _, b := range m.ShortHelp() {
		parts = append(parts, styles.HelpKeyStyle.Render(b.Help().Key)+" "+styles.HelpDescStyle.Render(b.Help().Desc))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, joinWith(parts, styles.HelpStyle.Render(" • "))...)
}

func joinWith(parts []string, sep string) []string {
	out := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return out
}
