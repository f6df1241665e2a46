package components

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/format"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

const (
	shareLabelWidth   = 12
	sharePercentWidth = 8
)

// ShareBar renders a labeled percentage bar for one group of a share breakdown.
type ShareBar struct {
	progress progress.Model
}

// NewShareBar creates a share bar filled with color.
func NewShareBar(color lipgloss.Color) ShareBar {
	return ShareBar{
		progress: progress.New(
			progress.WithSolidFill(string(color)),
			progress.WithWidth(30),
			progress.WithoutPercentage(),
		),
	}
}

// View renders the bar for percent (0-100) with its label, fitting width.
func (s ShareBar) View(percent float64, label string, width int) string {
	s.progress.Width = max(width-shareLabelWidth-sharePercentWidth-2, 10)

	bar := s.progress.ViewAs(min(max(percent, 0), 100) / 100)

	labelStr := styles.LabelStyle.Width(shareLabelWidth).Render(label)
	percentStr := styles.ValueStyle.
		Width(sharePercentWidth).
		Align(lipgloss.Right).
		Render(format.Percent(percent))

	return lipgloss.JoinHorizontal(lipgloss.Center, labelStr, bar, " ", percentStr)
}

// RenderShares renders one bar per label, colored by label.
func RenderShares(labels []string, percents []float64, width int) string {
	rows := make([]string, 0, len(labels))
	for i, label := range labels {
		if i >= len(percents) {
			break
		}
		bar := NewShareBar(styles.LabelColor(label, i))
		rows = append(rows, bar.View(percents[i], label, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
