package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/styles"
)

var spinnerLabelStyle = lipgloss.NewStyle().Foreground(styles.TextSecondary)

// LoadingSpinner is a dot spinner followed by a status label.
type LoadingSpinner struct {
	spinner spinner.Model
	label   string
}

// NewSpinner creates a spinner showing label.
func NewSpinner(label string) LoadingSpinner {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
	)
	return LoadingSpinner{spinner: s, label: label}
}

// Init starts ticking.
func (l LoadingSpinner) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the animation on spinner ticks.
func (l LoadingSpinner) Update(msg tea.Msg) (LoadingSpinner, tea.Cmd) {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

// SetLabel changes the status text, e.g. when a reload replaces a report build.
func (l *LoadingSpinner) SetLabel(label string) {
	l.label = label
}

// View renders the animation frame and the label.
func (l LoadingSpinner) View() string {
	return l.spinner.View() + " " + spinnerLabelStyle.Render(l.label)
}

// RenderSpinnerCentered places the spinner in the middle of a width×height box.
func RenderSpinnerCentered(s LoadingSpinner, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s.View())
}
