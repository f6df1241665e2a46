// Package hourly provides the hourly tab: the overall hourly trend and per-category hourly profiles.
package hourly

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/app"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/components"
)

type keyMap struct {
	Dimension key.Binding
	Up        key.Binding
	Down      key.Binding
	Top       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Dimension: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "season/weather breakdown"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
	}
}

// Model represents the hourly tab state.
type Model struct {
	state     *app.State
	spinner   components.LoadingSpinner
	keys      keyMap
	viewport  viewport.Model
	dimension models.Dimension
	width     int
	height    int
}

// New creates a new hourly model showing the season breakdown first.
func New(state *app.State) *Model {
	return &Model{
		state:     state,
		spinner:   components.NewSpinner("Building report..."),
		keys:      defaultKeyMap(),
		viewport:  viewport.New(0, 0),
		dimension: models.DimensionSeason,
	}
}

// Dimension returns the dimension of the breakdown being shown.
func (m *Model) Dimension() models.Dimension {
	return m.dimension
}

// Init initializes the hourly tab.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Init()
}

// Update handles messages for the hourly tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Dimension):
			if m.dimension == models.DimensionSeason {
				m.dimension = models.DimensionWeather
			} else {
				m.dimension = models.DimensionSeason
			}
		case key.Matches(msg, m.keys.Top):
			m.viewport.GotoTop()
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// SetSize sets the available size for the hourly tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-6, 0)
	m.viewport.Height = max(height-2, 0)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Dimension, m.keys.Up, m.keys.Down}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Dimension},
		{m.keys.Up, m.keys.Down, m.keys.Top},
	}
}
