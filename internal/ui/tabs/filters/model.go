// Package filters provides the filters tab where the season and weather selection is edited.
package filters

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/analytics"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/app"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/components"
)

// Checklist sections, in display order.
const (
	sectionSeasons = iota
	sectionWeather
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	All     key.Binding
	None    key.Binding
	Section key.Binding
	Reset   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle label"),
		),
		All: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all in group"),
		),
		None: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "select none in group"),
		),
		Section: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "next group"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset filters"),
		),
	}
}

// Model represents the filters tab state.
type Model struct {
	state     *app.State
	keys      keyMap
	checklist components.Checklist
	width     int
	height    int
}

// New creates a new filters model.
func New(state *app.State) *Model {
	return &Model{
		state:     state,
		keys:      defaultKeyMap(),
		checklist: components.NewChecklist(),
	}
}

// Init initializes the filters tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the filters tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.sync()

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.checklist.MoveUp()
	case key.Matches(keyMsg, m.keys.Down):
		m.checklist.MoveDown()
	case key.Matches(keyMsg, m.keys.Section):
		m.checklist.NextSection()
	case key.Matches(keyMsg, m.keys.Toggle):
		return m, m.toggle()
	case key.Matches(keyMsg, m.keys.All):
		return m, m.setGroup(true)
	case key.Matches(keyMsg, m.keys.None):
		return m, m.setGroup(false)
	case key.Matches(keyMsg, m.keys.Reset):
		return m, func() tea.Msg { return app.ResetSelectionMsg{} }
	}

	return m, nil
}

// sync rebuilds the checklist from the dataset labels and the current selection.
func (m *Model) sync() {
	opts := m.state.GetOptions()
	sel := m.state.GetSelection()
	counts := m.state.GetLabelCounts()

	m.checklist.SetSections([]components.ChecklistSection{
		{Title: models.DimensionSeason.String(), Items: items(opts.Seasons, sel.Seasons, counts.Seasons)},
		{Title: models.DimensionWeather.String(), Items: items(opts.Weather, sel.Weather, counts.Weather)},
	})
}

func items(labels []string, selected analytics.LabelSet, counts []models.LabelCount) []components.ChecklistItem {
	byLabel := lo.SliceToMap(counts, func(c models.LabelCount) (string, int) { return c.Label, c.Count })

	out := make([]components.ChecklistItem, len(labels))
	for i, l := range labels {
		out[i] = components.ChecklistItem{Label: l, Checked: selected.Contains(l)}
		if n, ok := byLabel[l]; ok {
			out[i].Note = "(" + formatRows(n) + ")"
		}
	}
	return out
}

func changed(sel analytics.Selection) tea.Cmd {
	return func() tea.Msg {
		return app.SelectionChangedMsg{Selection: sel}
	}
}

// toggle flips the label under the cursor.
func (m *Model) toggle() tea.Cmd {
	section, _, ok := m.checklist.Current()
	item, _ := m.checklist.CurrentItem()
	if !ok {
		return nil
	}

	sel := m.state.GetSelection()
	switch section {
	case sectionSeasons:
		sel.Seasons = sel.Seasons.Toggle(item.Label)
	case sectionWeather:
		sel.Weather = sel.Weather.Toggle(item.Label)
	}
	return changed(sel)
}

// setGroup selects every label, or none, of the group under the cursor.
func (m *Model) setGroup(all bool) tea.Cmd {
	section, _, ok := m.checklist.Current()
	if !ok {
		return nil
	}

	opts := m.state.GetOptions()
	sel := m.state.GetSelection()
	switch section {
	case sectionSeasons:
		sel.Seasons = analytics.NewLabelSet()
		if all {
			sel.Seasons = analytics.NewLabelSet(opts.Seasons...)
		}
	case sectionWeather:
		sel.Weather = analytics.NewLabelSet()
		if all {
			sel.Weather = analytics.NewLabelSet(opts.Weather...)
		}
	}
	return changed(sel)
}

// SetSize sets the available size for the filters tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Toggle, m.keys.All, m.keys.None, m.keys.Section, m.keys.Reset}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down, m.keys.Section},
		{m.keys.Toggle, m.keys.All, m.keys.None, m.keys.Reset},
	}
}
