package hourly

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/analytics"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/app"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

func observation(season, weather string, hour, hourly int) models.Observation {
	return models.Observation{Season: season, Weather: weather, Hour: hour, DailyCount: 100, HourlyCount: hourly}
}

func stateWithReport(records []models.Observation, sel analytics.Selection) *app.State {
	state := app.NewState()
	state.SetDataset(models.DatasetStats{Records: len(records)}, analytics.OptionsFrom(records))
	state.SetReport(state.NextReportSeq(), analytics.Build(records, sel))
	return state
}

func testRecords() []models.Observation {
	return []models.Observation{
		observation("Spring", "Clear", 8, 10),
		observation("Spring", "Clear", 17, 40),
		observation("Summer", "Mist", 8, 60),
		observation("Summer", "Mist", 17, 20),
	}
}

func newModel(state *app.State) *Model {
	m := New(state)
	m.SetSize(140, 120)
	return m
}

func TestNew(t *testing.T) {
	m := New(app.NewState())
	if m.Dimension() != models.DimensionSeason {
		t.Error("breakdown should start with seasons")
	}
	if m.Init() == nil {
		t.Error("Init should start the spinner")
	}
}

func TestModel_ViewLoading(t *testing.T) {
	state := app.NewState()
	m := newModel(state)
	if !strings.Contains(m.View(), "Loading dataset...") {
		t.Error("View should show the dataset spinner before the first dataset")
	}

	state.SetDataset(models.DatasetStats{}, analytics.Options{})
	if !strings.Contains(m.View(), "Building report...") {
		t.Error("View should show the report spinner before the first report")
	}

	state.SetLoading(app.ResourceReload, true)
	if !strings.Contains(m.View(), "Reloading dataset...") {
		t.Error("View should show the reload spinner while reloading")
	}
}

func TestModel_ViewTrend(t *testing.T) {
	records := testRecords()
	m := newModel(stateWithReport(records, analytics.DefaultSelection(records)))

	view := ansi.Strip(m.View())
	for _, want := range []string{
		"Hourly Trend",
		"Peak hour: 08:00 (35 rentals)",
		"Lowest hour: 17:00 (30 rentals)",
		"Hourly by Season",
		"Spring",
		"peak 17:00 (40)  low 08:00 (10)",
		"peak 08:00 (60)  low 17:00 (20)",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_SwitchDimension(t *testing.T) {
	records := testRecords()
	m := newModel(stateWithReport(records, analytics.DefaultSelection(records)))

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if m.Dimension() != models.DimensionWeather {
		t.Fatal("d should switch to the weather breakdown")
	}
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "Hourly by Weather") || !strings.Contains(view, "Mist") {
		t.Error("view should show the weather breakdown")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if m.Dimension() != models.DimensionSeason {
		t.Error("d should switch back to seasons")
	}
}

func TestModel_ViewNoData(t *testing.T) {
	records := testRecords()
	m := newModel(stateWithReport(records, analytics.NewSelection(nil, []string{"Clear"})))

	view := ansi.Strip(m.View())
	if got := strings.Count(view, "No data available for the selected filter."); got != 2 {
		t.Errorf("no-data message shown %d times, want 2", got)
	}
}

func TestModel_ViewDailyOnlySelection(t *testing.T) {
	records := []models.Observation{{Season: "Fall", Weather: "Clear", Hour: models.NoHour, DailyCount: 50}}
	m := newModel(stateWithReport(records, analytics.DefaultSelection(records)))

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "No hourly observations") {
		t.Error("daily-only selection should explain the missing hours")
	}
	if !strings.Contains(view, "Peak hour: N/A") {
		t.Error("absent extremum should render N/A")
	}
}

func TestModel_Update(t *testing.T) {
	m := newModel(app.NewState())
	for _, k := range []string{"j", "k", "g"} {
		if updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}); updated == nil {
			t.Fatalf("Update(%q) returned nil", k)
		}
	}
	m.Update(nil)
}

func TestModel_Help(t *testing.T) {
	m := New(app.NewState())
	if len(m.ShortHelp()) != 3 {
		t.Errorf("ShortHelp = %d bindings, want 3", len(m.ShortHelp()))
	}
	if len(m.FullHelp()) != 2 {
		t.Errorf("FullHelp = %d groups, want 2", len(m.FullHelp()))
	}
}
