package components

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestNewSpinner(t *testing.T) {
	s := NewSpinner("Loading")
	if s.label != "Loading" {
		t.Error("Spinner label mismatch")
	}
}

func TestSpinner_Methods(t *testing.T) {
	s := NewSpinner("Building report...")

	if !strings.Contains(s.View(), "Building report...") {
		t.Error("View should contain the label")
	}

	s.SetLabel("Reloading dataset...")
	view := s.View()
	if !strings.Contains(view, "Reloading dataset...") {
		t.Error("View should show the new label")
	}
	if strings.Contains(view, "Building report...") {
		t.Error("View should drop the old label")
	}

	if s.Init() == nil {
		t.Error("Init should return command")
	}
	_, cmd := s.Update(spinner.TickMsg{})
	if cmd == nil {
		t.Error("Update should return command for tick")
	}
}

func TestRenderSpinnerCentered(t *testing.T) {
	s := NewSpinner("Loading...")
	view := RenderSpinnerCentered(s, 30, 5)
	if !strings.Contains(view, "Loading...") {
		t.Error("RenderSpinnerCentered should contain the label")
	}
	if got := lipgloss.Height(view); got != 5 {
		t.Errorf("height = %d, want 5", got)
	}
}

func TestHourlySeries(t *testing.T) {
	got := HourlySeries([]int{0, 8, 23}, []float64{1, 2, 3})
	if len(got) != HoursPerDay {
		t.Fatalf("len = %d, want %d", len(got), HoursPerDay)
	}
	if got[0] != 1 || got[8] != 2 || got[23] != 3 {
		t.Errorf("values not placed at their hours: %v", got)
	}
	if !math.IsNaN(got[1]) {
		t.Error("missing hours should be NaN, not zero")
	}

	ignored := HourlySeries([]int{-1, 24}, []float64{1, 2})
	if hasValue(ignored) {
		t.Error("out-of-range hours should be ignored")
	}
}

func TestRenderLineChart(t *testing.T) {
	s := RenderLineChart([]float64{1, 2, 3, 4}, 20, 5, "Test")
	if !strings.Contains(s, "Test") {
		t.Error("RenderLineChart should include the caption")
	}

	gaps := HourlySeries([]int{7, 8, 17}, []float64{10, 30, 25})
	if s := RenderLineChart(gaps, 30, 5, "gaps"); s == "" {
		t.Error("RenderLineChart should render series with gaps")
	}
}

func TestRenderLineChart_Empty(t *testing.T) {
	if s := RenderLineChart(nil, 20, 5, ""); !strings.Contains(s, "No data available") {
		t.Error("empty data should render a placeholder")
	}
	allGaps := HourlySeries(nil, nil)
	if s := RenderLineChart(allGaps, 20, 5, ""); !strings.Contains(s, "No data available") {
		t.Error("all-gap data should render a placeholder")
	}
}

func TestRenderMultiLineChart(t *testing.T) {
	series := []Series{
		{Label: "Spring", Color: lipgloss.Color("114"), Values: []float64{1, 2, 3}},
		{Label: "Summer", Color: lipgloss.Color("214"), Values: []float64{3, 2}},
		{Label: "Empty", Color: lipgloss.Color("75"), Values: HourlySeries(nil, nil)},
	}
	s := RenderMultiLineChart(series, 20, 5, "Title")
	if !strings.Contains(s, "Title") {
		t.Error("RenderMultiLineChart should include the caption")
	}

	if s := RenderMultiLineChart(nil, 20, 5, ""); !strings.Contains(s, "No data available") {
		t.Error("no series should render a placeholder")
	}
}

func TestAnsiColor(t *testing.T) {
	if got := ansiColor(lipgloss.Color("114")); int(got) != 114 {
		t.Errorf("ansiColor(114) = %d", got)
	}
	if got := ansiColor(lipgloss.Color("#ffffff")); int(got) != 0 {
		t.Errorf("hex colors should fall back to the default, got %d", got)
	}
}

func TestRenderBarChart(t *testing.T) {
	bars := []Bar{
		{Label: "Clear", Value: 4876, Display: "4,876"},
		{Label: "Light Rain", Value: 1803, Display: "1,803"},
	}
	s := ansi.Strip(RenderBarChart(bars, 60))
	lines := strings.Split(s, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "4,876") || !strings.Contains(lines[1], "Light Rain") {
		t.Errorf("unexpected chart:\n%s", s)
	}
	if strings.Count(lines[0], "█") <= strings.Count(lines[1], "█") {
		t.Error("larger value should have the longer bar")
	}

	if RenderBarChart(nil, 20) != "" {
		t.Error("no bars should render nothing")
	}
}

func TestRenderHourlyHeatmap(t *testing.T) {
	s := ansi.Strip(RenderHourlyHeatmap(HourlySeries([]int{8}, []float64{5})))
	if !strings.HasPrefix(s, "00 ") || !strings.HasSuffix(s, " 23") {
		t.Errorf("unexpected heatmap %q", s)
	}
	if strings.Count(s, "█") != 1 {
		t.Errorf("only the recorded hour should be at full intensity: %q", s)
	}
}

func TestRenderSparkline(t *testing.T) {
	s := RenderSparkline([]float64{1, math.NaN(), 3}, 10)
	if len([]rune(s)) != 3 {
		t.Errorf("sparkline = %q, want 3 cells", s)
	}
	if []rune(s)[1] != ' ' {
		t.Error("NaN should render as a gap")
	}
	if RenderSparkline(nil, 10) != "" {
		t.Error("empty sparkline should be empty")
	}
}

func TestRenderLegend(t *testing.T) {
	items := LegendFor([]Series{{Label: "A", Color: lipgloss.Color("1")}, {Label: "B"}})
	s := ansi.Strip(RenderLegend(items))
	if !strings.Contains(s, "A") || !strings.Contains(s, "B") {
		t.Errorf("legend = %q", s)
	}
}

func TestShareBar_View(t *testing.T) {
	bar := NewShareBar(lipgloss.Color("114"))
	view := ansi.Strip(bar.View(32.2, "Fall", 60))
	if !strings.Contains(view, "Fall") || !strings.Contains(view, "32.20%") {
		t.Errorf("unexpected share bar %q", view)
	}
}

func TestRenderShares(t *testing.T) {
	view := ansi.Strip(RenderShares([]string{"Spring", "Summer"}, []float64{25, 75}, 60))
	if strings.Count(view, "\n") != 1 {
		t.Errorf("expected two rows, got %q", view)
	}
	if !strings.Contains(view, "75.00%") {
		t.Error("missing percentage")
	}
}
