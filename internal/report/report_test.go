package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/analytics"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

func testRecords() []models.Observation {
	return []models.Observation{
		{Season: "Spring", Weather: "Clear", Hour: 8, DailyCount: 100, HourlyCount: 10},
		{Season: "Spring", Weather: "Clear", Hour: 17, DailyCount: 100, HourlyCount: 40},
		{Season: "Summer", Weather: "Mist", Hour: 8, DailyCount: 300, HourlyCount: 60},
	}
}

func render(records []models.Observation, sel analytics.Selection, total int) string {
	return ansi.Strip(Render(analytics.Build(records, sel), total))
}

func assertContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRender_AllViews(t *testing.T) {
	records := testRecords()
	out := render(records, analytics.DefaultSelection(records), len(records))

	assertContains(t, out,
		"Bike Sharing Report",
		"Records: 3 of 3",
		"Seasons: Spring, Summer",
		"Weather: Clear, Mist",
		"Weather Impact",
		"Peak hour: 17:00 (40)",
		"Lowest hour: 08:00 (35)",
		"Highest: Summer (300)",
		"Lowest: Spring (200)",
		"60.00%",
		"40.00%",
		"Spring: peak: 17:00 (40)   low: 08:00 (10)",
		"Hourly by Weather",
		"Median",
	)
	if strings.Contains(out, "No data available") {
		t.Error("report over matching records should not print the no-data message")
	}
}

func TestRender_EmptySelection(t *testing.T) {
	records := testRecords()
	out := render(records, analytics.NewSelection(nil, []string{"Clear"}), len(records))

	assertContains(t, out, "Records: 0 of 3", "Seasons: (none)")
	if got := strings.Count(out, "No data available for the selected filter."); got != 6 {
		t.Errorf("no-data message printed %d times, want 6", got)
	}
}

func TestRender_DailyOnly(t *testing.T) {
	records := []models.Observation{
		{Season: "Fall", Weather: "Clear", Hour: models.NoHour, DailyCount: 0},
	}
	out := render(records, analytics.DefaultSelection(records), 1)

	assertContains(t, out,
		"No hourly observations",
		"Peak hour: N/A",
		"Shares unavailable",
		"Highest: Fall (0)",
	)
}

func TestRender_EmptyDataset(t *testing.T) {
	out := render(nil, analytics.DefaultSelection(nil), 0)

	assertContains(t, out, "Records: 0 of 0", "Seasons: (none)")
	if got := strings.Count(out, "No data available for the selected filter."); got != 6 {
		t.Errorf("no-data message printed %d times, want 6", got)
	}
}

func TestWrite(t *testing.T) {
	records := testRecords()
	var buf bytes.Buffer
	if err := Write(&buf, analytics.Build(records, analytics.DefaultSelection(records)), len(records)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	assertContains(t, ansi.Strip(buf.String()), "Weather Spread")
}
