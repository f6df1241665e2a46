package db

import (
	"context"
	"testing"
	"time"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

func testImport() *models.DatasetImport {
	return &models.DatasetImport{
		Source:  "/data/bike_sharing.csv",
		Size:    2048,
		ModTime: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func testRecords() []models.Observation {
	day := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.Observation{
		{Date: day, Season: models.SeasonWinter, Weather: models.WeatherClear, Hour: 0, DailyCount: 985, HourlyCount: 16},
		{Date: day, Season: models.SeasonWinter, Weather: models.WeatherMist, Hour: 1, DailyCount: 985, HourlyCount: 40},
		{Season: models.SeasonSummer, Weather: models.WeatherClear, Hour: models.NoHour, DailyCount: 6043},
		{Date: day, Season: models.SeasonWinter, Weather: models.WeatherClear, Hour: 23, DailyCount: 985, HourlyCount: 12},
	}
}

func TestReplaceObservations(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	imp := testImport()
	imp.Rejected = 2
	if err := db.ReplaceObservations(ctx, imp, testRecords()); err != nil {
		t.Fatalf("ReplaceObservations failed: %v", err)
	}

	if imp.ID == 0 {
		t.Error("Expected import ID to be set")
	}
	if imp.RowCount != 4 {
		t.Errorf("Expected RowCount 4, got %d", imp.RowCount)
	}
	if imp.ImportedAt.IsZero() {
		t.Error("Expected ImportedAt to be set")
	}

	got, err := db.LoadObservations(ctx)
	if err != nil {
		t.Fatalf("LoadObservations failed: %v", err)
	}

	want := testRecords()
	if len(got) != len(want) {
		t.Fatalf("Expected %d observations, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Observation %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestReplaceObservations_ReplacesPrevious(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	if err := db.ReplaceObservations(ctx, testImport(), testRecords()); err != nil {
		t.Fatalf("First import failed: %v", err)
	}

	second := []models.Observation{
		{Season: models.SeasonFall, Weather: models.WeatherLightRain, Hour: 7, DailyCount: 10, HourlyCount: 3},
	}
	if err := db.ReplaceObservations(ctx, testImport(), second); err != nil {
		t.Fatalf("Second import failed: %v", err)
	}

	got, err := db.LoadObservations(ctx)
	if err != nil {
		t.Fatalf("LoadObservations failed: %v", err)
	}
	if len(got) != 1 || got[0].Season != models.SeasonFall {
		t.Errorf("Expected only the second import, got %+v", got)
	}

	history, err := db.ImportHistory(ctx, 10)
	if err != nil {
		t.Fatalf("ImportHistory failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("Expected 2 imports in history, got %d", len(history))
	}
	if history[0].RowCount != 1 {
		t.Errorf("Expected newest import first, got row count %d", history[0].RowCount)
	}
}

func TestReplaceObservations_Empty(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	if err := db.ReplaceObservations(ctx, testImport(), nil); err != nil {
		t.Fatalf("ReplaceObservations failed: %v", err)
	}

	n, err := db.CountObservations(ctx)
	if err != nil {
		t.Fatalf("CountObservations failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected 0 observations, got %d", n)
	}
}

func TestReplaceObservations_RejectsNegativeCount(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	if err := db.ReplaceObservations(ctx, testImport(), testRecords()); err != nil {
		t.Fatalf("Seed import failed: %v", err)
	}

	bad := []models.Observation{
		{Season: models.SeasonFall, Weather: models.WeatherClear, Hour: 3, DailyCount: -1},
	}
	if err := db.ReplaceObservations(ctx, testImport(), bad); err == nil {
		t.Fatal("Expected error for negative count")
	}

	n, err := db.CountObservations(ctx)
	if err != nil {
		t.Fatalf("CountObservations failed: %v", err)
	}
	if n != len(testRecords()) {
		t.Errorf("Expected failed import to roll back, got %d observations", n)
	}
}

func TestLatestImport(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	imp, err := db.LatestImport(ctx, "/data/bike_sharing.csv")
	if err != nil {
		t.Fatalf("LatestImport failed: %v", err)
	}
	if imp != nil {
		t.Fatalf("Expected nil import on empty database, got %+v", imp)
	}

	stored := testImport()
	if err := db.ReplaceObservations(ctx, stored, testRecords()); err != nil {
		t.Fatalf("ReplaceObservations failed: %v", err)
	}

	imp, err = db.LatestImport(ctx, stored.Source)
	if err != nil {
		t.Fatalf("LatestImport failed: %v", err)
	}
	if imp == nil {
		t.Fatal("Expected import, got nil")
	}
	if imp.ID != stored.ID {
		t.Errorf("Expected ID %d, got %d", stored.ID, imp.ID)
	}
	if !imp.Matches(stored.Size, stored.ModTime) {
		t.Errorf("Expected fingerprint to match, got size=%d modTime=%v", imp.Size, imp.ModTime)
	}
	if imp.RowCount != 4 {
		t.Errorf("Expected row count 4, got %d", imp.RowCount)
	}

	other, err := db.LatestImport(ctx, "/elsewhere.csv")
	if err != nil {
		t.Fatalf("LatestImport failed: %v", err)
	}
	if other != nil {
		t.Errorf("Expected nil for unknown source, got %+v", other)
	}
}

func TestLabelCounts(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()
	ctx := context.Background()

	if err := db.ReplaceObservations(ctx, testImport(), testRecords()); err != nil {
		t.Fatalf("ReplaceObservations failed: %v", err)
	}

	seasons, err := db.LabelCounts(ctx, models.DimensionSeason)
	if err != nil {
		t.Fatalf("LabelCounts failed: %v", err)
	}
	wantSeasons := []models.LabelCount{
		{Label: models.SeasonWinter, Count: 3},
		{Label: models.SeasonSummer, Count: 1},
	}
	if len(seasons) != len(wantSeasons) {
		t.Fatalf("Expected %d season counts, got %d", len(wantSeasons), len(seasons))
	}
	for i := range wantSeasons {
		if seasons[i] != wantSeasons[i] {
			t.Errorf("Season %d: expected %+v, got %+v", i, wantSeasons[i], seasons[i])
		}
	}

	weather, err := db.LabelCounts(ctx, models.DimensionWeather)
	if err != nil {
		t.Fatalf("LabelCounts failed: %v", err)
	}
	if len(weather) != 2 || weather[0].Label != models.WeatherClear || weather[0].Count != 3 {
		t.Errorf("Unexpected weather counts: %+v", weather)
	}

	if _, err := db.LabelCounts(ctx, models.Dimension(99)); err == nil {
		t.Error("Expected error for unknown dimension")
	}
}

func TestNullHour(t *testing.T) {
	tests := []struct {
		hour  int
		valid bool
	}{
		{models.NoHour, false},
		{0, true},
		{23, true},
		{24, false},
	}

	for _, tt := range tests {
		if got := nullHour(tt.hour); got.Valid != tt.valid {
			t.Errorf("nullHour(%d).Valid = %v, want %v", tt.hour, got.Valid, tt.valid)
		}
	}
}
