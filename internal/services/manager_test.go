package services

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/analytics"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/config"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

const managerCSV = `dteday,season_day,weathersit_day,hr,cnt_day,cnt_hour
2011-01-01,1,1,8,100,10
2011-01-01,1,2,9,200,30
2011-06-01,2,1,8,300,50
2011-06-01,2,1,,400,
`

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	tmpDir := t.TempDir()
	datasetPath := filepath.Join(tmpDir, "bike_sharing.csv")
	if err := os.WriteFile(datasetPath, []byte(managerCSV), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return &config.Config{
		DatasetPath:    datasetPath,
		DatabasePath:   filepath.Join(tmpDir, "test.db"),
		ReloadDebounce: 20 * time.Millisecond,
	}
}

func newTestManager(t *testing.T, cfg *config.Config) *Manager {
	t.Helper()
	mgr, err := NewManager(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { _ = mgr.Close() })
	return mgr
}

func TestNewManager(t *testing.T) {
	mgr := newTestManager(t, newTestConfig(t))

	if mgr.Observations() == nil {
		t.Error("Observations service should be initialized")
	}
	if mgr.Database() == nil {
		t.Error("Database should be initialized")
	}
	if len(mgr.Records()) != 4 {
		t.Errorf("expected 4 records, got %d", len(mgr.Records()))
	}
	if mgr.Config().DatasetPath == "" {
		t.Error("Config should be retained")
	}
}

func TestNewManager_MissingDataset(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.DatasetPath = filepath.Join(t.TempDir(), "missing.csv")

	if _, err := NewManager(context.Background(), cfg); err == nil {
		t.Error("NewManager should fail when the dataset is missing")
	}
}

func TestNewManager_HeaderOnlyDataset(t *testing.T) {
	cfg := newTestConfig(t)
	header := "dteday,season_day,weathersit_day,hr,cnt_day,cnt_hour\n"
	if err := os.WriteFile(cfg.DatasetPath, []byte(header), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	mgr := newTestManager(t, cfg)

	if len(mgr.Records()) != 0 {
		t.Errorf("expected no records, got %d", len(mgr.Records()))
	}
	report := mgr.Report(analytics.DefaultSelection(mgr.Records()))
	if report.HasData() {
		t.Error("report over an empty dataset should have no data")
	}
	if report.Weather.Status != analytics.StatusNoData {
		t.Errorf("weather status = %v, want %v", report.Weather.Status, analytics.StatusNoData)
	}
}

func TestNewManager_WithoutDatabase(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.DatabasePath = ""

	mgr := newTestManager(t, cfg)
	if mgr.Database() != nil {
		t.Error("Database should be nil without a path")
	}

	counts, err := mgr.LabelCounts(context.Background(), models.DimensionSeason)
	if err != nil {
		t.Fatalf("LabelCounts failed: %v", err)
	}
	if len(counts) != 2 || counts[0].Label != models.SeasonSpring || counts[0].Count != 2 {
		t.Errorf("unexpected in-memory label counts: %+v", counts)
	}

	history, err := mgr.ImportHistory(context.Background(), 5)
	if err != nil || history != nil {
		t.Errorf("expected no history without a database, got %v, %v", history, err)
	}
}

func TestManager_Options(t *testing.T) {
	mgr := newTestManager(t, newTestConfig(t))

	opts := mgr.Options()
	wantSeasons := []string{models.SeasonSpring, models.SeasonSummer}
	wantWeather := []string{models.WeatherClear, models.WeatherMist}

	if len(opts.Seasons) != len(wantSeasons) {
		t.Fatalf("Seasons = %v, want %v", opts.Seasons, wantSeasons)
	}
	for i := range wantSeasons {
		if opts.Seasons[i] != wantSeasons[i] {
			t.Errorf("Seasons[%d] = %q, want %q", i, opts.Seasons[i], wantSeasons[i])
		}
	}
	for i := range wantWeather {
		if opts.Weather[i] != wantWeather[i] {
			t.Errorf("Weather[%d] = %q, want %q", i, opts.Weather[i], wantWeather[i])
		}
	}
}

func TestManager_Report(t *testing.T) {
	mgr := newTestManager(t, newTestConfig(t))

	report := mgr.Report(mgr.Options().All())
	if !report.HasData() {
		t.Fatal("expected report with data")
	}
	if report.RecordCount != 4 {
		t.Errorf("RecordCount = %d, want 4", report.RecordCount)
	}

	total, ok := report.Seasonal.Totals.Lookup(models.SeasonSummer)
	if !ok || total.Value != 700 {
		t.Errorf("Summer total = %v (%v), want 700", total.Value, ok)
	}

	empty := mgr.Report(analytics.NewSelection(nil, []string{models.WeatherClear}))
	if empty.HasData() {
		t.Error("empty season selection should yield no data")
	}
}

func TestManager_LabelCounts(t *testing.T) {
	mgr := newTestManager(t, newTestConfig(t))

	counts, err := mgr.LabelCounts(context.Background(), models.DimensionWeather)
	if err != nil {
		t.Fatalf("LabelCounts failed: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("expected 2 weather labels, got %+v", counts)
	}
	if counts[0].Label != models.WeatherClear || counts[0].Count != 3 {
		t.Errorf("unexpected first count: %+v", counts[0])
	}

	history, err := mgr.ImportHistory(context.Background(), 5)
	if err != nil {
		t.Fatalf("ImportHistory failed: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("expected 1 import, got %d", len(history))
	}
}

func TestManager_Subscription(t *testing.T) {
	mgr := newTestManager(t, newTestConfig(t))

	ch, cmd := mgr.Subscribe()
	if ch == nil {
		t.Error("Subscribe returned nil channel")
	}
	if cmd == nil {
		t.Error("Subscribe returned nil command")
	}

	mgr.Unsubscribe(ch)

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("Channel should be closed")
		}
	default:
		t.Error("Unsubscribe should close the channel")
	}
}

func TestManager_ReloadBroadcasts(t *testing.T) {
	cfg := newTestConfig(t)
	mgr := newTestManager(t, cfg)

	var mu sync.Mutex
	var titles []string
	mgr.SetNotifier(func(title, body string) error {
		mu.Lock()
		defer mu.Unlock()
		titles = append(titles, title)
		return nil
	})

	ch, _ := mgr.Subscribe()

	if err := mgr.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	timeout := time.After(3 * time.Second)
	for {
		select {
		case event := <-ch:
			loaded, ok := event.(DatasetLoadedEvent)
			if !ok || !loaded.Reloaded {
				continue
			}
			if loaded.Stats.Records != 4 {
				t.Errorf("expected 4 records, got %d", loaded.Stats.Records)
			}
			mu.Lock()
			defer mu.Unlock()
			if len(titles) != 1 || titles[0] != "Dataset reloaded" {
				t.Errorf("unexpected notifications: %v", titles)
			}
			return
		case <-timeout:
			t.Fatal("timeout waiting for DatasetLoadedEvent")
		}
	}
}

func TestManager_ReloadErrorBroadcasts(t *testing.T) {
	cfg := newTestConfig(t)
	mgr := newTestManager(t, cfg)
	ch, _ := mgr.Subscribe()

	if err := os.WriteFile(cfg.DatasetPath, []byte("hr\n1\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := mgr.Reload(context.Background()); err == nil {
		t.Fatal("Reload should fail on a malformed dataset")
	}

	timeout := time.After(3 * time.Second)
	for {
		select {
		case event := <-ch:
			if errEvent, ok := event.(ErrorEvent); ok {
				if errEvent.Service != "observations" {
					t.Errorf("Service = %q, want observations", errEvent.Service)
				}
				if len(mgr.Records()) != 4 {
					t.Error("previous snapshot should be kept after a failed reload")
				}
				return
			}
		case <-timeout:
			t.Fatal("timeout waiting for ErrorEvent")
		}
	}
}

func TestManager_CloseTwice(t *testing.T) {
	mgr, err := NewManager(context.Background(), newTestConfig(t))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if err := mgr.Close(); err != nil {
		t.Errorf("first Close failed: %v", err)
	}
	if err := mgr.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}

func TestWaitForEvent(t *testing.T) {
	ch := make(chan ServiceEvent, 1)
	ch <- ErrorEvent{Service: "test"}

	msg := WaitForEvent(ch)()
	if _, ok := msg.(ErrorEvent); !ok {
		t.Errorf("expected ErrorEvent, got %T", msg)
	}
}
