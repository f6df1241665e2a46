// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/gen2brain/beeep"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/analytics"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/config"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/dataset"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/db"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/services/observations"
)

type (
	// DatasetLoadedEvent is emitted when a new dataset snapshot is available.
	DatasetLoadedEvent struct {
		Stats    models.DatasetStats
		Reloaded bool
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (DatasetLoadedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()         {}

// Notifier shows a desktop notification.
type Notifier func(title, body string) error

func beeepNotify(title, body string) error {
	return beeep.Notify(title, body, "")
}

// Manager orchestrates services and event routing.
type Manager struct {
	mu           sync.RWMutex
	cfg          *config.Config
	observations *observations.Service
	database     *db.DB
	notify       Notifier
	eventChan    chan ServiceEvent
	stopChan     chan struct{}
	subscribers  []chan<- ServiceEvent
	closeOnce    sync.Once
}

// NewManager opens the record store and loads the dataset.
func NewManager(ctx context.Context, cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:       cfg,
		eventChan: make(chan ServiceEvent, 100),
		stopChan:  make(chan struct{}),
	}
	if cfg.NotifyOnReload {
		m.notify = beeepNotify
	}

	if cfg.DatabasePath != "" {
		database, err := db.New(cfg.DatabasePath)
		if err != nil {
			logger.Warn("record store unavailable, parsing CSV on every start", "path", cfg.DatabasePath, "error", err)
		} else {
			m.database = database
		}
	}

	var err error
	m.observations, err = observations.New(ctx, observations.Options{
		Path:     cfg.DatasetPath,
		Store:    m.database,
		Watch:    cfg.WatchDataset,
		Debounce: cfg.ReloadDebounce,
	})
	if err != nil {
		if m.database != nil {
			_ = m.database.Close()
		}
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	go m.routeEvents()

	return m, nil
}

// SetNotifier replaces the desktop notifier. nil disables notifications.
func (m *Manager) SetNotifier(n Notifier) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notify = n
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.observations.Events():
			m.handleObservationsEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

func (m *Manager) handleObservationsEvent(event observations.Event) {
	switch event.Type {
	case observations.EventLoaded:
		m.broadcast(DatasetLoadedEvent{Stats: event.Stats})

	case observations.EventReloaded:
		m.sendNotification("Dataset reloaded",
			fmt.Sprintf("%s records loaded", humanize.Comma(int64(event.Stats.Records))))
		m.broadcast(DatasetLoadedEvent{Stats: event.Stats, Reloaded: true})

	case observations.EventError:
		m.sendNotification("Dataset reload failed", event.Error.Error())
		m.broadcast(ErrorEvent{
			Service: "observations",
			Error:   event.Error,
		})
	}
}

func (m *Manager) sendNotification(title, body string) {
	m.mu.RLock()
	notify := m.notify
	m.mu.RUnlock()

	if notify == nil {
		return
	}
	if err := notify(title, body); err != nil {
		logger.Debug("desktop notification failed", "error", err)
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	// Send to main event channel
	select {
	case m.eventChan <- event:
	default:
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, waitForEvent(ch)
}

// waitForEvent returns a tea.Cmd that waits for the next event.
func waitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return waitForEvent(ch)
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Records returns the current dataset snapshot.
func (m *Manager) Records() []models.Observation {
	return m.observations.Records()
}

// Options returns the distinct labels of the current dataset in first-seen order.
func (m *Manager) Options() analytics.Options {
	return analytics.OptionsFrom(m.observations.Records())
}

// Report filters the current dataset and assembles every view.
func (m *Manager) Report(sel analytics.Selection) analytics.Report {
	return analytics.Build(m.observations.Records(), sel)
}

// Stats returns a summary of the current dataset.
func (m *Manager) Stats() models.DatasetStats {
	return m.observations.Stats()
}

// Rejected returns the rows rejected by the last parse.
func (m *Manager) Rejected() []dataset.RowError {
	return m.observations.Rejected()
}

// Reload re-parses the dataset.
func (m *Manager) Reload(ctx context.Context) error {
	return m.observations.Reload(ctx)
}

// LabelCounts returns stored label frequencies for a dimension. Without a
// record store the counts are computed from the in-memory snapshot.
func (m *Manager) LabelCounts(ctx context.Context, dim models.Dimension) ([]models.LabelCount, error) {
	if m.database != nil {
		counts, err := m.database.LabelCounts(ctx, dim)
		if err == nil {
			return counts, nil
		}
		logger.Warn("failed to read label counts from store", "error", err)
	}
	return countLabels(m.observations.Records(), dim), nil
}

// ImportHistory returns the most recent dataset imports, newest first.
func (m *Manager) ImportHistory(ctx context.Context, limit int) ([]models.DatasetImport, error) {
	if m.database == nil {
		return nil, nil
	}
	return m.database.ImportHistory(ctx, limit)
}

func countLabels(records []models.Observation, dim models.Dimension) []models.LabelCount {
	index := make(map[string]int)
	var counts []models.LabelCount
	for _, r := range records {
		label := r.Label(dim)
		i, ok := index[label]
		if !ok {
			i = len(counts)
			index[label] = i
			counts = append(counts, models.LabelCount{Label: label})
		}
		counts[i].Count++
	}
	return counts
}

// Config returns the configuration the manager was built with.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// Observations returns the observations service.
func (m *Manager) Observations() *observations.Service {
	return m.observations
}

// Database returns the record store, or nil when it could not be opened.
func (m *Manager) Database() *db.DB {
	return m.database
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	var errs []error

	m.closeOnce.Do(func() {
		close(m.stopChan)

		m.mu.Lock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
		m.mu.Unlock()

		if err := m.observations.Close(); err != nil {
			errs = append(errs, err)
		}

		if m.database != nil {
			if err := m.database.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	})

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
