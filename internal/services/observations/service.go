// Package observations owns the loaded bike-rental records, keeps the sqlite
// store in sync with the CSV and reloads when the file changes.
package observations

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/dataset"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/db"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// DefaultDebounce is used when Options.Debounce is zero.
const DefaultDebounce = 250 * time.Millisecond

// ErrNoDataset is returned when the CSV is missing and nothing was cached for it.
var ErrNoDataset = errors.New("dataset not found")

// Event represents an observations service event.
type Event struct {
	Type  EventType
	Error error
	Stats models.DatasetStats
}

// EventType defines the type of observations event.
type EventType int

const (
	EventLoaded EventType = iota
	EventReloaded
	EventError
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventLoaded:
		return "loaded"
	case EventReloaded:
		return "reloaded"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Options configures a Service.
type Options struct {
	// Path is the merged day/hour CSV.
	Path string
	// Store caches parsed records between runs. Optional.
	Store *db.DB
	// Watch reloads the dataset when the file changes.
	Watch bool
	// Debounce delays reloads after a burst of file events.
	Debounce time.Duration
}

// Service holds an immutable snapshot of the dataset.
type Service struct {
	mu            sync.RWMutex
	path          string
	store         *db.DB
	debounce      time.Duration
	records       []models.Observation
	rejected      []dataset.RowError
	stats         models.DatasetStats
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	debounceTimer *time.Timer
	closeOnce     sync.Once
}

type snapshot struct {
	records  []models.Observation
	rejected []dataset.RowError
	stats    models.DatasetStats
}

// New loads the dataset and, if requested, starts watching it.
func New(ctx context.Context, opts Options) (*Service, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("dataset path is required")
	}

	path, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dataset path: %w", err)
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	s := &Service{
		path:      path,
		store:     opts.Store,
		debounce:  debounce,
		eventChan: make(chan Event, 100),
		stopChan:  make(chan struct{}),
	}

	snap, err := s.load(ctx, false)
	if err != nil {
		return nil, err
	}
	s.apply(snap)

	if opts.Watch {
		if err := s.startWatcher(); err != nil {
			return nil, fmt.Errorf("failed to start file watcher: %w", err)
		}
	}

	s.sendEvent(Event{Type: EventLoaded, Stats: snap.stats})

	return s, nil
}

// Events returns the event channel for subscribing to dataset changes.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Path returns the absolute dataset path.
func (s *Service) Path() string {
	return s.path
}

// Records returns a copy of the loaded observations in file order.
func (s *Service) Records() []models.Observation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// Rejected returns the rows rejected by the last parse. It is empty when the
// records came from the store.
func (s *Service) Rejected() []dataset.RowError {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.rejected)
}

// Stats returns a summary of the loaded dataset.
func (s *Service) Stats() models.DatasetStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Reload re-parses the CSV and replaces the snapshot. On failure the previous
// snapshot is kept.
func (s *Service) Reload(ctx context.Context) error {
	snap, err := s.load(ctx, true)
	if err != nil {
		s.sendEvent(Event{Type: EventError, Error: err})
		return err
	}
	s.apply(snap)
	s.sendEvent(Event{Type: EventReloaded, Stats: snap.stats})
	return nil
}

func (s *Service) apply(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = snap.records
	s.rejected = snap.rejected
	s.stats = snap.stats
}

// load reads the dataset, preferring the store when the file fingerprint matches
// the last import. force skips the fingerprint check.
func (s *Service) load(ctx context.Context, force bool) (snapshot, error) {
	info, statErr := os.Stat(s.path)

	var last *models.DatasetImport
	if s.store != nil {
		imp, err := s.store.LatestImport(ctx, s.path)
		if err != nil {
			logger.Warn("failed to read import metadata", "error", err)
		}
		last = imp
	}

	switch {
	case statErr == nil && !force && last.Matches(info.Size(), info.ModTime()):
		snap, err := s.loadStored(ctx, last)
		if err == nil {
			logger.Info("loaded dataset from store", "path", s.path, "records", len(snap.records))
			return snap, nil
		}
		logger.Warn("failed to load stored observations, parsing CSV", "error", err)

	case statErr != nil && last != nil:
		snap, err := s.loadStored(ctx, last)
		if err == nil {
			logger.Warn("dataset unavailable, using stored observations", "path", s.path, "error", statErr)
			return snap, nil
		}
	}

	if statErr != nil {
		if os.IsNotExist(statErr) {
			return snapshot{}, fmt.Errorf("%w: %s", ErrNoDataset, s.path)
		}
		return snapshot{}, fmt.Errorf("failed to stat dataset: %w", statErr)
	}

	return s.parse(ctx, info)
}

func (s *Service) loadStored(ctx context.Context, imp *models.DatasetImport) (snapshot, error) {
	records, err := s.store.LoadObservations(ctx)
	if err != nil {
		return snapshot{}, err
	}
	if len(records) != imp.RowCount {
		return snapshot{}, fmt.Errorf("stored observations incomplete: have %d, import recorded %d", len(records), imp.RowCount)
	}

	return snapshot{
		records: records,
		stats:   newStats(s.path, records, imp.Rejected, true, imp.ImportedAt),
	}, nil
}

func (s *Service) parse(ctx context.Context, info os.FileInfo) (snapshot, error) {
	res, err := dataset.LoadFile(s.path)
	if err != nil {
		return snapshot{}, fmt.Errorf("failed to load dataset: %w", err)
	}

	for _, rowErr := range res.Rejected {
		logger.Debug("rejected row", "line", rowErr.Line, "column", rowErr.Column, "reason", rowErr.Reason)
	}
	if len(res.Rejected) > 0 {
		logger.Warn("dataset rows rejected", "count", len(res.Rejected))
	}

	var importedAt time.Time
	if s.store != nil {
		imp := &models.DatasetImport{
			Source:   s.path,
			Size:     info.Size(),
			ModTime:  info.ModTime(),
			Rejected: len(res.Rejected),
		}
		if err := s.store.ReplaceObservations(ctx, imp, res.Records); err != nil {
			logger.Warn("failed to store observations", "error", err)
		} else {
			importedAt = imp.ImportedAt
		}
	}

	logger.Info("parsed dataset", "path", s.path, "records", len(res.Records), "rejected", len(res.Rejected))

	return snapshot{
		records:  res.Records,
		rejected: res.Rejected,
		stats:    newStats(s.path, res.Records, len(res.Rejected), false, importedAt),
	}, nil
}

func newStats(source string, records []models.Observation, rejected int, fromCache bool, importedAt time.Time) models.DatasetStats {
	hourly := 0
	for _, r := range records {
		if r.HasHour() {
			hourly++
		}
	}
	return models.DatasetStats{
		Source:     source,
		Records:    len(records),
		Hourly:     hourly,
		Rejected:   rejected,
		FromCache:  fromCache,
		LoadedAt:   time.Now(),
		ImportedAt: importedAt,
	}
}

// startWatcher starts the file system watcher.
func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	// Watch the directory to catch editors that replace the file.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filepath.Base(s.path) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				s.scheduleReload()
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

func (s *Service) scheduleReload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.debounceTimer = time.AfterFunc(s.debounce, s.handleFileChange)
}

// handleFileChange reloads the dataset after an external change.
func (s *Service) handleFileChange() {
	select {
	case <-s.stopChan:
		return
	default:
	}

	logger.Debug("dataset changed on disk", "path", s.path)
	_ = s.Reload(context.Background())
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the file watcher and cleans up resources.
func (s *Service) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stopChan)

		s.mu.Lock()
		if s.debounceTimer != nil {
			s.debounceTimer.Stop()
		}
		s.mu.Unlock()

		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}
