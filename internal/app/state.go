// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/analytics"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"

	maxNotifications = 10
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	ID        string
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// Resource names a piece of state that loads asynchronously.
type Resource string

const (
	ResourceDataset Resource = "dataset"
	ResourceReport  Resource = "report"
	ResourceReload  Resource = "reload"
)

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Initial bool
	Dataset bool
	Report  bool
	Reload  bool
}

// State is shared between the root model and the tabs.
type State struct {
	mu sync.RWMutex

	Stats       models.DatasetStats
	Options     analytics.Options
	Selection   analytics.Selection
	Report      *analytics.Report
	LabelCounts LabelCounts
	Imports     []models.DatasetImport

	Loading LoadingState

	LastUpdated time.Time

	selectionTouched bool
	reportSeq        int
	notifications    []Notification
	notificationSeq  int
}

// LabelCounts holds label frequencies for both dimensions.
type LabelCounts struct {
	Seasons []models.LabelCount
	Weather []models.LabelCount
}

// NewState creates an empty state waiting for the first dataset.
func NewState() *State {
	return &State{
		notifications: make([]Notification, 0),
		Loading: LoadingState{
			Initial: true,
		},
	}
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource Resource, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case ResourceDataset:
		s.Loading.Dataset = loading
		if !loading {
			s.Loading.Initial = false
		}
	case ResourceReport:
		s.Loading.Report = loading
	case ResourceReload:
		s.Loading.Reload = loading
	}
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.Loading.Initial ||
		s.Loading.Dataset ||
		s.Loading.Report ||
		s.Loading.Reload
}

// IsInitialLoading returns true if the first dataset has not arrived yet.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial
}

// LoadingLabel describes what the app is waiting for.
func (s *State) LoadingLabel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch {
	case s.Loading.Initial:
		return "Loading dataset..."
	case s.Loading.Reload:
		return "Reloading dataset..."
	default:
		return "Building report..."
	}
}

// SetDataset records a new dataset snapshot. Until the user edits the
// filters, the selection follows the dataset's labels.
func (s *State) SetDataset(stats models.DatasetStats, options analytics.Options) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Stats = stats
	s.Options = options
	if !s.selectionTouched {
		s.Selection = options.All()
	}
	s.Loading.Initial = false
	s.Loading.Dataset = false
	s.LastUpdated = time.Now()
}

// GetStats returns the current dataset summary.
func (s *State) GetStats() models.DatasetStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Stats
}

// GetOptions returns the labels offered by the filters.
func (s *State) GetOptions() analytics.Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Options
}

// SetSelection replaces the user's selection.
func (s *State) SetSelection(sel analytics.Selection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Selection = sel
	s.selectionTouched = true
}

// ResetSelection selects every label again and follows future datasets.
func (s *State) ResetSelection() analytics.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Selection = s.Options.All()
	s.selectionTouched = false
	return s.Selection
}

// GetSelection returns the current selection.
func (s *State) GetSelection() analytics.Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Selection
}

// SelectionTouched reports whether the user changed the default selection.
func (s *State) SelectionTouched() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectionTouched
}

// NextReportSeq reserves a sequence number for a report build.
func (s *State) NextReportSeq() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reportSeq++
	s.Loading.Report = true
	return s.reportSeq
}

// SetReport stores a report unless a newer build has been requested since.
// It reports whether the report was accepted.
func (s *State) SetReport(seq int, report analytics.Report) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.reportSeq {
		return false
	}
	s.Report = &report
	s.Loading.Report = false
	s.LastUpdated = time.Now()
	return true
}

// GetReport returns the latest report, or nil before the first build.
func (s *State) GetReport() *analytics.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Report
}

// SetLabelCounts stores label frequencies and import history for the info tab.
func (s *State) SetLabelCounts(counts LabelCounts, imports []models.DatasetImport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LabelCounts = counts
	s.Imports = imports
}

// GetLabelCounts returns the stored label frequencies.
func (s *State) GetLabelCounts() LabelCounts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LabelCounts
}

// GetImports returns the stored import history.
func (s *State) GetImports() []models.DatasetImport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	imports := make([]models.DatasetImport, len(s.Imports))
	copy(imports, s.Imports)
	return imports
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	notification := Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	}

	s.notifications = append(s.notifications, notification)

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}

	return active
}

// ClearAllNotifications removes all notifications.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]Notification, 0)
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.RemoveNotification(LoadingNotificationID)
}

// GetLastUpdated returns the last time the state was updated.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastUpdated
}

// TimeSinceUpdate returns the duration since the last update.
func (s *State) TimeSinceUpdate() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.LastUpdated.IsZero() {
		return 0
	}
	return time.Since(s.LastUpdated)
}
