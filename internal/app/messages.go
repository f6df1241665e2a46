package app

import (
	"time"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/analytics"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource Resource
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource Resource
}

// DatasetLoadedMsg carries the summary and label options of a dataset snapshot.
type DatasetLoadedMsg struct {
	Stats    models.DatasetStats
	Options  analytics.Options
	Reloaded bool
}

// ReportReadyMsg carries a freshly assembled report.
type ReportReadyMsg struct {
	Seq    int
	Report analytics.Report
}

// SelectionChangedMsg is sent by the filters tab when the user edits the selection.
type SelectionChangedMsg struct {
	Selection analytics.Selection
}

// ResetSelectionMsg requests selecting every label again.
type ResetSelectionMsg struct{}

// ReloadMsg requests re-parsing the dataset.
type ReloadMsg struct{}

// ReloadResultMsg contains the result of a reload request.
type ReloadResultMsg struct {
	Error error
}

// LabelCountsLoadedMsg carries label frequencies and import history.
type LabelCountsLoadedMsg struct {
	Counts  LabelCounts
	Imports []models.DatasetImport
	Error   error
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}
