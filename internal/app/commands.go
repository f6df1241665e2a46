package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/analytics"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/services"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second

	// ImportHistoryLimit caps the imports shown on the info tab.
	ImportHistoryLimit = 5

	reloadTimeout = time.Minute
)

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// defaultTickCmd returns a command that sends a TickMsg after the default interval.
func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// loadDatasetCmd returns a command that reads the current snapshot summary.
func loadDatasetCmd(mgr *services.Manager, reloaded bool) tea.Cmd {
	return func() tea.Msg {
		return DatasetLoadedMsg{
			Stats:    mgr.Stats(),
			Options:  mgr.Options(),
			Reloaded: reloaded,
		}
	}
}

// buildReportCmd returns a command that assembles the report for sel.
func buildReportCmd(mgr *services.Manager, seq int, sel analytics.Selection) tea.Cmd {
	return func() tea.Msg {
		return ReportReadyMsg{
			Seq:    seq,
			Report: mgr.Report(sel),
		}
	}
}

// reloadCmd returns a command that re-parses the dataset.
func reloadCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
		defer cancel()
		return ReloadResultMsg{Error: mgr.Reload(ctx)}
	}
}

// loadLabelCountsCmd returns a command that loads label frequencies and import history.
func loadLabelCountsCmd(mgr *services.Manager) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		seasons, seasonErr := mgr.LabelCounts(ctx, models.DimensionSeason)
		weather, weatherErr := mgr.LabelCounts(ctx, models.DimensionWeather)
		imports, importErr := mgr.ImportHistory(ctx, ImportHistoryLimit)

		return LabelCountsLoadedMsg{
			Counts:  LabelCounts{Seasons: seasons, Weather: weather},
			Imports: imports,
			Error:   errors.Join(seasonErr, weatherErr, importErr),
		}
	}
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

func notifyCmd(t NotificationType, message string, duration time.Duration) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     t,
			Message:  message,
			Duration: duration,
		}
	}
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return notifyCmd(NotificationSuccess, message, DefaultNotificationDuration)
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return notifyCmd(NotificationError, message, LongNotificationDuration)
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return notifyCmd(NotificationWarning, message, DefaultNotificationDuration)
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return notifyCmd(NotificationInfo, message, QuickNotificationDuration)
}

// Commands provides a public interface to the command functions.
type Commands struct {
	manager *services.Manager
}

// NewCommands creates a new Commands instance.
func NewCommands(mgr *services.Manager) *Commands {
	return &Commands{manager: mgr}
}

// LoadDataset returns a command that reads the current snapshot summary.
func (c *Commands) LoadDataset() tea.Cmd {
	return loadDatasetCmd(c.manager, false)
}

// BuildReport returns a command that assembles the report for sel.
func (c *Commands) BuildReport(seq int, sel analytics.Selection) tea.Cmd {
	return buildReportCmd(c.manager, seq, sel)
}

// Reload returns a command that re-parses the dataset.
func (c *Commands) Reload() tea.Cmd {
	return reloadCmd(c.manager)
}

// LoadLabelCounts returns a command that loads label frequencies.
func (c *Commands) LoadLabelCounts() tea.Cmd {
	return loadLabelCountsCmd(c.manager)
}

// NotifySuccess returns a command that adds a success notification.
func (c *Commands) NotifySuccess(message string) tea.Cmd {
	return notifySuccessCmd(message)
}

// NotifyError returns a command that adds an error notification.
func (c *Commands) NotifyError(message string) tea.Cmd {
	return notifyErrorCmd(message)
}

// NotifyWarning returns a command that adds a warning notification.
func (c *Commands) NotifyWarning(message string) tea.Cmd {
	return notifyWarningCmd(message)
}

// NotifyInfo returns a command that adds an info notification.
func (c *Commands) NotifyInfo(message string) tea.Cmd {
	return notifyInfoCmd(message)
}
