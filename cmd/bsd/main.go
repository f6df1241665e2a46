// Package main is the entry point for the bike sharing dashboard.
// It loads configuration and the dataset, then runs the Bubble Tea program
// or prints a text report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/analytics"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/app"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/config"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/report"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/services"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/tabs/filters"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/tabs/hourly"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/tabs/info"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/ui/tabs/overview"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/version"
)

// options holds the parsed command line.
type options struct {
	version bool
	help    bool
	report  bool
	// seasons and weather are nil when the flag was not given.
	seasons []string
	weather []string
}

func main() {
	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	if opts.version {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if opts.help {
		printUsage(os.Stdout)
		os.Exit(0)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseArgs parses the command line. A filter flag given with an empty value
// selects nothing for that dimension.
func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options
	var seasons, weather string

	fs := flag.NewFlagSet(version.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr) }
	fs.BoolVar(&opts.version, "version", false, "show version information")
	fs.BoolVar(&opts.version, "v", false, "show version information")
	fs.BoolVar(&opts.help, "help", false, "show this help message")
	fs.BoolVar(&opts.help, "h", false, "show this help message")
	fs.BoolVar(&opts.report, "report", false, "print a text report and exit")
	fs.StringVar(&seasons, "season", "", "comma-separated seasons to include")
	fs.StringVar(&weather, "weather", "", "comma-separated weather conditions to include")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			opts.help = true
			return opts, nil
		}
		return opts, err
	}
	if fs.NArg() > 0 {
		err := fmt.Errorf("unexpected argument %q", fs.Arg(0))
		fmt.Fprintln(stderr, err)
		return opts, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "season":
			opts.seasons = splitLabels(seasons)
		case "weather":
			opts.weather = splitLabels(weather)
		}
	})

	return opts, nil
}

// splitLabels splits a comma-separated list, dropping blanks. It never returns nil.
func splitLabels(s string) []string {
	labels := lo.FilterMap(strings.Split(s, ","), func(l string, _ int) (string, bool) {
		l = strings.TrimSpace(l)
		return l, l != ""
	})
	return append([]string{}, labels...)
}

// selection applies the filter flags over the dataset's default selection.
func (o options) selection(defaults analytics.Options) analytics.Selection {
	seasons, weather := defaults.Seasons, defaults.Weather
	if o.seasons != nil {
		seasons = o.seasons
	}
	if o.weather != nil {
		weather = o.weather
	}
	return analytics.NewSelection(seasons, weather)
}

// run contains the main application logic, separated for cleaner error handling.
func run(opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logCloser, err := logger.Setup(cfg.LogLevel, cfg.LogPath)
	if err != nil {
		return err
	}
	defer func() { _ = logCloser.Close() }()

	logger.Info("starting", "version", version.GetVersion(), "dataset", cfg.DatasetPath, "report", opts.report)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.report {
		cfg.WatchDataset = false
	}

	svcManager, err := services.NewManager(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	if opts.report {
		return printReport(os.Stdout, svcManager, opts)
	}

	if opts.seasons != nil || opts.weather != nil {
		logger.Warn("filter flags only apply to --report; use the Filters tab instead")
	}

	return runTUI(ctx, svcManager, cfg)
}

func printReport(w io.Writer, svcManager *services.Manager, opts options) error {
	sel := opts.selection(svcManager.Options())
	if err := report.Write(w, svcManager.Report(sel), svcManager.Stats().Records); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func runTUI(ctx context.Context, svcManager *services.Manager, cfg *config.Config) error {
	model := app.NewModel(svcManager)

	state := model.GetState()
	model.SetTabs([]app.Tab{
		overview.New(state),
		hourly.New(state),
		filters.New(state),
		info.New(state, cfg),
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage(w io.Writer) {
	fmt.Fprintf(w, `Bike Sharing Dashboard - rental analytics in the terminal

Usage:
  bsd [flags]

Flags:
  -h, --help          Show this help message
  -v, --version       Show version information
  --report            Print every view as text and exit
  --season LIST       Comma-separated seasons for --report (empty selects none)
  --weather LIST      Comma-separated weather conditions for --report (empty selects none)

Keyboard Shortcuts:
  1-4             Switch between tabs (Overview, Hourly, Filters, Info)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Navigate lists
  Space/Enter     Toggle a filter label
  r               Reload dataset
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  %-18s CSV dataset path (default: %s)
  %-18s SQLite record store path (empty disables it)
  %-18s Reload when the CSV changes (default: true)
  %-18s Debounce for file change reloads (default: 250ms)
  %-18s Desktop notification on reload (default: false)
  %-18s debug, info, warn or error
  %-18s Log file path

Configuration:
  The application looks for .env files in the current directory,
  ~/.config/bikeshare-tui/.env and the two parent directories.
`,
		config.EnvDatasetPath, "bike_sharing.csv",
		config.EnvDatabasePath,
		config.EnvWatchDataset,
		config.EnvReloadDebounce,
		config.EnvNotifyOnReload,
		config.EnvLogLevel,
		config.EnvLogPath,
	)
}
