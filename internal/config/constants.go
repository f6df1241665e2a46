package config

import "time"

// Default values
const (
	appDirName = "bikeshare-tui"

	defaultDatasetPath    = "bike_sharing.csv"
	defaultDatabaseFile   = "observations.db"
	defaultLogFile        = "bikeshare.log"
	defaultLogLevel       = "info"
	defaultReloadDebounce = 250 * time.Millisecond
)

// Environment variable names.
const (
	EnvDatasetPath    = "DATASET_PATH"
	EnvDatabasePath   = "DATABASE_PATH"
	EnvWatchDataset   = "WATCH_DATASET"
	EnvReloadDebounce = "RELOAD_DEBOUNCE"
	EnvNotifyOnReload = "NOTIFY_ON_RELOAD"
	EnvLogLevel       = "LOG_LEVEL"
	EnvLogPath        = "LOG_PATH"
)
