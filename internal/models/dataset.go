package models

import "time"

// DatasetImport records one successful load of the CSV into the record store.
type DatasetImport struct {
	ID         int64
	Source     string
	Size       int64
	ModTime    time.Time
	RowCount   int
	Rejected   int
	ImportedAt time.Time
}

// Matches reports whether the import was taken from a file with the given size and mtime.
func (d *DatasetImport) Matches(size int64, modTime time.Time) bool {
	if d == nil {
		return false
	}
	return d.Size == size && d.ModTime.Equal(modTime)
}

// LabelCount is the number of observations carrying a label.
type LabelCount struct {
	Label string
	Count int
}

// DatasetStats summarizes the dataset currently held in memory.
type DatasetStats struct {
	Source     string
	Records    int
	Hourly     int
	Rejected   int
	FromCache  bool
	LoadedAt   time.Time
	ImportedAt time.Time
}

// DailyOnly returns the number of observations without an hour of day.
func (s DatasetStats) DailyOnly() int {
	return s.Records - s.Hourly
}
