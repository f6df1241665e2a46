// Package dataset reads the merged day/hour rental CSV into observation records.
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/samber/lo"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// Column names of the merged dataset.
const (
	ColumnDate    = "dteday"
	ColumnSeason  = "season_day"
	ColumnWeather = "weathersit_day"
	ColumnHour    = "hr"
	ColumnDaily   = "cnt_day"
	ColumnHourly  = "cnt_hour"
)

// dateLayout is the format of the dteday column.
const dateLayout = "2006-01-02"

var requiredColumns = []string{ColumnSeason, ColumnWeather, ColumnHour, ColumnDaily, ColumnHourly}

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

var (
	seasonCodes = map[string]string{
		"1": models.SeasonSpring,
		"2": models.SeasonSummer,
		"3": models.SeasonFall,
		"4": models.SeasonWinter,
	}
	weatherCodes = map[string]string{
		"1": models.WeatherClear,
		"2": models.WeatherMist,
		"3": models.WeatherLightRain,
		"4": models.WeatherHeavyRain,
	}
)

// RowError describes a rejected CSV row. Line is 1-based and counts the header.
type RowError struct {
	Line   int
	Column string
	Value  string
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: column %s value %q: %s", e.Line, e.Column, e.Value, e.Reason)
}

// Result is the outcome of a load. Records keep file order.
type Result struct {
	Records  []models.Observation
	Rejected []RowError
}

// HourlyRecords returns the number of records that carry an hour of day.
func (r *Result) HourlyRecords() int {
	return lo.CountBy(r.Records, func(o models.Observation) bool { return o.HasHour() })
}

// LoadFile opens path and loads it with Load.
func LoadFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// Load parses a CSV stream. Invalid rows are collected in Result.Rejected and skipped;
// only an unreadable stream or a missing column fails the whole load. A header
// without rows yields an empty result.
func Load(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	header, hasRows, err := readHeader(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	if err := checkColumns(header); err != nil {
		return nil, err
	}
	if !hasRows {
		return &Result{Records: []models.Observation{}}, nil
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", df.Err)
	}
	names := df.Names()

	cols := make(map[string][]string, len(requiredColumns)+1)
	for _, name := range requiredColumns {
		cols[name] = df.Col(name).Records()
	}
	if slices.Contains(names, ColumnDate) {
		cols[ColumnDate] = df.Col(ColumnDate).Records()
	}

	result := &Result{Records: make([]models.Observation, 0, df.Nrow())}
	for i := range df.Nrow() {
		rec, rowErr := parseRow(cols, i)
		if rowErr != nil {
			result.Rejected = append(result.Rejected, *rowErr)
			continue
		}
		result.Records = append(result.Records, rec)
	}
	return result, nil
}

// readHeader returns the header row and whether any row follows it.
// gota refuses a frame without rows, so the header is checked here first.
func readHeader(data []byte) ([]string, bool, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, false, errors.New("empty file")
	}
	if err != nil {
		return nil, false, err
	}

	_, err = cr.Read()
	return header, !errors.Is(err, io.EOF), nil
}

func checkColumns(header []string) error {
	missing := lo.Filter(requiredColumns, func(c string, _ int) bool {
		return !slices.Contains(header, c)
	})
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

func parseRow(cols map[string][]string, i int) (models.Observation, *RowError) {
	line := i + 2
	cell := func(col string) string {
		values, ok := cols[col]
		if !ok {
			return ""
		}
		return strings.TrimSpace(values[i])
	}
	reject := func(col, reason string) *RowError {
		return &RowError{Line: line, Column: col, Value: cell(col), Reason: reason}
	}

	var rec models.Observation
	var ok bool

	if rec.Season, ok = normalizeLabel(cell(ColumnSeason), seasonCodes); !ok {
		return rec, reject(ColumnSeason, "unknown season")
	}
	if rec.Weather, ok = normalizeLabel(cell(ColumnWeather), weatherCodes); !ok {
		return rec, reject(ColumnWeather, "unknown weather condition")
	}

	hour, err := parseHour(cell(ColumnHour))
	if err != nil {
		return rec, reject(ColumnHour, err.Error())
	}
	rec.Hour = hour

	if rec.DailyCount, err = parseCount(cell(ColumnDaily)); err != nil {
		return rec, reject(ColumnDaily, err.Error())
	}
	if rec.HourlyCount, err = parseCount(cell(ColumnHourly)); err != nil {
		if hour != models.NoHour || !isMissing(cell(ColumnHourly)) {
			return rec, reject(ColumnHourly, err.Error())
		}
		rec.HourlyCount = 0
	}

	if raw := cell(ColumnDate); !isMissing(raw) {
		if rec.Date, err = time.Parse(dateLayout, raw); err != nil {
			return rec, reject(ColumnDate, "invalid date")
		}
	}

	return rec, nil
}

// isMissing matches empty cells and the markers gota uses for NaN strings.
func isMissing(v string) bool {
	switch v {
	case "", "NaN", "NA", "<nil>":
		return true
	}
	return false
}

// normalizeLabel maps numeric codes to labels and passes textual labels through.
func normalizeLabel(raw string, codes map[string]string) (string, bool) {
	if isMissing(raw) {
		return "", false
	}
	if label, ok := codes[raw]; ok {
		return label, true
	}
	if _, err := strconv.Atoi(raw); err == nil {
		return "", false
	}
	return raw, true
}

func parseHour(raw string) (int, error) {
	if isMissing(raw) {
		return models.NoHour, nil
	}
	h, err := parseInt(raw)
	if err != nil {
		return 0, err
	}
	if h < 0 || h > 23 {
		return 0, errors.New("hour out of range")
	}
	return h, nil
}

func parseCount(raw string) (int, error) {
	n, err := parseInt(raw)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New("negative count")
	}
	return n, nil
}

// parseInt accepts plain integers and integral floats such as "985.0".
func parseInt(raw string) (int, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("not a number")
	}
	if f != math.Trunc(f) {
		return 0, errors.New("not an integer")
	}
	if f >= math.MaxInt || f < math.MinInt {
		return 0, errors.New("out of range")
	}
	return int(f), nil
}
