package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/j-veylop/bikeshare-dashboard-tui/internal/logger"
	"github.com/j-veylop/bikeshare-dashboard-tui/internal/models"
)

// ReplaceObservations swaps the stored observations for records and records the import.
// Everything happens in one transaction; imp.ID and imp.ImportedAt are filled in on success.
func (db *DB) ReplaceObservations(ctx context.Context, imp *models.DatasetImport, records []models.Observation) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM observations"); err != nil {
		return fmt.Errorf("failed to clear observations: %w", err)
	}

	importedAt := time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO dataset_imports (source, size, mod_time_ns, row_count, rejected, imported_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		imp.Source,
		imp.Size,
		imp.ModTime.UnixNano(),
		len(records),
		imp.Rejected,
		importedAt.Format(sqlTimestampLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert import: %w", err)
	}
	importID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read import id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO observations (seq, import_id, `+sqlObservationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare observation insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx,
			i+1,
			importID,
			nullDate(r.Date),
			r.Season,
			r.Weather,
			nullHour(r.Hour),
			r.DailyCount,
			r.HourlyCount,
		); err != nil {
			return fmt.Errorf("failed to insert observation %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	imp.ID = importID
	imp.RowCount = len(records)
	imp.ImportedAt = importedAt.Truncate(time.Second)
	logger.Debug("stored observations", "source", imp.Source, "rows", len(records), "import_id", importID)

	return nil
}

// LoadObservations returns every stored observation in insertion order.
func (db *DB) LoadObservations(ctx context.Context) ([]models.Observation, error) {
	rows, err := db.QueryContext(ctx, "SELECT "+sqlObservationColumns+" FROM observations ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []models.Observation
	for rows.Next() {
		r, err := scanObservation(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate observations: %w", err)
	}

	return records, nil
}

// CountObservations returns the number of stored observations.
func (db *DB) CountObservations(ctx context.Context) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM observations").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count observations: %w", err)
	}
	return n, nil
}

// LatestImport returns the most recent import of source, or nil if there is none.
func (db *DB) LatestImport(ctx context.Context, source string) (*models.DatasetImport, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, source, size, mod_time_ns, row_count, rejected, imported_at
		FROM dataset_imports
		WHERE source = ?
		ORDER BY id DESC
		LIMIT 1`, source)

	imp, err := scanImport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest import: %w", err)
	}
	return imp, nil
}

// ImportHistory returns up to limit imports, newest first.
func (db *DB) ImportHistory(ctx context.Context, limit int) ([]models.DatasetImport, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, source, size, mod_time_ns, row_count, rejected, imported_at
		FROM dataset_imports
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query import history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var imports []models.DatasetImport
	for rows.Next() {
		imp, err := scanImport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan import: %w", err)
		}
		imports = append(imports, *imp)
	}
	return imports, rows.Err()
}

// LabelCounts returns how many stored observations carry each label of a dimension,
// in order of first appearance.
func (db *DB) LabelCounts(ctx context.Context, dim models.Dimension) ([]models.LabelCount, error) {
	var column string
	switch dim {
	case models.DimensionSeason:
		column = "season"
	case models.DimensionWeather:
		column = "weather"
	default:
		return nil, fmt.Errorf("unknown dimension %d", dim)
	}

	query := fmt.Sprintf(`
		SELECT %[1]s, COUNT(*), MIN(seq) AS first_seq
		FROM observations
		GROUP BY %[1]s
		ORDER BY first_seq`, column)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query label counts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var counts []models.LabelCount
	for rows.Next() {
		var lc models.LabelCount
		var first int64
		if err := rows.Scan(&lc.Label, &lc.Count, &first); err != nil {
			return nil, fmt.Errorf("failed to scan label count: %w", err)
		}
		counts = append(counts, lc)
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanObservation(s scanner) (models.Observation, error) {
	var r models.Observation
	var date sql.NullString
	var hour sql.NullInt64

	if err := s.Scan(&date, &r.Season, &r.Weather, &hour, &r.DailyCount, &r.HourlyCount); err != nil {
		return r, fmt.Errorf("failed to scan observation: %w", err)
	}

	r.Hour = models.NoHour
	if hour.Valid {
		r.Hour = int(hour.Int64)
	}
	if date.Valid {
		d, err := time.Parse(sqlDateLayout, date.String)
		if err != nil {
			logger.Warn("invalid stored observation date", "value", date.String, "error", err)
		} else {
			r.Date = d
		}
	}
	return r, nil
}

func scanImport(s scanner) (*models.DatasetImport, error) {
	var imp models.DatasetImport
	var modTimeNs int64
	var importedAt string

	if err := s.Scan(&imp.ID, &imp.Source, &imp.Size, &modTimeNs, &imp.RowCount, &imp.Rejected, &importedAt); err != nil {
		return nil, err
	}

	imp.ModTime = time.Unix(0, modTimeNs)
	if t, err := time.Parse(sqlTimestampLayout, importedAt); err == nil {
		imp.ImportedAt = t
	}
	return &imp, nil
}

func nullDate(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(sqlDateLayout), Valid: true}
}

func nullHour(h int) sql.NullInt64 {
	if h < 0 || h > 23 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(h), Valid: true}
}
