// Package storage provides SQLite persistence for ranking snapshots:
// replace-by-date loading plus the read-back queries used for reporting.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/yschen25/apprank/internal/scrape"
	// SQLite database driver (CGO-free)
	_ "modernc.org/sqlite"
)

// Store wraps the embedded SQLite database file.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database file and ensures the schema
// exists. The schema is create-if-absent only; existing tables are
// never dropped or altered.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection; the pipelines are strictly sequential.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initSchema() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 30000",
	}
	for _, pragma := range pragmas {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute pragma %s: %w", pragma, err)
		}
	}

	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadSnapshot imports a snapshot in a single transaction. Rows for the
// snapshot's batch date are deleted first, so reloading the same day is
// idempotent in final-state terms (last load wins). Any failure rolls
// back the whole load; there are no partial commits.
func (s *Store) LoadSnapshot(snap *scrape.Snapshot) error {
	day, err := snap.BatchDate()
	if err != nil {
		return err
	}
	date := day.Format("2006-01-02")
	// Same-date errors rows are matched with a half-open range over the
	// canonical ISO timestamps rather than the engine's date() parsing.
	dayStart := scrape.FormatTimestamp(day)
	dayEnd := scrape.FormatTimestamp(day.AddDate(0, 0, 1))

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM apps WHERE date = ?`, date); err != nil {
		return fmt.Errorf("failed to delete existing apps for %s: %w", date, err)
	}
	if _, err := tx.Exec(
		`DELETE FROM errors WHERE timestamp >= ? AND timestamp < ?`,
		dayStart, dayEnd,
	); err != nil {
		return fmt.Errorf("failed to delete existing errors for %s: %w", date, err)
	}

	insertApp, err := tx.Prepare(`
		INSERT INTO apps (name, version, ranking, url, date, timestamp, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare apps insert: %w", err)
	}
	defer func() { _ = insertApp.Close() }()

	insertError, err := tx.Prepare(`
		INSERT INTO errors (name, url, error_message, timestamp, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare errors insert: %w", err)
	}
	defer func() { _ = insertError.Close() }()

	// One created_at for every row of the load, distinct from the
	// per-record scrape timestamp.
	createdAt := scrape.FormatTimestamp(time.Now())

	for _, rec := range snap.Apps {
		if rec.Failed() {
			if _, err := insertError.Exec(rec.Name, rec.URL, rec.Error, rec.Timestamp, createdAt); err != nil {
				return fmt.Errorf("failed to insert error record %s: %w", rec.URL, err)
			}
			continue
		}
		if rec.Version == nil {
			return fmt.Errorf("record %s is missing the version field", rec.URL)
		}
		if _, err := insertApp.Exec(rec.Name, *rec.Version, int(rec.Ranking), rec.URL, date, rec.Timestamp, createdAt); err != nil {
			return fmt.Errorf("failed to insert app record %s: %w", rec.URL, err)
		}
	}

	return tx.Commit()
}

// AppRow is a stored app record as read back for reporting.
type AppRow struct {
	Name      string
	Version   string
	Ranking   int
	URL       string
	Date      string
	Timestamp string
}

// ErrorRow is a stored failure record as read back for reporting.
type ErrorRow struct {
	Name      string
	URL       string
	Message   string
	Timestamp string
}

// TopApps returns up to limit apps ordered by ascending ranking.
func (s *Store) TopApps(limit int) ([]AppRow, error) {
	rows, err := s.db.Query(`
		SELECT name, version, ranking, url, date, timestamp
		FROM apps
		ORDER BY ranking ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query apps: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var apps []AppRow
	for rows.Next() {
		var a AppRow
		if err := rows.Scan(&a.Name, &a.Version, &a.Ranking, &a.URL, &a.Date, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan app row: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// RecentErrors returns up to limit failure records, newest first.
// Ordering by the ISO timestamp text is chronological because the
// format is lexically monotonic.
func (s *Store) RecentErrors(limit int) ([]ErrorRow, error) {
	rows, err := s.db.Query(`
		SELECT name, url, error_message, timestamp
		FROM errors
		ORDER BY timestamp DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query errors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var errs []ErrorRow
	for rows.Next() {
		var e ErrorRow
		if err := rows.Scan(&e.Name, &e.URL, &e.Message, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan error row: %w", err)
		}
		errs = append(errs, e)
	}
	return errs, rows.Err()
}

// CountAppsByDate reports how many app rows exist for a batch date.
func (s *Store) CountAppsByDate(date string) (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM apps WHERE date = ?`, date).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count apps: %w", err)
	}
	return n, nil
}
