// Package store reads shift KPI data out of the packhouse SQLite
// database. The ingest jobs own the writes; the dashboard only queries.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store wraps a sql.DB with the dashboard's queries.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// OpenMemory opens an in-memory database (used by tests and demos).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Tables returns the user table names present in the database, for the
// doctor command.
func (s *Store) Tables() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

// schema mirrors the warehouse views the TV display used to query
// directly: one totals row per date-shift, 10-minute buckets per run,
// and run metadata.
const schema = `
CREATE TABLE IF NOT EXISTS shift_totals (
    date_shift_key TEXT PRIMARY KEY,
    day_label TEXT NOT NULL DEFAULT '',
    shift TEXT NOT NULL DEFAULT '',
    is_current_shift INTEGER NOT NULL DEFAULT 0,
    bins_per_hour REAL,
    bin_hour_target_weighted REAL,
    stamper_ppmh REAL,
    packs_manhour_target_weighted REAL,
    total_bins REAL,
    bins_target_full_shift REAL,
    packs_per_bin REAL,
    bph_target_color TEXT NOT NULL DEFAULT '',
    packs_target_color TEXT NOT NULL DEFAULT '',
    bins_at_target_elapsed_color TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS shift_buckets (
    date_shift_key TEXT NOT NULL,
    bucket_start TEXT NOT NULL,
    run_key TEXT NOT NULL DEFAULT '',
    bins_per_hour REAL NOT NULL DEFAULT 0,
    bin_hour_target REAL NOT NULL DEFAULT 0,
    est_packs_per_man_hour REAL NOT NULL DEFAULT 0,
    packs_manhour_target REAL NOT NULL DEFAULT 0,
    minutes_elapsed REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_buckets_shift ON shift_buckets(date_shift_key, bucket_start);

CREATE TABLE IF NOT EXISTS runs (
    run_key TEXT NOT NULL,
    date_d TEXT NOT NULL,
    shift TEXT NOT NULL,
    grower_number TEXT NOT NULL DEFAULT '',
    variety_list TEXT NOT NULL DEFAULT '',
    packs_manhour_target REAL NOT NULL DEFAULT 0,
    bin_hour_target REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_date_shift ON runs(date_d, shift);
`
