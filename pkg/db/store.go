package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store keeps saved runs in a SQLite database.
type Store struct {
	sql *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{sql: db}
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	s := NewStore(db)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.sql.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id     TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	source     TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	n_rows     INTEGER NOT NULL,
	n_cols     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS run_columns (
	run_id   TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	name     TEXT NOT NULL,
	kind     TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
);
CREATE TABLE IF NOT EXISTS run_values (
	run_id   TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
	row_idx  INTEGER NOT NULL,
	position INTEGER NOT NULL,
	num      REAL,
	str      TEXT,
	PRIMARY KEY (run_id, row_idx, position)
);
CREATE INDEX IF NOT EXISTS runs_created_at ON runs(created_at);
`

// Migrate creates the tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.sql.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := s.sql.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
