// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runlog records pipeline run history in a local SQLite database.
// One row per fetch run: what was asked, what came back, what the merge
// accepted. The catalog itself stays in JSON; this is operational
// reporting only.
package runlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Run is one recorded pipeline run.
type Run struct {
	RanAt       time.Time
	Queries     int
	Fetched     int
	Relevant    int
	Accepted    int
	CatalogSize int
	Errors      []string
}

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the run-history database at path, creating the
// schema if needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating run log directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening run log: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating run log schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		rowid INTEGER PRIMARY KEY AUTOINCREMENT,
		ran_at TEXT NOT NULL,
		queries INTEGER NOT NULL,
		fetched INTEGER NOT NULL,
		relevant INTEGER NOT NULL,
		accepted INTEGER NOT NULL,
		catalog_size INTEGER NOT NULL,
		errors TEXT
	)`)
	return err
}

// Record appends one run to the history.
func (s *Store) Record(ctx context.Context, r Run) error {
	var errsJSON []byte
	if len(r.Errors) > 0 {
		var err error
		errsJSON, err = json.Marshal(r.Errors)
		if err != nil {
			return fmt.Errorf("marshaling run errors: %w", err)
		}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (ran_at, queries, fetched, relevant, accepted, catalog_size, errors)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RanAt.UTC().Format(time.RFC3339), r.Queries, r.Fetched, r.Relevant, r.Accepted,
		r.CatalogSize, string(errsJSON))
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT ran_at, queries, fetched, relevant, accepted, catalog_size, errors
		 FROM runs ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ranAt, errsJSON string
		if err := rows.Scan(&ranAt, &r.Queries, &r.Fetched, &r.Relevant, &r.Accepted, &r.CatalogSize, &errsJSON); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, ranAt); parseErr == nil {
			r.RanAt = t
		}
		if errsJSON != "" {
			if err := json.Unmarshal([]byte(errsJSON), &r.Errors); err != nil {
				return nil, fmt.Errorf("parsing run errors: %w", err)
			}
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// FormatTable writes runs as a human-readable table to w.
func FormatTable(runs []Run, w io.Writer) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No recorded runs.")
		return
	}

	fmt.Fprintf(w, "%-20s  %-7s  %-7s  %-8s  %-8s  %-7s  %s\n",
		"Ran at", "Queries", "Fetched", "Relevant", "Accepted", "Catalog", "Errors")
	for _, r := range runs {
		fmt.Fprintf(w, "%-20s  %-7d  %-7d  %-8d  %-8d  %-7d  %d\n",
			r.RanAt.UTC().Format("2006-01-02 15:04:05"), r.Queries, r.Fetched,
			r.Relevant, r.Accepted, r.CatalogSize, len(r.Errors))
	}
}
