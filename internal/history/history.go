// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists a log of served queries in SQLite. Only request
// telemetry is stored; papers and generated summaries never are.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one recorded query.
type Entry struct {
	Query           string
	MaxResults      int
	Papers          int
	FailedSummaries int
	Elapsed         time.Duration
	At              time.Time
}

// Store manages the query history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path and creates the schema
// if it does not exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	const stmt = `CREATE TABLE IF NOT EXISTS queries (
		rowid INTEGER PRIMARY KEY AUTOINCREMENT,
		query TEXT NOT NULL,
		max_results INTEGER NOT NULL,
		papers INTEGER NOT NULL,
		failed_summaries INTEGER NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		at TEXT NOT NULL
	)`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record appends one served query to the log.
func (s *Store) Record(query string, maxResults, papers, failedSummaries int, elapsed time.Duration) error {
	_, err := s.db.Exec(
		`INSERT INTO queries (query, max_results, papers, failed_summaries, elapsed_ms, at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		query, maxResults, papers, failedSummaries, elapsed.Milliseconds(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first, up to limit
// (default 20).
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT query, max_results, papers, failed_summaries, elapsed_ms, at
		 FROM queries ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var elapsedMS int64
		var at string
		if err := rows.Scan(&e.Query, &e.MaxResults, &e.Papers, &e.FailedSummaries, &elapsedMS, &at); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		if t, parseErr := time.Parse(time.RFC3339, at); parseErr == nil {
			e.At = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
