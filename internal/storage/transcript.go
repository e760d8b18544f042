// Copyright (c) 2025 ropbear
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the on-disk session transcript for nscmd.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("transcript store closed")

// =============================================================================
// TRANSCRIPT STORE
// =============================================================================

// TranscriptStore appends every processed command line and its result
// to a SQLite database. The transcript is append-only across runs: a
// fresh session writes under a new session ID and never erases earlier
// entries. Interpreter state itself is not persisted.
type TranscriptStore struct {
	mu      sync.Mutex
	db      *sql.DB
	session string
	seq     int64
}

// Entry is one transcript row.
type Entry struct {
	Session   string
	Seq       int64
	Namespace string
	Input     string
	Output    string
	HasOutput bool
	At        time.Time
}

// OpenTranscript opens (creating if needed) the transcript database at
// path and binds it to a session ID.
func OpenTranscript(path, sessionID string) (*TranscriptStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create transcript directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript database: %w", err)
	}

	// SQLite supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	const schema = `
CREATE TABLE IF NOT EXISTS transcript (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session    TEXT    NOT NULL,
	seq        INTEGER NOT NULL,
	namespace  TEXT    NOT NULL,
	input      TEXT    NOT NULL,
	output     TEXT    NOT NULL,
	has_output INTEGER NOT NULL,
	at         TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transcript_session ON transcript(session, seq);
`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize transcript schema: %w", err)
	}

	return &TranscriptStore{db: db, session: sessionID}, nil
}

// Session returns the session ID entries are written under.
func (s *TranscriptStore) Session() string {
	return s.session
}

// Append records one processed line. Output is stored empty when the
// command produced no result.
func (s *TranscriptStore) Append(namespace, input, output string, hasOutput bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrClosed
	}

	s.seq++
	_, err := s.db.Exec(
		`INSERT INTO transcript (session, seq, namespace, input, output, has_output, at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.session, s.seq, namespace, input, output, boolToInt(hasOutput), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to append transcript entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries of the current session, oldest
// first.
func (s *TranscriptStore) Recent(limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT session, seq, namespace, input, output, has_output, at
		 FROM (
		   SELECT * FROM transcript WHERE session = ? ORDER BY seq DESC LIMIT ?
		 ) ORDER BY seq ASC`,
		s.session, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcript: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e   Entry
			has int
		)
		if err := rows.Scan(&e.Session, &e.Seq, &e.Namespace, &e.Input, &e.Output, &has, &e.At); err != nil {
			return nil, fmt.Errorf("failed to scan transcript row: %w", err)
		}
		e.HasOutput = has != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Sessions returns the distinct session IDs present in the database,
// most recent first.
func (s *TranscriptStore) Sessions() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, ErrClosed
	}

	rows, err := s.db.Query(
		`SELECT session FROM transcript GROUP BY session ORDER BY MAX(at) DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close releases the database handle. Further operations return
// ErrClosed.
func (s *TranscriptStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
