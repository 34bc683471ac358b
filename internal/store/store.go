// Package store persists interview sessions, their turn-by-turn
// transcripts, and final reports in a local SQLite database. Writes are
// append-only during a session; the history and report commands read
// them back.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite handle and provides access to repositories.
type Store struct {
	db *sql.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Transcripts returns the transcript repository backed by this store.
func (s *Store) Transcripts() (*TranscriptRepo, error) {
	seq, err := newSequenceCounter(s.db)
	if err != nil {
		return nil, err
	}
	return &TranscriptRepo{db: s.db, seq: seq}, nil
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// migrate creates the schema. Statements are idempotent; there is no
// versioned migration history for a single-user local database.
func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id          TEXT PRIMARY KEY,
			role        TEXT NOT NULL,
			company     TEXT NOT NULL DEFAULT '',
			seniority   TEXT NOT NULL,
			started_at  TIMESTAMP NOT NULL,
			finished_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS turns (
			seq           INTEGER PRIMARY KEY,
			session_id    TEXT NOT NULL REFERENCES sessions(id),
			turn          INTEGER NOT NULL,
			question_id   TEXT NOT NULL,
			question_text TEXT NOT NULL,
			question_type TEXT NOT NULL,
			tier          TEXT NOT NULL,
			answer        TEXT NOT NULL,
			score         REAL NOT NULL,
			confidence    TEXT NOT NULL,
			star          TEXT NOT NULL,
			feedback      TEXT NOT NULL,
			elapsed_ms    INTEGER NOT NULL,
			skipped       INTEGER NOT NULL DEFAULT 0,
			negotiation   INTEGER NOT NULL DEFAULT 0,
			created_at    TIMESTAMP NOT NULL,
			UNIQUE (session_id, turn)
		)`,
		`CREATE INDEX IF NOT EXISTS turns_session_idx ON turns (session_id, turn)`,
		`CREATE TABLE IF NOT EXISTS global_sequence (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			next_val INTEGER NOT NULL DEFAULT 1
		)`,
		`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`,
		`CREATE TABLE IF NOT EXISTS reports (
			session_id    TEXT PRIMARY KEY REFERENCES sessions(id),
			created_at    TIMESTAMP NOT NULL,
			average_score REAL NOT NULL,
			confidence    TEXT NOT NULL,
			star_coverage REAL NOT NULL,
			body          TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. PREPTERM_DB environment variable
// 2. $XDG_DATA_HOME/prepterm/prepterm.db
// 3. ~/.local/share/prepterm/prepterm.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("PREPTERM_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "prepterm", "prepterm.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
