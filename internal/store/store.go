// Package store handles SQLite persistence: connection setup, pragmas,
// schema migration, and default database location.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the database handle shared by the repositories.
type Store struct {
	db *sql.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and runs migration.
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

// DB returns the underlying *sql.DB for the repositories.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for single-writer request handling.
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

func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS characters (
			character TEXT PRIMARY KEY,
			readings TEXT NOT NULL,
			radical TEXT NOT NULL DEFAULT '',
			radical_prov TEXT NOT NULL DEFAULT 'page_sourced',
			stroke_count INTEGER NOT NULL DEFAULT 0,
			structure TEXT NOT NULL DEFAULT '',
			structure_prov TEXT NOT NULL DEFAULT 'page_sourced',
			example_words TEXT NOT NULL DEFAULT '[]',
			example_sentence TEXT NOT NULL DEFAULT '',
			example_sentence_prov TEXT NOT NULL DEFAULT 'page_sourced',
			gloss TEXT NOT NULL DEFAULT '',
			gloss_prov TEXT NOT NULL DEFAULT 'page_sourced',
			gloss_zh TEXT NOT NULL DEFAULT '',
			gloss_zh_prov TEXT NOT NULL DEFAULT 'page_sourced',
			frequency_rank INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_characters_rank ON characters(frequency_rank);`,
		`CREATE TABLE IF NOT EXISTS character_bank (
			learner_id TEXT NOT NULL,
			character TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			stage INTEGER NOT NULL DEFAULT 0,
			next_due_at INTEGER,
			first_seen_at TEXT NOT NULL DEFAULT '',
			last_answered_at TEXT NOT NULL DEFAULT '',
			total_correct INTEGER NOT NULL DEFAULT 0,
			total_wrong INTEGER NOT NULL DEFAULT 0,
			total_unknown INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (learner_id, character)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_bank_due ON character_bank(learner_id, next_due_at);`,
		`CREATE TABLE IF NOT EXISTS item_presented (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			learner_id TEXT NOT NULL,
			character TEXT NOT NULL,
			correct_choice TEXT NOT NULL,
			choices TEXT NOT NULL,
			distractor_sources TEXT NOT NULL DEFAULT '[]',
			selection_reason TEXT NOT NULL DEFAULT '',
			occurred_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS item_answered (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			learner_id TEXT NOT NULL,
			character TEXT NOT NULL,
			selected_choice TEXT,
			correct INTEGER NOT NULL,
			i_dont_know INTEGER NOT NULL,
			latency_ms INTEGER,
			score_before INTEGER,
			score_after INTEGER,
			occurred_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_answered_session ON item_answered(session_id);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. HANZIMEM_DB environment variable
// 2. $XDG_DATA_HOME/hanzimem/hanzimem.db
// 3. ~/.local/share/hanzimem/hanzimem.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("HANZIMEM_DB"); p != "" {
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

	p := filepath.Join(dataHome, "hanzimem", "hanzimem.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
