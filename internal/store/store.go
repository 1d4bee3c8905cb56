package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"habitkit/internal/streak"
)

const currentVersion = 1

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath, runs migrations and
// purges day-off records from prior months so the monthly quota resets
// naturally at each calendar month boundary.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if _, err := s.PurgeStaleDayOffs(streak.MonthOf(streak.Today())); err != nil {
		db.Close()
		return nil, fmt.Errorf("purge stale day-offs: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS routines (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE COLLATE NOCASE,
		position    INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		updated_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS habits (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		routine_id     TEXT NOT NULL REFERENCES routines(id) ON DELETE CASCADE,
		title          TEXT NOT NULL,
		scheduled_at   TEXT NOT NULL DEFAULT '08:00',
		position       INTEGER NOT NULL DEFAULT 0,
		streak         INTEGER NOT NULL DEFAULT 0,
		last_completed TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		updated_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_habits_routine ON habits(routine_id);

	CREATE TABLE IF NOT EXISTS completions (
		habit_id INTEGER NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
		day      TEXT NOT NULL,
		PRIMARY KEY (habit_id, day)
	);

	CREATE INDEX IF NOT EXISTS idx_completions_day ON completions(day);

	CREATE TABLE IF NOT EXISTS days_off (
		day TEXT PRIMARY KEY
	);

	CREATE TABLE IF NOT EXISTS notes (
		day  TEXT PRIMARY KEY,
		body TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('day_off_limit', '3'),
		('week_start',    'monday'),
		('show_quote',    'true'),
		('scratchpad',    '');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/habitkit/habitkit.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "habitkit", "habitkit.db"), nil
}
