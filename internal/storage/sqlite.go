// Package storage keeps the history of arena runs in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Run outcomes.
const (
	OutcomeVictory  = "victory"
	OutcomeDefeat   = "defeat"
	OutcomeAbandon  = "abandoned"
	defaultRunLimit = 10
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is one recorded playthrough.
type Run struct {
	ID         int64
	StartedAt  time.Time
	EndedAt    time.Time
	Outcome    string
	Phase      int // last phase reached, 1-based
	Kills      int
	SpellsCast int
	Health     int
}

// Duration returns how long the run lasted.
func (r Run) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			phase INTEGER NOT NULL DEFAULT 1,
			kills INTEGER NOT NULL DEFAULT 0,
			spells_cast INTEGER NOT NULL DEFAULT 0,
			health INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_runs_ended ON runs(ended_at DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(phase DESC, kills DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun stores a finished run and returns its ID. Times are kept with
// millisecond precision.
func (s *Store) RecordRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (started_at, ended_at, outcome, phase, kills, spells_cast, health)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.StartedAt.UnixMilli(), r.EndedAt.UnixMilli(), r.Outcome,
		r.Phase, r.Kills, r.SpellsCast, r.Health,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns returns the latest runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	return s.queryRuns(`ORDER BY ended_at DESC, id DESC`, limit)
}

// BestRuns returns the runs that got furthest: highest phase, then most
// kills, then fastest.
func (s *Store) BestRuns(limit int) ([]Run, error) {
	return s.queryRuns(`ORDER BY phase DESC, kills DESC, (ended_at - started_at) ASC`, limit)
}

func (s *Store) queryRuns(order string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultRunLimit
	}

	rows, err := s.db.Query(
		`SELECT id, started_at, ended_at, outcome, phase, kills, spells_cast, health
		 FROM runs `+order+` LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, ended int64
		if err := rows.Scan(&r.ID, &started, &ended, &r.Outcome, &r.Phase, &r.Kills, &r.SpellsCast, &r.Health); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.StartedAt = time.UnixMilli(started)
		r.EndedAt = time.UnixMilli(ended)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// CountByOutcome returns how many runs ended with each outcome.
func (s *Store) CountByOutcome() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT outcome, COUNT(*) FROM runs GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		counts[outcome] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return counts, nil
}
