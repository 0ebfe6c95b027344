package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"pomodoro/internal/core/timekeeper"
)

const historyFileName = "history.db"

const historySchema = `
CREATE TABLE IF NOT EXISTS intervals (
	id              TEXT PRIMARY KEY,
	phase           TEXT NOT NULL,
	round           INTEGER NOT NULL,
	started_at      INTEGER NOT NULL,
	deadline        INTEGER NOT NULL,
	ended_at        INTEGER NOT NULL,
	overrun_seconds INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_intervals_ended_at ON intervals(ended_at);
`

// HistoryEntry is a finished interval as stored.
type HistoryEntry struct {
	ID       string
	Phase    timekeeper.Phase
	Round    uint64
	Started  time.Time
	Deadline time.Time
	Ended    time.Time
	Overrun  time.Duration
}

// History records finished intervals in SQLite.
type History struct {
	db *sql.DB
}

// HistoryPath returns the database location inside dir.
func HistoryPath(dir string) string {
	return filepath.Join(dir, historyFileName)
}

// OpenHistory opens the history database at path, creating it as needed.
// ":memory:" opens a private in-memory database.
func OpenHistory(path string) (*History, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	// One connection keeps ":memory:" a single database and serializes writers.
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("set WAL mode: %w", err)
		}
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history: %w", err)
	}
	return &History{db: db}, nil
}

// Close releases the database.
func (history *History) Close() error {
	return history.db.Close()
}

// Record stores a finished interval and returns its id.
func (history *History) Record(ctx context.Context, interval timekeeper.Interval) (string, error) {
	id := uuid.NewString()
	_, err := history.db.ExecContext(ctx,
		`INSERT INTO intervals (id, phase, round, started_at, deadline, ended_at, overrun_seconds)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id,
		string(interval.Phase),
		int64(interval.Round),
		interval.Started.UnixMilli(),
		interval.Deadline.UnixMilli(),
		interval.Ended.UnixMilli(),
		int64(interval.Overrun()/time.Second),
	)
	if err != nil {
		return "", fmt.Errorf("record interval: %w", err)
	}
	return id, nil
}

// Recent returns up to limit intervals, newest first.
func (history *History) Recent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := history.db.QueryContext(ctx,
		`SELECT id, phase, round, started_at, deadline, ended_at, overrun_seconds
		 FROM intervals ORDER BY ended_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var (
			entry                    HistoryEntry
			phase                    string
			round                    int64
			started, deadline, ended int64
			overrunSeconds           int64
		)
		if err := rows.Scan(&entry.ID, &phase, &round, &started, &deadline, &ended, &overrunSeconds); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		entry.Phase = timekeeper.Phase(phase)
		entry.Round = uint64(round)
		entry.Started = time.UnixMilli(started)
		entry.Deadline = time.UnixMilli(deadline)
		entry.Ended = time.UnixMilli(ended)
		entry.Overrun = time.Duration(overrunSeconds) * time.Second
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

// CompletedWork counts work intervals that ended at or after since.
func (history *History) CompletedWork(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := history.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM intervals WHERE phase = ? AND ended_at >= ?`,
		string(timekeeper.PhaseWorking), since.UnixMilli(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count work intervals: %w", err)
	}
	return count, nil
}
