// Package storage persists the play log: one record per finished game.
// Records are a history, not a leaderboard; nothing is ranked.
package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// End reasons recorded with each session.
const (
	EndGameOver = "game_over" // A spawned piece did not fit
	EndQuit     = "quit"      // Player left before the game ended
)

// Record describes one finished game.
type Record struct {
	ID        int64         `json:"id"`
	GameID    string        `json:"game_id"`
	Player    string        `json:"player"`
	Pieces    int           `json:"pieces"`
	Rows      int           `json:"rows"`
	Duration  time.Duration `json:"duration"`
	EndReason string        `json:"end_reason"`
	CreatedAt time.Time     `json:"created_at"`
}

// Totals aggregates all records of a game.
type Totals struct {
	GameID     string
	Games      int
	Pieces     int64
	Rows       int64
	PlayTime   time.Duration
	LastPlayed time.Time
}

// History is a play log backend.
type History interface {
	// SaveSession stores a record and returns its ID.
	SaveSession(ctx context.Context, rec Record) (int64, error)

	// RecentSessions returns up to limit records for the game, newest first.
	RecentSessions(ctx context.Context, gameID string, limit int) ([]Record, error)

	// Totals returns aggregated counters for the game.
	Totals(ctx context.Context, gameID string) (Totals, error)

	// Close releases the backend's resources.
	Close() error
}

// Open opens a history backend. Targets starting with redis:// or
// rediss:// use Redis; anything else is a SQLite file path, where a
// leading ~ expands to the home directory.
func Open(ctx context.Context, target string) (History, error) {
	if strings.HasPrefix(target, "redis://") || strings.HasPrefix(target, "rediss://") {
		r, err := OpenRedis(ctx, target)
		if err != nil {
			return nil, err
		}
		return r, nil
	}

	s, err := OpenSQLite(target)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// defaultLimit applies the fallback page size for non-positive limits.
func defaultLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	return limit
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}
