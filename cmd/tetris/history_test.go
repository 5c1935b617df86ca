package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func TestPrintHistory(t *testing.T) {
	ctx := context.Background()
	history, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer history.Close()

	var out bytes.Buffer
	require.NoError(t, printHistory(ctx, &out, history, "tetris", 10))
	assert.Equal(t, "No Tetris games recorded yet.\n", out.String())

	_, err = history.SaveSession(ctx, storage.Record{
		GameID: "tetris", Player: "alice", Pieces: 12, Rows: 2,
		Duration: 75 * time.Second, EndReason: storage.EndGameOver,
	})
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, printHistory(ctx, &out, history, "tetris", 10))
	assert.Contains(t, out.String(), "Tetris: 1 games, 12 pieces, 2 rows, played 1m15s")
	assert.Contains(t, out.String(), "alice")
	assert.Contains(t, out.String(), storage.EndGameOver)
}

func TestServerConfigFlagsOverride(t *testing.T) {
	t.Setenv("TETRIS_SSH_ADDR", ":4000")
	t.Setenv("TETRIS_HISTORY", "/tmp/env.db")

	require.NoError(t, serveCmd.Flags().Set("idle-timeout", "5"))
	t.Cleanup(func() {
		flagIdleTimeout = 30
		serveCmd.Flags().Lookup("idle-timeout").Changed = false
	})

	cfg, err := serverConfig(serveCmd)
	require.NoError(t, err)
	assert.Equal(t, ":4000", cfg.Address)
	assert.Equal(t, "/tmp/env.db", cfg.HistoryDSN)
	assert.Equal(t, 5*time.Minute, cfg.IdleTimeout)
}
