package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/classic"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var flagNoHistory bool

var classicCmd = &cobra.Command{
	Use:   "classic",
	Short: "Play in line mode",
	Long: `Play with line-buffered input: type a command and press Enter.
The board is redrawn after every command and every gravity step.

Default commands:
  a       - Move left
  d       - Move right
  <enter> - Move down
  s       - Rotate

Commands can be rebound in the "classic" section of the game config.
Anything else is ignored. The game ends when a new piece cannot be
placed; Ctrl+C stops it early.

Examples:
  tetris classic
  tetris classic --seed 7
  tetris classic --no-history`,
	Args: cobra.NoArgs,
	Run:  runClassic,
}

func init() {
	classicCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not record the game")
}

func runClassic(_ *cobra.Command, _ []string) {
	logger, err := newLogger("classic", os.Stderr)
	if err != nil {
		fatal("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("line bindings", "keys", classic.KeymapFromConfig(gameConfig.Classic).Help())

	start := time.Now()
	runner := classic.NewRunner(gameConfig, os.Stdout, flagSeed, logger)
	stats, runErr := runner.Run(ctx, os.Stdin)

	reason := storage.EndGameOver
	if runErr != nil {
		if !errors.Is(runErr, context.Canceled) {
			fatal("%v", runErr)
		}
		reason = storage.EndQuit
	}

	if flagNoHistory || stats.Pieces == 0 {
		return
	}

	history := openHistory(context.Background())
	if history == nil {
		return
	}
	defer history.Close()

	saveCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err = history.SaveSession(saveCtx, storage.Record{
		GameID:    tetris.GameID,
		Player:    playerName(),
		Pieces:    stats.Pieces,
		Rows:      stats.Rows,
		Duration:  time.Since(start),
		EndReason: reason,
	})
	if err != nil {
		logger.Warn("could not save game", "error", err)
	}
}
