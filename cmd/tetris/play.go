package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (tetris when omitted).

Controls:
  Left/Right - Move the piece
  Up         - Rotate
  Down       - Move down one row
  P          - Pause
  R          - Restart (after game over)
  Q/Ctrl+C   - Quit
  Ctrl+S     - Save a screenshot

Keys can be rebound in the game config (see --config).

Examples:
  tetris play
  tetris play --fps 30
  tetris play --seed 42
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := tetris.GameID
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available games.")
		os.Exit(1)
	}

	logger, err := newLogger("play", nil)
	if err != nil {
		fatal("%v", err)
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fatal("creating game: %v", err)
	}

	history := openHistory(cmd.Context())

	runErr := tui.Run(game, runtimeConfig(), tui.GameOptions{
		History: history,
		Logger:  logger,
		Keys:    gameConfig.Keys,
		Player:  playerName(),
	})

	// Close history before potential exit
	if history != nil {
		history.Close()
	}

	if runErr != nil {
		fatal("running game: %v", runErr)
	}
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openHistory opens the play log named by --db. Failures are reported and
// the game runs without one.
func openHistory(ctx context.Context) storage.History {
	if ctx == nil {
		ctx = context.Background()
	}
	history, err := storage.Open(ctx, flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history: %v\n", err)
		return nil
	}
	return history
}

// playerName is the name recorded with each game.
func playerName() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "player"
}
