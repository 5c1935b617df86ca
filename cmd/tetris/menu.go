package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive game picker",
	Long: `Start an interactive menu to browse and play games.

Navigation:
  Up/Down or W/S or K/J - Move selection
  Enter/Space           - Start selected game
  Tab                   - View history
  Q/Ctrl+C              - Quit

During gameplay:
  B/Esc (paused or after game over) - Return to menu`,
	Run: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) {
	logger, err := newLogger("menu", nil)
	if err != nil {
		fatal("%v", err)
	}

	history := openHistory(cmd.Context())

	runErr := tui.RunSession(runtimeConfig(), tui.GameOptions{
		History: history,
		Logger:  logger,
		Keys:    gameConfig.Keys,
		Player:  playerName(),
	})

	if history != nil {
		history.Close()
	}

	if runErr != nil {
		fatal("%v", runErr)
	}
}
