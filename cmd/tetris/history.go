package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryPlain bool
)

var historyCmd = &cobra.Command{
	Use:   "history [game]",
	Short: "View recently played games",
	Long: `Show the play log: the most recent games and running totals.

Without a terminal on stdout (or with --plain) the log is printed as text.

Examples:
  tetris history
  tetris history --plain --limit 5
  tetris history --db redis://localhost:6379/0`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 10, "Number of games to show")
	historyCmd.Flags().BoolVar(&flagHistoryPlain, "plain", false, "Print text instead of the interactive view")
}

func runHistory(cmd *cobra.Command, args []string) {
	gameID := tetris.GameID
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fatal("unknown game %q", gameID)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	history, err := storage.Open(ctx, flagDBPath)
	if err != nil {
		fatal("could not open history: %v", err)
	}
	defer history.Close()

	if !flagHistoryPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		cfg := runtimeConfig()
		if _, err := tui.RunHistory(history, cfg.ScreenW, cfg.ScreenH); err != nil {
			fatal("%v", err)
		}
		return
	}

	if err := printHistory(ctx, cmd.OutOrStdout(), history, gameID, flagHistoryLimit); err != nil {
		fatal("%v", err)
	}
}

// printHistory writes the totals line and a table of recent games.
func printHistory(ctx context.Context, out io.Writer, history storage.History, gameID string, limit int) error {
	totals, err := history.Totals(ctx, gameID)
	if err != nil {
		return err
	}

	title := registry.Title(gameID)
	if totals.Games == 0 {
		fmt.Fprintf(out, "No %s games recorded yet.\n", title)
		return nil
	}

	records, err := history.RecentSessions(ctx, gameID, limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: %d games, %d pieces, %d rows, played %s\n\n",
		title, totals.Games, totals.Pieces, totals.Rows, totals.PlayTime.Round(time.Second))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tPLAYER\tPIECES\tROWS\tTIME\tEND\tDATE")
	for _, rec := range records {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%s\t%s\n",
			rec.ID, rec.Player, rec.Pieces, rec.Rows,
			rec.Duration.Round(time.Second), rec.EndReason,
			rec.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
