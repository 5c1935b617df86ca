package classic

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/playfield"
)

// GameOverMessage is printed once a spawned piece does not fit.
const GameOverMessage = "GameOver"

// Runner plays one game in line mode.
type Runner struct {
	out      io.Writer
	keymap   Keymap
	board    config.BoardConfig
	interval time.Duration
	seed     int64
	logger   *log.Logger
}

// NewRunner creates a runner writing frames to out.
// A nil logger discards log output.
func NewRunner(cfg config.TetrisConfig, out io.Writer, seed int64, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Runner{
		out:      out,
		keymap:   KeymapFromConfig(cfg.Classic),
		board:    cfg.Board,
		interval: cfg.Gravity.Interval,
		seed:     seed,
		logger:   logger,
	}
}

// Run reads commands from in until the game ends or ctx is done.
// It returns the session counters; ctx cancellation is reported as ctx.Err().
func (r *Runner) Run(ctx context.Context, in io.Reader) (playfield.Stats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	session := playfield.NewSession(
		playfield.New(r.board.Width, r.board.Height),
		rand.New(rand.NewSource(r.seed)),
	)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Debug("starting line mode", "width", r.board.Width, "height", r.board.Height, "gravity", r.interval)
	return r.loop(ctx, session, readLines(ctx, in, r.logger), ticker.C)
}

// readLines forwards lines from in until EOF, a read error or ctx is done.
// The channel is closed when reading stops.
func readLines(ctx context.Context, in io.Reader, logger *log.Logger) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			logger.Warn("input read failed", "error", err)
		}
	}()
	return lines
}

// loop redraws the frame, then waits for exactly one event: an input line
// or a gravity tick. Closed input leaves gravity running alone.
func (r *Runner) loop(ctx context.Context, session *playfield.Session, lines <-chan string, ticks <-chan time.Time) (playfield.Stats, error) {
	for {
		if session.Over() {
			if _, err := fmt.Fprintln(r.out, GameOverMessage); err != nil {
				return session.Stats(), fmt.Errorf("classic: write: %w", err)
			}
			r.logger.Info("game over", "pieces", session.Stats().Pieces, "rows", session.Stats().Rows)
			return session.Stats(), nil
		}

		if err := Draw(r.out, session.Frame()); err != nil {
			return session.Stats(), fmt.Errorf("classic: draw: %w", err)
		}

		select {
		case <-ctx.Done():
			return session.Stats(), ctx.Err()

		case line, ok := <-lines:
			if !ok {
				r.logger.Debug("input closed")
				lines = nil
				continue
			}
			cmd, err := r.keymap.Parse(line)
			if err != nil {
				r.logger.Debug("ignoring input", "line", line)
				continue
			}
			session.Apply(cmd)

		case <-ticks:
			if session.Gravity() == playfield.Locked {
				r.logger.Debug("piece locked", "rows", session.Stats().Rows)
			}
		}
	}
}
