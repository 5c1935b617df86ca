// Package tetris adapts the playfield state machine to the registry.Game
// interface: it turns platform ticks into gravity and platform actions into
// piece commands.
package tetris

import (
	"math/rand"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/playfield"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// GameID is the registry and history key of the game.
const GameID = "tetris"

// Package-level config shared by every new instance.
var (
	cfgMu         sync.RWMutex
	defaultConfig = config.DefaultTetrisConfig()
)

// SetConfig replaces the configuration used by games created afterwards.
func SetConfig(cfg config.TetrisConfig) {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	defaultConfig = cfg
}

// Config returns the configuration new games start with.
func Config() config.TetrisConfig {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	return defaultConfig
}

// Game implements falling-block play on top of playfield.Session.
type Game struct {
	cfg     config.TetrisConfig
	session *playfield.Session
	tick    uint64

	// Gravity fires every gravityEvery ticks.
	gravityEvery uint64
	sinceGravity uint64

	// Commands waiting for a free tick, oldest first.
	queue []playfield.Command

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

// New creates a game using the package configuration.
func New() *Game {
	return NewWithConfig(Config())
}

// NewWithConfig creates a game with an explicit configuration.
func NewWithConfig(cfg config.TetrisConfig) *Game {
	return &Game{cfg: cfg}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset starts a new game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	board := playfield.New(g.cfg.Board.Width, g.cfg.Board.Height)

	g.session = playfield.NewSession(board, rng)
	g.tick = 0
	g.gravityEvery = gravityTicks(cfg.TickRate, g.cfg.Gravity.Interval)
	g.sinceGravity = 0
	g.queue = g.queue[:0]
	g.paused = false
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts to new terminal dimensions without restarting the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// gravityTicks converts the gravity interval to a whole number of ticks, at least one.
func gravityTicks(tickRate int, interval time.Duration) uint64 {
	n := int64(tickRate) * int64(interval) / int64(time.Second)
	return uint64(max(1, n))
}

// checkScreenSize checks if the screen fits the well and the HUD.
func (g *Game) checkScreenSize() {
	minW := max(g.cfg.Board.Width+2, utf8.RuneCountInString(controlsHint))
	minH := g.cfg.Board.Height + 1 + hudHeight + footerHeight
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick. At most one event reaches the
// session per tick: a due gravity fire, or else the oldest queued command.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if g.session == nil || g.session.Over() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	for _, a := range in.Ordered() {
		if cmd, ok := commandFor(a); ok {
			g.queue = append(g.queue, cmd)
		}
	}

	g.sinceGravity++
	switch {
	case g.sinceGravity >= g.gravityEvery:
		g.sinceGravity = 0
		g.session.Gravity()
	case len(g.queue) > 0:
		cmd := g.queue[0]
		g.queue = g.queue[1:]
		g.session.Apply(cmd)
	}

	if g.session.Over() {
		g.queue = g.queue[:0]
	}

	return core.StepResult{State: g.State()}
}

// commandFor maps platform actions to piece commands.
func commandFor(a core.Action) (playfield.Command, bool) {
	switch a {
	case core.ActionLeft:
		return playfield.Left, true
	case core.ActionRight:
		return playfield.Right, true
	case core.ActionDown:
		return playfield.Down, true
	case core.ActionRotate:
		return playfield.Rotate, true
	default:
		return 0, false
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	stats := g.session.Stats()
	return core.GameState{
		GameOver: g.session.Over(),
		Paused:   g.paused,
		Pieces:   stats.Pieces,
		Rows:     stats.Rows,
	}
}

// Pending returns the number of commands waiting for a tick.
func (g *Game) Pending() int {
	return len(g.queue)
}
