package tetris

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/playfield"
)

// newTestGame builds a game whose gravity fires every gravityEvery ticks at 10 ticks/s.
func newTestGame(t *testing.T, width, height, gravityEvery int) *Game {
	t.Helper()

	cfg := config.DefaultTetrisConfig()
	cfg.Board.Width = width
	cfg.Board.Height = height
	cfg.Gravity.Interval = time.Duration(gravityEvery) * 100 * time.Millisecond

	g := NewWithConfig(cfg)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 10, Seed: 42})
	require.False(t, g.tooSmall)
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestGravityTicks(t *testing.T) {
	tests := []struct {
		tickRate int
		interval time.Duration
		expected uint64
	}{
		{60, time.Second, 60},
		{10, 200 * time.Millisecond, 2},
		{30, 500 * time.Millisecond, 15},
		{60, 10 * time.Millisecond, 1},
		{0, time.Second, 1},
	}

	for _, tt := range tests {
		if got := gravityTicks(tt.tickRate, tt.interval); got != tt.expected {
			t.Errorf("gravityTicks(%d, %v) = %d, expected %d", tt.tickRate, tt.interval, got, tt.expected)
		}
	}
}

func TestRegistered(t *testing.T) {
	g := New()
	assert.Equal(t, GameID, g.ID())
	assert.Equal(t, "Tetris", g.Title())
}

func TestReset(t *testing.T) {
	g := newTestGame(t, 10, 20, 10)

	snap := g.Snapshot()
	assert.Equal(t, StatePlaying, snap.State)
	assert.Equal(t, uint64(0), snap.Tick)
	assert.Equal(t, playfield.Point{X: 5, Y: 1}, snap.Piece.Pos)
	assert.Len(t, snap.Board, 21)
	assert.Len(t, snap.Board[0], 12)
	assert.Equal(t, core.GameState{}, g.State())
}

func TestOneCommandPerTick(t *testing.T) {
	g := newTestGame(t, 10, 20, 100)
	start := g.Snapshot().Piece.Pos

	g.Step(frame(core.ActionLeft, core.ActionRight))
	assert.Equal(t, start.X-1, g.Snapshot().Piece.Pos.X)
	assert.Equal(t, 1, g.Pending())

	g.Step(core.NewInputFrame())
	assert.Equal(t, start.X, g.Snapshot().Piece.Pos.X)
	assert.Equal(t, 0, g.Pending())
}

func TestGravityWinsOverCommand(t *testing.T) {
	g := newTestGame(t, 10, 20, 2)
	start := g.Snapshot().Piece.Pos

	g.Step(core.NewInputFrame())
	assert.Equal(t, start, g.Snapshot().Piece.Pos)

	// Gravity is due: it fires and the command waits.
	g.Step(frame(core.ActionLeft))
	assert.Equal(t, playfield.Point{X: start.X, Y: start.Y + 1}, g.Snapshot().Piece.Pos)
	assert.Equal(t, 1, g.Pending())

	g.Step(core.NewInputFrame())
	assert.Equal(t, playfield.Point{X: start.X - 1, Y: start.Y + 1}, g.Snapshot().Piece.Pos)
	assert.Equal(t, 0, g.Pending())
}

func TestCommandsKeepArrivalOrder(t *testing.T) {
	g := newTestGame(t, 10, 20, 100)

	g.Step(frame(core.ActionDown, core.ActionLeft))
	pos := g.Snapshot().Piece.Pos
	assert.Equal(t, 2, pos.Y)
	assert.Equal(t, 5, pos.X)

	g.Step(core.NewInputFrame())
	assert.Equal(t, 4, g.Snapshot().Piece.Pos.X)
}

func TestIllegalCommandIsDropped(t *testing.T) {
	g := newTestGame(t, 10, 20, 100)

	for range 20 {
		g.Step(frame(core.ActionLeft))
	}
	pinned := g.Snapshot().Piece.Pos

	g.Step(frame(core.ActionLeft))
	assert.Equal(t, pinned, g.Snapshot().Piece.Pos)
	assert.Equal(t, 0, g.Pending())
}

func TestPauseFreezesGame(t *testing.T) {
	g := newTestGame(t, 10, 20, 1)
	start := g.Snapshot().Piece.Pos

	g.Step(frame(core.ActionPause))
	require.True(t, g.State().Paused)
	assert.Equal(t, StatePaused, g.Snapshot().State)

	for range 5 {
		g.Step(frame(core.ActionLeft))
	}
	assert.Equal(t, start, g.Snapshot().Piece.Pos)
	assert.Equal(t, 0, g.Pending())

	g.Step(frame(core.ActionPause))
	assert.False(t, g.State().Paused)
	assert.Equal(t, start.Y+1, g.Snapshot().Piece.Pos.Y)
}

func TestGameEventuallyEnds(t *testing.T) {
	g := newTestGame(t, 4, 6, 1)

	for i := 0; i < 10000 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}

	state := g.State()
	require.True(t, state.GameOver)
	assert.Positive(t, state.Pieces)
	assert.Equal(t, StateGameOver, g.Snapshot().State)

	// Further input is ignored.
	before := g.Snapshot()
	g.Step(frame(core.ActionLeft, core.ActionPause))
	after := g.Snapshot()
	assert.Equal(t, before.Piece, after.Piece)
	assert.Equal(t, before.Board, after.Board)
	assert.False(t, g.State().Paused)
}

func TestDeterminism(t *testing.T) {
	inputs := []core.InputFrame{
		frame(core.ActionLeft),
		frame(core.ActionRotate, core.ActionRight),
		core.NewInputFrame(),
		frame(core.ActionDown),
		frame(core.ActionRight, core.ActionRight),
	}

	run := func() Snapshot {
		g := newTestGame(t, 10, 20, 3)
		for i := range 2000 {
			g.Step(inputs[i%len(inputs)])
		}
		return g.Snapshot()
	}

	assert.Equal(t, run(), run())
}

func TestResizeKeepsState(t *testing.T) {
	g := newTestGame(t, 10, 20, 1)
	for range 5 {
		g.Step(core.NewInputFrame())
	}
	before := g.Snapshot()

	g.Resize(100, 50)
	assert.Equal(t, before.Piece, g.Snapshot().Piece)

	g.Resize(10, 5)
	assert.Equal(t, StatePausedSmall, g.Snapshot().State)
	g.Step(core.NewInputFrame())
	assert.Equal(t, before.Piece, g.Snapshot().Piece)
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, '@', Glyph(playfield.Wall))
	assert.Equal(t, '▮', Glyph(playfield.Block))
	assert.Equal(t, ' ', Glyph(playfield.Empty))
}

func TestRender(t *testing.T) {
	g := newTestGame(t, 10, 20, 100)
	screen := core.NewScreen(80, 40)
	g.Render(screen)

	out := screen.String()
	assert.Contains(t, out, "TETRIS")
	assert.Contains(t, out, "Pieces 0  Rows 0")
	assert.Equal(t, 20*2+12, strings.Count(out, "@"))
	assert.Equal(t, 4, strings.Count(out, "▮"))

	piece := g.Snapshot().Piece
	want := shapeColors[piece.Shape]
	colored := 0
	for y := range screen.Height() {
		for x := range screen.Width() {
			c := screen.GetCell(x, y)
			if c.Rune == GlyphBlock {
				assert.Equal(t, want, c.Color)
				colored++
			}
			if c.Rune == GlyphWall {
				assert.Equal(t, core.ColorGray, c.Color)
			}
		}
	}
	assert.Equal(t, 4, colored)
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t, 10, 20, 100)
	screen := core.NewScreen(80, 40)

	g.Step(frame(core.ActionPause))
	g.Render(screen)
	assert.Contains(t, screen.String(), "PAUSED")

	over := newTestGame(t, 4, 6, 1)
	for i := 0; i < 10000 && !over.State().GameOver; i++ {
		over.Step(core.NewInputFrame())
	}
	over.Render(screen)
	assert.Contains(t, screen.String(), "GAME OVER")
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, 10, 20, 100)
	g.Resize(20, 10)

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Window too small")
}
