package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// stubGame is a scripted registry.Game.
type stubGame struct {
	state   core.GameState
	steps   int
	resets  int
	resized bool
	last    core.InputFrame
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++; g.state = core.GameState{} }
func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "stub") }
func (g *stubGame) State() core.GameState { return g.state }
func (g *stubGame) Resize(width, height int) { g.resized = true }
func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.last = in.Clone()
	if in.Has(core.ActionPause) {
		g.state.Paused = !g.state.Paused
	}
	return core.StepResult{State: g.state}
}

func init() {
	registry.Register("stub", func() registry.Game { return &stubGame{} })
}

// memHistory is an in-memory storage.History.
type memHistory struct {
	mu      sync.Mutex
	records []storage.Record
}

func (h *memHistory) SaveSession(_ context.Context, rec storage.Record) (int64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	rec.ID = int64(len(h.records) + 1)
	rec.CreatedAt = time.Now()
	h.records = append(h.records, rec)
	return rec.ID, nil
}

func (h *memHistory) RecentSessions(_ context.Context, gameID string, limit int) ([]storage.Record, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []storage.Record
	for i := len(h.records) - 1; i >= 0 && len(out) < limit; i-- {
		if h.records[i].GameID == gameID {
			out = append(out, h.records[i])
		}
	}
	return out, nil
}

func (h *memHistory) Totals(_ context.Context, gameID string) (storage.Totals, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	t := storage.Totals{GameID: gameID}
	for _, r := range h.records {
		if r.GameID == gameID {
			t.Games++
			t.Pieces += int64(r.Pieces)
			t.Rows += int64(r.Rows)
		}
	}
	return t, nil
}

func (h *memHistory) Close() error { return nil }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestGameModel(g *stubGame, h storage.History) GameModel {
	cfg := core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}
	m := NewGameModel(g, cfg, GameOptions{
		History: h,
		Keys:    config.DefaultTetrisConfig().Keys,
		Player:  "alice",
	})
	m.Init()
	return m
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	require.True(t, ok)
	return gm, cmd
}

func TestGameModelForwardsActions(t *testing.T) {
	g := &stubGame{}
	m := newTestGameModel(g, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, runes("k"))
	m, _ = update(t, m, TickMsg(time.Now()))

	assert.Equal(t, 1, g.steps)
	assert.Equal(t, []core.Action{core.ActionLeft, core.ActionRotate}, g.last.Ordered())

	// Input is cleared after each tick
	update(t, m, TickMsg(time.Now()))
	assert.Empty(t, g.last.Ordered())
}

func TestGameModelRecordsGameOverOnce(t *testing.T) {
	g := &stubGame{}
	h := &memHistory{}
	m := newTestGameModel(g, h)

	m, _ = update(t, m, TickMsg(time.Now()))
	assert.Empty(t, h.records)

	g.state = core.GameState{GameOver: true, Pieces: 12, Rows: 2}
	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, TickMsg(time.Now()))

	require.Len(t, h.records, 1)
	rec := h.records[0]
	assert.Equal(t, "stub", rec.GameID)
	assert.Equal(t, "alice", rec.Player)
	assert.Equal(t, 12, rec.Pieces)
	assert.Equal(t, 2, rec.Rows)
	assert.Equal(t, storage.EndGameOver, rec.EndReason)

	// Restart starts a fresh game that can be recorded again
	m, _ = update(t, m, runes("r"))
	m, _ = update(t, m, TickMsg(time.Now()))
	assert.Equal(t, 2, g.resets)
	assert.False(t, m.State().GameOver)

	g.state = core.GameState{GameOver: true, Pieces: 3}
	update(t, m, TickMsg(time.Now()))
	assert.Len(t, h.records, 2)
}

func TestGameModelQuitRecordsAbandonedGame(t *testing.T) {
	g := &stubGame{}
	h := &memHistory{}
	m := newTestGameModel(g, h)

	g.state = core.GameState{Pieces: 4, Rows: 1}
	m, _ = update(t, m, TickMsg(time.Now()))

	m, cmd := update(t, m, runes("q"))
	assert.True(t, m.IsQuitting())
	assert.NotNil(t, cmd)

	require.Len(t, h.records, 1)
	assert.Equal(t, storage.EndQuit, h.records[0].EndReason)
}

func TestGameModelQuitWithoutPiecesIsNotRecorded(t *testing.T) {
	h := &memHistory{}
	m := newTestGameModel(&stubGame{}, h)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.IsQuitting())
	assert.Empty(t, h.records)
}

func TestGameModelBackOnlyWhenPausedOrOver(t *testing.T) {
	g := &stubGame{}
	m := newTestGameModel(g, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.BackToMenu())

	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, runes("p"))
	m, _ = update(t, m, TickMsg(time.Now()))
	require.True(t, m.State().Paused)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.BackToMenu())
	assert.False(t, m.IsQuitting())
}

func TestGameModelResizeKeepsGame(t *testing.T) {
	g := &stubGame{}
	m := newTestGameModel(g, nil)

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 50})
	assert.True(t, g.resized)
	assert.Equal(t, 1, g.resets)
}

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetColor(3, 1, '▮', core.ColorCyan)

	assert.Equal(t, s.String(), RenderScreen(s))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in       time.Duration
		expected string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{90*time.Second + 400*time.Millisecond, "1:30"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.expected {
			t.Errorf("formatDuration(%v) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}

func TestHistoryModelShowsSessions(t *testing.T) {
	h := &memHistory{}
	_, err := h.SaveSession(context.Background(), storage.Record{
		GameID: "stub", Player: "alice", Pieces: 9, Rows: 1, EndReason: storage.EndGameOver,
	})
	require.NoError(t, err)

	m := NewHistoryModel(h, 120, 40)
	view := m.View()
	assert.Contains(t, view, "HISTORY - Stub")
	assert.Contains(t, view, "alice")
	assert.Contains(t, view, "Games 1")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, next.(HistoryModel).IsGoingBack())
}

func TestHistoryModelWithoutBackend(t *testing.T) {
	m := NewHistoryModel(nil, 80, 24)
	assert.Contains(t, m.View(), "History is not available.")
}

func TestSessionModelFlow(t *testing.T) {
	h := &memHistory{}
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
	var m tea.Model = NewSessionModel(cfg, GameOptions{
		History: h,
		Keys:    config.DefaultTetrisConfig().Keys,
		Player:  "bob",
	})

	// Menu -> history -> menu
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.NotNil(t, m.(SessionModel).historyView)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Nil(t, m.(SessionModel).historyView)

	// Menu -> game
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.(SessionModel).gameModel)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "stub")

	// Quit from the game ends the session
	m, _ = m.Update(runes("q"))
	assert.True(t, m.(SessionModel).quitting)
	assert.Empty(t, m.View())
}
