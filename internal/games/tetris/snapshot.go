package tetris

import "github.com/vovakirdan/tui-tetris/internal/playfield"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Board   [][]playfield.Cell // Locked cells, walls included
	Piece   playfield.Piece
	Pending int // Queued commands not yet applied
	Pieces  int
	Rows    int
	State   GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.session.Over():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	stats := g.session.Stats()
	return Snapshot{
		Tick:    g.tick,
		Board:   g.session.Board().Rows(),
		Piece:   g.session.Piece(),
		Pending: len(g.queue),
		Pieces:  stats.Pieces,
		Rows:    stats.Rows,
		State:   state,
	}
}
