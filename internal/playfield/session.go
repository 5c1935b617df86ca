package playfield

import "math/rand"

// Outcome describes what a gravity tick did.
type Outcome uint8

const (
	Moved Outcome = iota
	Locked
	Over
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case Moved:
		return "Moved"
	case Locked:
		return "Locked"
	case Over:
		return "Over"
	default:
		return "Unknown"
	}
}

// Stats counts what happened during a session.
type Stats struct {
	Pieces int // Pieces locked into the board
	Rows   int // Rows removed by ClearFullRows
}

// Session is the active-piece state machine: it owns one board and one
// piece and applies commands and gravity strictly one at a time.
// A Session is not safe for concurrent use.
type Session struct {
	board *Board
	piece Piece
	rng   *rand.Rand
	over  bool
	stats Stats
}

// NewSession starts a session on board and spawns the first piece.
// If that piece does not fit, the session is already over.
func NewSession(board *Board, rng *rand.Rand) *Session {
	s := &Session{
		board: board,
		rng:   rng,
	}
	s.spawn()
	return s
}

// spawn replaces the active piece and ends the game if it cannot be placed.
func (s *Session) spawn() {
	s.piece = Spawn(s.rng, s.board.SpawnPoint())
	if _, ok := s.board.TryPlace(s.piece); !ok {
		s.over = true
	}
}

// Apply attempts a player command. Illegal moves are dropped silently
// and reported as false.
func (s *Session) Apply(cmd Command) bool {
	if s.over {
		return false
	}
	next := s.piece.Apply(cmd)
	if _, ok := s.board.TryPlace(next); !ok {
		return false
	}
	s.piece = next
	return true
}

// Gravity performs one timer-driven Down. When the piece cannot fall it is
// locked, full rows are cleared and a new piece spawns.
func (s *Session) Gravity() Outcome {
	if s.over {
		return Over
	}

	next := s.piece.Apply(Down)
	if _, ok := s.board.TryPlace(next); ok {
		s.piece = next
		return Moved
	}

	locked, ok := s.board.TryPlace(s.piece)
	if !ok {
		// Only reachable if the board changed under the piece.
		s.over = true
		return Over
	}
	s.board = locked
	s.stats.Pieces++
	s.stats.Rows += s.board.ClearFullRows()

	s.spawn()
	if s.over {
		return Over
	}
	return Locked
}

// Frame returns the board with the active piece drawn in. The result is
// for display only. Once the game is over the bare board is returned.
func (s *Session) Frame() *Board {
	if frame, ok := s.board.TryPlace(s.piece); ok {
		return frame
	}
	return s.board
}

// Board returns the board of locked cells.
func (s *Session) Board() *Board {
	return s.board
}

// Piece returns the active piece.
func (s *Session) Piece() Piece {
	return s.piece
}

// Over reports whether a freshly spawned piece failed to fit.
func (s *Session) Over() bool {
	return s.over
}

// Stats returns the session counters.
func (s *Session) Stats() Stats {
	return s.stats
}
