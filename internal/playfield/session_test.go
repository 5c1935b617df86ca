package playfield

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	b := New(10, 20)
	s := NewSession(b, rand.New(rand.NewSource(3)))

	require.False(t, s.Over())
	assert.Equal(t, b.SpawnPoint(), s.Piece().Pos)
	assert.Equal(t, uint(0), s.Piece().Rotation)
	assert.Equal(t, Stats{}, s.Stats())
}

func TestSessionApplyStopsAtWall(t *testing.T) {
	s := NewSession(New(10, 20), rand.New(rand.NewSource(5)))

	moves := 0
	for s.Apply(Left) {
		moves++
		require.Less(t, moves, 20, "piece walked through the wall")
	}
	assert.Positive(t, moves)

	pos := s.Piece().Pos
	assert.False(t, s.Apply(Left))
	assert.Equal(t, pos, s.Piece().Pos, "rejected move must not change the piece")

	for _, c := range s.Piece().Cells() {
		assert.GreaterOrEqual(t, c.X, 1)
	}
}

func TestSessionGravityLocks(t *testing.T) {
	s := NewSession(New(10, 20), rand.New(rand.NewSource(11)))

	var outcome Outcome
	for range 30 {
		outcome = s.Gravity()
		if outcome != Moved {
			break
		}
	}

	require.Equal(t, Locked, outcome)
	assert.Equal(t, 1, s.Stats().Pieces)
	assert.Equal(t, 4, countCells(s.Board(), Block))
	assert.Equal(t, s.Board().SpawnPoint(), s.Piece().Pos)
}

func TestSessionLockClearsRow(t *testing.T) {
	s := &Session{
		board: New(4, 4),
		piece: Piece{Shape: I, Pos: Point{2, 3}, Rotation: 1},
		rng:   rand.New(rand.NewSource(1)),
	}

	require.Equal(t, Locked, s.Gravity())
	assert.Equal(t, Stats{Pieces: 1, Rows: 1}, s.Stats())
	assert.Equal(t, New(4, 4).Rows(), s.Board().Rows())
	assert.False(t, s.Over())
}

func TestSessionOverWhenSpawnBlocked(t *testing.T) {
	b := New(4, 4)
	fillRow(b, 1, 1, 2, 3, 4)

	s := NewSession(b, rand.New(rand.NewSource(1)))
	require.True(t, s.Over())

	assert.False(t, s.Apply(Left))
	assert.Equal(t, Over, s.Gravity())
	// With no legal placement the frame is the bare board.
	assert.Equal(t, b.Rows(), s.Frame().Rows())
}

func TestSessionEventuallyEnds(t *testing.T) {
	s := NewSession(New(4, 6), rand.New(rand.NewSource(2024)))

	for range 10000 {
		if s.Gravity() == Over {
			break
		}
	}
	require.True(t, s.Over())
	assert.Positive(t, s.Stats().Pieces)
}

func TestSessionFrameDoesNotLock(t *testing.T) {
	s := NewSession(New(10, 20), rand.New(rand.NewSource(8)))

	frame := s.Frame()
	assert.Equal(t, 4, countCells(frame, Block))
	assert.Equal(t, 0, countCells(s.Board(), Block))
}
