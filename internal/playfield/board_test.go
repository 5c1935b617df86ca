package playfield

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillRow sets the given interior columns of row y to Block.
func fillRow(b *Board, y int, xs ...int) {
	for _, x := range xs {
		b.cells[y][x] = Block
	}
}

// countCells counts cells of the given kind.
func countCells(b *Board, kind Cell) int {
	n := 0
	for _, row := range b.Rows() {
		for _, c := range row {
			if c == kind {
				n++
			}
		}
	}
	return n
}

func TestNewBoardDimensions(t *testing.T) {
	tests := []struct {
		w, h int
	}{
		{1, 1},
		{4, 4},
		{10, 20},
		{7, 3},
	}

	for _, tc := range tests {
		b := New(tc.w, tc.h)
		rows := b.Rows()

		require.Len(t, rows, tc.h+1)
		assert.Equal(t, tc.w+2, b.Width())
		assert.Equal(t, tc.h+1, b.Height())

		for y, row := range rows {
			require.Len(t, row, tc.w+2)
			assert.Equal(t, Wall, row[0], "left wall at row %d", y)
			assert.Equal(t, Wall, row[tc.w+1], "right wall at row %d", y)
		}
		for x := range tc.w + 2 {
			assert.Equal(t, Wall, rows[tc.h][x], "floor at column %d", x)
		}
		for y := range tc.h {
			for x := 1; x <= tc.w; x++ {
				assert.Equal(t, Empty, rows[y][x], "interior (%d, %d)", x, y)
			}
		}
	}
}

func TestNewBoardContent(t *testing.T) {
	b := New(10, 20)

	assert.Equal(t, Wall, b.At(Point{0, 0}))
	assert.Equal(t, Empty, b.At(Point{1, 0}))
	assert.Equal(t, Wall, b.At(Point{11, 0}))
	assert.Equal(t, Wall, b.At(Point{0, 20}))
	assert.Equal(t, Wall, b.At(Point{1, 20}))
	assert.Equal(t, Wall, b.At(Point{11, 20}))
}

func TestTryPlaceVerticalI(t *testing.T) {
	b := New(10, 20)
	placed, ok := b.TryPlace(Piece{Shape: I, Pos: Point{1, 1}})
	require.True(t, ok)

	for y := range 4 {
		assert.Equal(t, Block, placed.At(Point{1, y}), "row %d", y)
	}
	assert.Equal(t, 4, countCells(placed, Block))
}

func TestTryPlaceDoesNotMutateReceiver(t *testing.T) {
	b := New(10, 20)
	before := b.Rows()

	piece := Piece{Shape: T, Pos: Point{5, 5}, Rotation: 2}
	placed, ok := b.TryPlace(piece)
	require.True(t, ok)
	assert.Equal(t, before, b.Rows())

	occupied := make(map[Point]bool)
	for _, c := range piece.Cells() {
		occupied[c] = true
	}

	after := placed.Rows()
	for y := range before {
		for x := range before[y] {
			p := Point{x, y}
			if occupied[p] {
				assert.Equal(t, Block, after[y][x], "occupied cell %v", p)
			} else {
				assert.Equal(t, before[y][x], after[y][x], "untouched cell %v", p)
			}
		}
	}
}

func TestTryPlaceRejections(t *testing.T) {
	b := New(10, 20)

	tests := []struct {
		name  string
		piece Piece
	}{
		{"overlaps left wall", Piece{Shape: O, Pos: Point{0, 5}}},
		{"overlaps right wall", Piece{Shape: O, Pos: Point{11, 5}}},
		{"overlaps floor", Piece{Shape: I, Pos: Point{5, 18}}},
		{"above the top", Piece{Shape: I, Pos: Point{5, 0}}},
		{"far off grid", Piece{Shape: T, Pos: Point{-10, -10}}},
		{"below the grid", Piece{Shape: S, Pos: Point{5, 40}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			placed, ok := b.TryPlace(tc.piece)
			assert.False(t, ok)
			assert.Nil(t, placed)
		})
	}
}

func TestTryPlaceTwiceFails(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := New(10, 20)

	for range 200 {
		piece := Piece{
			Shape:    Shape(rng.Intn(ShapeCount)),
			Pos:      Point{rng.Intn(12), rng.Intn(21)},
			Rotation: uint(rng.Intn(8)),
		}
		placed, ok := b.TryPlace(piece)
		if !ok {
			continue
		}
		_, again := placed.TryPlace(piece)
		assert.False(t, again, "double placement of %+v", piece)
	}
}

// TestTryPlaceLegality checks TryPlace against a direct cell-by-cell check
// on randomly filled boards.
func TestTryPlaceLegality(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for range 50 {
		b := New(6, 8)
		for range 30 {
			x, y := 1+rng.Intn(6), rng.Intn(8)
			if rng.Intn(3) == 0 {
				fillRow(b, y, x)
			}
		}

		for range 40 {
			piece := Piece{
				Shape:    Shape(rng.Intn(ShapeCount)),
				Pos:      Point{rng.Intn(10) - 1, rng.Intn(12) - 1},
				Rotation: uint(rng.Intn(4)),
			}

			want := true
			for _, c := range piece.Cells() {
				inside := c.X >= 0 && c.X < b.Width() && c.Y >= 0 && c.Y < b.Height()
				if !inside || b.cells[c.Y][c.X] != Empty {
					want = false
				}
			}

			_, ok := b.TryPlace(piece)
			assert.Equal(t, want, ok, "piece %+v", piece)
		}
	}
}

func TestClearFullRowsSingle(t *testing.T) {
	b := New(4, 4)

	placed, ok := b.TryPlace(Piece{Shape: I, Pos: Point{2, 3}, Rotation: 1})
	require.True(t, ok)
	for x := 1; x <= 4; x++ {
		require.Equal(t, Block, placed.At(Point{x, 3}))
	}

	cleared := placed.ClearFullRows()
	assert.Equal(t, 1, cleared)

	row := placed.Rows()[3]
	assert.Equal(t, []Cell{Wall, Empty, Empty, Empty, Empty, Wall}, row)
	assert.Equal(t, New(4, 4).Rows(), placed.Rows())
}

func TestClearFullRowsShiftsRemainingRows(t *testing.T) {
	b := New(4, 4)
	fillRow(b, 1, 1, 2, 3, 4)
	fillRow(b, 2, 2)
	fillRow(b, 3, 1, 2, 3, 4)

	cleared := b.ClearFullRows()
	require.Equal(t, 2, cleared)

	rows := b.Rows()
	require.Len(t, rows, 5)

	fresh := []Cell{Wall, Empty, Empty, Empty, Empty, Wall}
	assert.Equal(t, fresh, rows[0])
	assert.Equal(t, fresh, rows[1])
	assert.Equal(t, fresh, rows[2])
	assert.Equal(t, []Cell{Wall, Empty, Block, Empty, Empty, Wall}, rows[3])
	assert.Equal(t, []Cell{Wall, Wall, Wall, Wall, Wall, Wall}, rows[4])
}

func TestClearFullRowsNoop(t *testing.T) {
	b := New(5, 6)
	fillRow(b, 5, 1, 2, 3, 4)
	fillRow(b, 2, 3)
	before := b.Rows()

	assert.Equal(t, 0, b.ClearFullRows())
	assert.Equal(t, before, b.Rows())
	assert.Equal(t, 0, b.ClearFullRows())
	assert.Equal(t, before, b.Rows())
}

func TestClearFullRowsEveryRow(t *testing.T) {
	b := New(3, 3)
	for y := range 3 {
		fillRow(b, y, 1, 2, 3)
	}

	assert.Equal(t, 3, b.ClearFullRows())
	assert.Equal(t, New(3, 3).Rows(), b.Rows())
}

func TestFloorNeverClears(t *testing.T) {
	b := New(1, 1)
	// A one-wide well: a single Block fills the only interior cell of row 0.
	fillRow(b, 0, 1)

	assert.Equal(t, 1, b.ClearFullRows())
	rows := b.Rows()
	assert.Equal(t, []Cell{Wall, Wall, Wall}, rows[1])
	assert.Equal(t, []Cell{Wall, Empty, Wall}, rows[0])
}

func TestSpawnPoint(t *testing.T) {
	assert.Equal(t, Point{5, 1}, New(10, 20).SpawnPoint())
	assert.Equal(t, Point{2, 1}, New(4, 4).SpawnPoint())
}
