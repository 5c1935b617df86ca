package playfield

// Cell is the content of a single board position.
type Cell uint8

const (
	Empty Cell = iota
	Wall
	Block
)

// String returns a human-readable name for the cell.
func (c Cell) String() string {
	switch c {
	case Empty:
		return "Empty"
	case Wall:
		return "Wall"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// Board is the playfield grid including its walls: one wall column on
// each side and a wall floor row at the bottom.
type Board struct {
	width  int
	height int
	cells  [][]Cell
}

// New builds an empty board with the given play area.
// The grid is (playWidth+2) wide and (playHeight+1) tall.
func New(playWidth, playHeight int) *Board {
	b := &Board{
		width:  playWidth + 2,
		height: playHeight + 1,
	}
	b.cells = make([][]Cell, b.height)
	for y := range b.cells {
		b.cells[y] = b.emptyRow()
	}
	for x := range b.width {
		b.cells[b.height-1][x] = Wall
	}
	return b
}

// emptyRow returns a fresh row with walls at both edges.
func (b *Board) emptyRow() []Cell {
	row := make([]Cell, b.width)
	row[0] = Wall
	row[b.width-1] = Wall
	return row
}

// Width returns the grid width including walls.
func (b *Board) Width() int {
	return b.width
}

// Height returns the grid height including the floor.
func (b *Board) Height() int {
	return b.height
}

// Contains reports whether (x, y) lies on the grid.
func (b *Board) Contains(p Point) bool {
	return p.X >= 0 && p.X < b.width && p.Y >= 0 && p.Y < b.height
}

// At returns the cell at p. Off-grid positions read as Wall.
func (b *Board) At(p Point) Cell {
	if !b.Contains(p) {
		return Wall
	}
	return b.cells[p.Y][p.X]
}

// Rows returns a copy of the grid, top row first.
func (b *Board) Rows() [][]Cell {
	rows := make([][]Cell, len(b.cells))
	for y, row := range b.cells {
		rows[y] = append([]Cell(nil), row...)
	}
	return rows
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	return &Board{
		width:  b.width,
		height: b.height,
		cells:  b.Rows(),
	}
}

// SpawnPoint is the anchor new pieces appear at: near the horizontal
// center, one row below the top so upward offsets stay on the grid.
func (b *Board) SpawnPoint() Point {
	return Point{X: b.width/2 - 1, Y: 1}
}

// TryPlace returns a copy of the board with the piece's cells set to Block.
// It reports false, and returns nil, if any cell is off-grid or not Empty.
// The receiver is never modified.
func (b *Board) TryPlace(p Piece) (*Board, bool) {
	cells := p.Cells()
	for _, c := range cells {
		if b.At(c) != Empty {
			return nil, false
		}
	}

	next := b.Clone()
	for _, c := range cells {
		next.cells[c.Y][c.X] = Block
	}
	return next, true
}

// rowFull reports whether every interior cell of the row is Block.
func rowFull(row []Cell) bool {
	for _, c := range row[1 : len(row)-1] {
		if c != Block {
			return false
		}
	}
	return true
}

// ClearFullRows removes full rows and pads the top with fresh empty rows
// so the height and the floor stay in place. It returns how many rows
// were removed.
func (b *Board) ClearFullRows() int {
	kept := make([][]Cell, 0, b.height)
	for _, row := range b.cells {
		if !rowFull(row) {
			kept = append(kept, row)
		}
	}

	cleared := b.height - len(kept)
	if cleared == 0 {
		return 0
	}

	fresh := make([][]Cell, 0, b.height)
	for range cleared {
		fresh = append(fresh, b.emptyRow())
	}
	b.cells = append(fresh, kept...)
	return cleared
}
