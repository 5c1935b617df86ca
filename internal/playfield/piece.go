package playfield

import "math/rand"

// Command is a discrete movement request for the active piece.
type Command uint8

const (
	Left Command = iota
	Right
	Down
	Rotate
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Rotate:
		return "Rotate"
	default:
		return "Unknown"
	}
}

// Piece is the active falling shape. It is a plain value: every move
// produces a new Piece and legality is decided by Board.TryPlace.
type Piece struct {
	Shape    Shape
	Pos      Point
	Rotation uint
}

// Cells returns the absolute cells the piece occupies, in table order.
func (p Piece) Cells() [4]Point {
	var cells [4]Point
	for i, off := range p.Shape.Offsets(p.Rotation) {
		cells[i] = p.Pos.Add(off)
	}
	return cells
}

// Apply returns the piece moved by cmd. No bounds or collision checks.
func (p Piece) Apply(cmd Command) Piece {
	switch cmd {
	case Left:
		p.Pos.X--
	case Right:
		p.Pos.X++
	case Down:
		p.Pos.Y++
	case Rotate:
		// Wrapping happens on read in Offsets.
		p.Rotation++
	}
	return p
}

// Spawn returns a piece of a uniformly chosen shape at the given anchor.
func Spawn(rng *rand.Rand, at Point) Piece {
	return Piece{
		Shape: Shape(rng.Intn(ShapeCount)),
		Pos:   at,
	}
}
