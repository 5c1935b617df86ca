// Package playfield implements the falling-block board and piece model.
// It has no rendering or timing code: front ends drive a Session and draw
// whatever Board it exposes.
package playfield

import "fmt"

// Point is a cell coordinate or offset. X grows to the right, Y grows down.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Shape identifies one of the seven tetrominoes.
type Shape uint8

const (
	I Shape = iota
	O
	S
	Z
	J
	L
	T
)

// ShapeCount is the number of distinct shapes.
const ShapeCount = 7

// rotations holds the offset table for each shape, indexed by Shape.
// Table lengths follow each shape's rotational symmetry: O has a single
// state, I/S/Z two, J/L/T four.
var rotations = [ShapeCount][][4]Point{
	I: {
		{{0, 0}, {0, -1}, {0, 1}, {0, 2}},
		{{0, 0}, {-1, 0}, {1, 0}, {2, 0}},
	},
	O: {
		{{0, 0}, {1, 0}, {0, -1}, {1, -1}},
	},
	S: {
		{{0, 0}, {-1, 0}, {0, -1}, {1, -1}},
		{{0, 0}, {0, -1}, {1, 0}, {1, 1}},
	},
	Z: {
		{{0, 0}, {1, 0}, {0, -1}, {-1, -1}},
		{{0, 0}, {0, 1}, {1, 0}, {1, -1}},
	},
	J: {
		{{0, 0}, {0, -1}, {0, 1}, {-1, 1}},
		{{0, 0}, {1, 0}, {-1, 0}, {-1, -1}},
		{{0, 0}, {0, 1}, {0, -1}, {1, -1}},
		{{0, 0}, {-1, 0}, {1, 0}, {1, 1}},
	},
	L: {
		{{0, 0}, {0, -1}, {0, 1}, {1, 1}},
		{{0, 0}, {1, 0}, {-1, 0}, {-1, 1}},
		{{0, 0}, {0, 1}, {0, -1}, {-1, -1}},
		{{0, 0}, {-1, 0}, {1, 0}, {1, -1}},
	},
	T: {
		{{0, 0}, {0, -1}, {1, 0}, {-1, 0}},
		{{0, 0}, {1, 0}, {0, 1}, {0, -1}},
		{{0, 0}, {0, 1}, {-1, 0}, {1, 0}},
		{{0, 0}, {-1, 0}, {0, -1}, {0, 1}},
	},
}

// Shapes returns all shapes in declaration order.
func Shapes() []Shape {
	return []Shape{I, O, S, Z, J, L, T}
}

// States returns the number of distinct rotation states of the shape.
func (s Shape) States() int {
	return len(rotations[s])
}

// Offsets returns the four offsets for the given rotation.
// The rotation is reduced modulo States, so any value is valid.
func (s Shape) Offsets(rotation uint) [4]Point {
	table := rotations[s]
	return table[rotation%uint(len(table))]
}

// String returns the single-letter name of the shape.
func (s Shape) String() string {
	switch s {
	case I:
		return "I"
	case O:
		return "O"
	case S:
		return "S"
	case Z:
		return "Z"
	case J:
		return "J"
	case L:
		return "L"
	case T:
		return "T"
	default:
		return "?"
	}
}

// ParseShape converts a single-letter name back to a Shape.
func ParseShape(name string) (Shape, error) {
	for _, s := range Shapes() {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("playfield: unknown shape %q", name)
}
