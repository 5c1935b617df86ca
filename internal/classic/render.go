package classic

import (
	"bufio"
	"io"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/playfield"
)

// clearScreen erases the terminal and homes the cursor.
const clearScreen = "\x1b[2J\x1b[0;0H"

// Draw clears the terminal and writes the board, one line per row.
func Draw(w io.Writer, b *playfield.Board) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(clearScreen)
	for _, row := range b.Rows() {
		for _, c := range row {
			bw.WriteRune(tetris.Glyph(c))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
