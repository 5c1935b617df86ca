package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/playfield"
)

const (
	hudHeight    = 3 // Title, counters, blank line
	footerHeight = 2 // Blank line, controls
)

const controlsHint = "←→ Move | ↑ Rotate | ↓ Drop | P Pause | Q Quit"

// Glyphs used for board cells.
const (
	GlyphWall  = '@'
	GlyphBlock = '▮'
	GlyphEmpty = ' '
)

// Glyph returns the character drawn for a board cell.
func Glyph(c playfield.Cell) rune {
	switch c {
	case playfield.Wall:
		return GlyphWall
	case playfield.Block:
		return GlyphBlock
	default:
		return GlyphEmpty
	}
}

// shapeColors gives every falling shape its own color.
var shapeColors = [playfield.ShapeCount]core.Color{
	playfield.I: core.ColorCyan,
	playfield.O: core.ColorYellow,
	playfield.S: core.ColorGreen,
	playfield.Z: core.ColorRed,
	playfield.J: core.ColorBlue,
	playfield.L: core.ColorOrange,
	playfield.T: core.ColorMagenta,
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.session == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	board := g.session.Board()
	wellW := board.Width()
	wellH := board.Height()
	wellX := (g.screenW - wellW) / 2
	wellY := hudHeight

	g.renderHUD(dst, wellX, wellW)
	g.renderWell(dst, board, wellX, wellY)
	if !g.session.Over() {
		g.renderPiece(dst, wellX, wellY)
	}
	dst.DrawTextCentered(wellY+wellH+footerHeight-1, controlsHint)

	g.renderOverlays(dst, core.NewRect(wellX, wellY, wellW, wellH))
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title and the session counters.
func (g *Game) renderHUD(dst *core.Screen, wellX, wellW int) {
	dst.DrawTextCentered(0, "TETRIS")

	state := g.State()
	counters := fmt.Sprintf("Pieces %d  Rows %d", state.Pieces, state.Rows)
	x := wellX + (wellW-len(counters))/2
	if x < 0 {
		x = 0
	}
	dst.DrawText(x, 1, counters)
}

// renderWell draws walls, floor and locked blocks.
func (g *Game) renderWell(dst *core.Screen, board *playfield.Board, x0, y0 int) {
	for y, row := range board.Rows() {
		for x, c := range row {
			color := core.ColorDefault
			if c == playfield.Wall {
				color = core.ColorGray
			}
			dst.SetColor(x0+x, y0+y, Glyph(c), color)
		}
	}
}

// renderPiece draws the active piece in its shape color.
func (g *Game) renderPiece(dst *core.Screen, x0, y0 int) {
	piece := g.session.Piece()
	color := shapeColors[piece.Shape]
	for _, p := range piece.Cells() {
		dst.SetColor(x0+p.X, y0+p.Y, GlyphBlock, color)
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, well core.Rect) {
	if g.paused {
		g.drawOverlay(dst, well, "PAUSED", "P to resume")
		return
	}

	if g.session.Over() {
		g.drawOverlay(dst, well, "GAME OVER", "R to restart")
	}
}

// drawOverlay draws a text box centered on the well.
func (g *Game) drawOverlay(dst *core.Screen, well core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := well.Centered(maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawText(box.X+(box.W-len(line))/2, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return controlsHint
}
