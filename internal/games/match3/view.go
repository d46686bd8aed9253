package match3

import (
	"math"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

const (
	hudRows    = 2 // Title and counters above the board
	footerRows = 2 // Message line and banner below the board
)

// view maps the engine's world layout onto terminal cells. The board frame
// is centred on the screen; one world unit spans cellW by cellH characters.
type view struct {
	layout engine.Layout
	cellW  int
	cellH  int
	board  core.Rect // Static cell area, used for hit-testing
}

func newView(l engine.Layout, cellW, cellH, screenW, screenH int) view {
	frame := l.Frame(0)
	sx := float64(cellW) / l.CellSize
	sy := float64(cellH) / l.CellSize

	// Screen cell of the frame centre, offset by the HUD
	midX := float64(screenW) / 2
	midY := float64(hudRows) + float64(screenH-hudRows-footerRows)/2

	left := int(math.Round(midX - frame.CenterX*sx - float64(cellW)/2))
	top := int(math.Round(midY + frame.CenterY*sy - float64(cellH)/2))

	return view{
		layout: l,
		cellW:  cellW,
		cellH:  cellH,
		board:  core.NewRect(left, top, l.Columns*cellW, l.Rows*cellH),
	}
}

// fits reports whether the board, its padding and the HUD fit on screen.
func (v view) fits(screenW, screenH int) bool {
	frame := v.layout.Frame(0)
	// The padding of the frame also holds the border, so two rows are shared
	needH := int(math.Ceil(2*frame.HalfHeight*float64(v.cellH)/v.layout.CellSize)) + hudRows + footerRows - 2
	needW := v.board.W + 2
	return screenW >= needW && screenH >= needH
}

// toScreen converts fractional grid coordinates to the top-left character of
// the cell, going through the world layout.
func (v view) toScreen(c, r float64) (int, int) {
	x0, y0 := v.layout.CellOrigin(engine.P(0, 0))
	wx := x0 + c*v.layout.CellSize
	wy := y0 - r*v.layout.CellSize
	sx := float64(v.cellW) / v.layout.CellSize
	sy := float64(v.cellH) / v.layout.CellSize
	return v.board.X + int(math.Round(wx*sx)), v.board.Y + int(math.Round(-wy*sy))
}

// hit returns the board position under screen cell (x, y). Positions outside
// the board are still returned so that a release off the board can be
// reported as an invalid move.
func (v view) hit(x, y int) (engine.Position, bool) {
	if col, row, ok := v.board.Grid(x, y, v.cellW, v.cellH); ok {
		return engine.P(col, row), true
	}
	col := floorDiv(x-v.board.X, v.cellW)
	row := floorDiv(y-v.board.Y, v.cellH)
	return engine.P(col, row), false
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
