package engine

import "math"

// Layout maps grid positions to world coordinates. Column c, row r has its
// origin at (c*CellSize, -r*CellSize), so row 0 is at the top and rows grow
// downward in screen space.
type Layout struct {
	Columns  int
	Rows     int
	CellSize float64
}

// Frame is an orthographic view centred on the board.
type Frame struct {
	CenterX    float64
	CenterY    float64
	HalfHeight float64
}

// CellOrigin returns the world coordinates of a cell. Positions above the grid
// (negative rows) map above row 0.
func (l Layout) CellOrigin(p Position) (x, y float64) {
	return float64(p.Column) * l.CellSize, -float64(p.Row) * l.CellSize
}

// Frame fits the whole board into a view with the given height/width aspect
// ratio, keeping one unit of padding above and below.
func (l Layout) Frame(aspect float64) Frame {
	w := float64(l.Columns) * l.CellSize
	h := float64(l.Rows) * l.CellSize

	return Frame{
		CenterX:    w/2 - l.CellSize/2,
		CenterY:    -(h / 2) + l.CellSize/2,
		HalfHeight: math.Max(h/2+1, (w/2)*aspect),
	}
}

// PositionAt returns the cell containing world point (x, y), the inverse of
// CellOrigin for points inside a cell centred on its origin.
func (l Layout) PositionAt(x, y float64) (Position, bool) {
	if l.CellSize <= 0 {
		return Position{}, false
	}
	col := int(math.Floor(x/l.CellSize + 0.5))
	row := int(math.Floor(-y/l.CellSize + 0.5))
	p := P(col, row)
	if col < 0 || col >= l.Columns || row < 0 || row >= l.Rows {
		return p, false
	}
	return p, true
}
