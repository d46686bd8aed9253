package engine

import (
	"fmt"
	"strings"
)

// Board is the authoritative grid of tile slots. Cells are stored in
// row-major order: index = row*columns + column. Dimensions are fixed at
// construction. Board performs no matching logic of its own.
type Board struct {
	columns int
	rows    int
	cells   []Cell
}

// NewBoard creates an empty board with the given dimensions.
func NewBoard(columns, rows int) (*Board, error) {
	if columns <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, columns, rows)
	}
	return &Board{
		columns: columns,
		rows:    rows,
		cells:   make([]Cell, columns*rows),
	}, nil
}

// Columns returns the board width.
func (b *Board) Columns() int {
	return b.columns
}

// Rows returns the board height.
func (b *Board) Rows() int {
	return b.rows
}

// InBounds returns true if the position lies inside the board.
func (b *Board) InBounds(p Position) bool {
	return p.Column >= 0 && p.Column < b.columns && p.Row >= 0 && p.Row < b.rows
}

func (b *Board) index(p Position) int {
	return p.Row*b.columns + p.Column
}

// at and put skip bounds checks; callers guarantee p is in bounds.
func (b *Board) at(p Position) Cell {
	return b.cells[b.index(p)]
}

func (b *Board) put(p Position, c Cell) {
	b.cells[b.index(p)] = c
}

// Get returns the cell at p, or ErrOutOfBounds.
func (b *Board) Get(p Position) (Cell, error) {
	if !b.InBounds(p) {
		return Cell{}, fmt.Errorf("get %s: %w", p, ErrOutOfBounds)
	}
	return b.at(p), nil
}

// Set overwrites the cell at p unconditionally. Nothing is written when p is
// out of bounds.
func (b *Board) Set(p Position, c Cell) error {
	if !b.InBounds(p) {
		return fmt.Errorf("set %s: %w", p, ErrOutOfBounds)
	}
	b.put(p, c)
	return nil
}

// IsAdjacent reports whether a and c are both on the board and exactly one
// step apart horizontally or vertically.
func (b *Board) IsAdjacent(a, c Position) bool {
	return b.InBounds(a) && b.InBounds(c) && a.Adjacent(c)
}

// Swap exchanges the contents of two cells. Adjacency is not required here;
// the Controller enforces it.
func (b *Board) Swap(a, c Position) error {
	if !b.InBounds(a) {
		return fmt.Errorf("swap %s: %w", a, ErrOutOfBounds)
	}
	if !b.InBounds(c) {
		return fmt.Errorf("swap %s: %w", c, ErrOutOfBounds)
	}
	ia, ic := b.index(a), b.index(c)
	b.cells[ia], b.cells[ic] = b.cells[ic], b.cells[ia]
	return nil
}

// Column returns a copy of one column, top to bottom.
func (b *Board) Column(col int) []Cell {
	if col < 0 || col >= b.columns {
		return nil
	}
	out := make([]Cell, b.rows)
	for row := range b.rows {
		out[row] = b.at(P(col, row))
	}
	return out
}

// Find returns the position of the tile with the given id.
func (b *Board) Find(id TileID) (Position, bool) {
	for i, c := range b.cells {
		if c.Filled && c.Tile.ID == id {
			return P(i%b.columns, i/b.columns), true
		}
	}
	return Position{}, false
}

// FilledCount returns the number of occupied cells.
func (b *Board) FilledCount() int {
	count := 0
	for _, c := range b.cells {
		if c.Filled {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		columns: b.columns,
		rows:    b.rows,
		cells:   cells,
	}
}

// Equal returns true if both boards have the same dimensions and hold the
// same tiles (ids and kinds) at the same positions.
func (b *Board) Equal(other *Board) bool {
	if b.columns != other.columns || b.rows != other.rows {
		return false
	}
	for i, c := range b.cells {
		if c != other.cells[i] {
			return false
		}
	}
	return true
}

// KindGrid returns the kinds on the board indexed [row][column], with -1 for
// empty cells.
func (b *Board) KindGrid() [][]int {
	grid := make([][]int, b.rows)
	for row := range b.rows {
		grid[row] = make([]int, b.columns)
		for col := range b.columns {
			c := b.at(P(col, row))
			if c.Filled {
				grid[row][col] = int(c.Tile.Kind)
			} else {
				grid[row][col] = -1
			}
		}
	}
	return grid
}

// String renders the board one row per line, kinds as letters A, B, C...
// and empty cells as '.'.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow((b.columns + 1) * b.rows)
	for row := range b.rows {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range b.columns {
			c := b.at(P(col, row))
			if !c.Filled {
				sb.WriteByte('.')
				continue
			}
			sb.WriteByte(byte('A' + c.Tile.Kind%26))
		}
	}
	return sb.String()
}

// FromKinds builds a board from a [row][column] kind grid, -1 meaning empty.
// Every tile gets a fresh id from src. Rows must all have the same length.
func FromKinds(grid [][]int, src *Source) (*Board, error) {
	if len(grid) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidDimensions)
	}
	b, err := NewBoard(len(grid[0]), len(grid))
	if err != nil {
		return nil, err
	}
	for row, line := range grid {
		if len(line) != b.columns {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidDimensions, row, len(line), b.columns)
		}
		for col, k := range line {
			if k < 0 {
				continue
			}
			b.put(P(col, row), Filled(src.NewTile(Kind(k))))
		}
	}
	return b, nil
}
