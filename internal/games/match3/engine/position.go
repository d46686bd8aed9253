// Package engine implements the match-3 grid engine: board state, run detection,
// no-match generation, cascade resolution and the swap/turn controller.
// It is UI-agnostic and deterministic for a given random source; visual layers
// learn about changes only through Observer notifications.
package engine

import "fmt"

// Position addresses a board cell. Column grows to the right, Row grows
// downward; row 0 is the top of the board. Spawn origins may carry negative
// rows, meaning "above the visible grid".
type Position struct {
	Column int
	Row    int
}

// P is a convenience constructor for Position.
func P(column, row int) Position {
	return Position{Column: column, Row: row}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Column, p.Row)
}

// Add returns a new Position offset by (dc, dr).
func (p Position) Add(dc, dr int) Position {
	return Position{Column: p.Column + dc, Row: p.Row + dr}
}

// Manhattan returns the Manhattan distance to another position.
func (p Position) Manhattan(other Position) int {
	dc := p.Column - other.Column
	dr := p.Row - other.Row
	if dc < 0 {
		dc = -dc
	}
	if dr < 0 {
		dr = -dr
	}
	return dc + dr
}

// Adjacent reports whether other is exactly one step away horizontally or
// vertically. Diagonal neighbours and the position itself are not adjacent.
func (p Position) Adjacent(other Position) bool {
	return p.Manhattan(other) == 1
}

// Less orders positions row-major (top row first, then left to right).
func (p Position) Less(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Column < other.Column
}
