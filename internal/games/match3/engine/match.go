package engine

import "sort"

// MinRun is the shortest run of equal kinds that counts as a match.
const MinRun = 3

// Axis is the direction of a run.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// String returns the string representation of an axis.
func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// delta returns the step between consecutive cells of a run on this axis.
func (a Axis) delta() (dc, dr int) {
	if a == Horizontal {
		return 1, 0
	}
	return 0, 1
}

// Run is a maximal line of at least MinRun tiles of one kind.
type Run struct {
	Axis   Axis
	Start  Position // Leftmost (horizontal) or topmost (vertical) cell
	Length int
	Kind   Kind
}

// Positions returns the cells covered by the run, in scan order.
func (r Run) Positions() []Position {
	dc, dr := r.Axis.delta()
	out := make([]Position, r.Length)
	for i := range r.Length {
		out[i] = r.Start.Add(i*dc, i*dr)
	}
	return out
}

// MatchSet is a set of matched positions. Overlapping runs share cells, so
// a tile that belongs to two runs appears once.
type MatchSet map[Position]struct{}

// Add inserts positions into the set.
func (m MatchSet) Add(ps ...Position) {
	for _, p := range ps {
		m[p] = struct{}{}
	}
}

// Contains reports whether p is in the set.
func (m MatchSet) Contains(p Position) bool {
	_, ok := m[p]
	return ok
}

// Len returns the number of unique positions.
func (m MatchSet) Len() int {
	return len(m)
}

// Positions returns the set's members sorted row-major.
func (m MatchSet) Positions() []Position {
	out := make([]Position, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Less(out[j])
	})
	return out
}

// FindRuns scans every row left to right and every column top to bottom and
// returns each maximal run of MinRun or more equal kinds. Empty cells break
// runs. Rows are reported before columns.
func FindRuns(b *Board) []Run {
	var runs []Run
	for row := range b.rows {
		runs = scanLine(b, P(0, row), Horizontal, b.columns, runs)
	}
	for col := range b.columns {
		runs = scanLine(b, P(col, 0), Vertical, b.rows, runs)
	}
	return runs
}

// scanLine appends the runs found on one line of n cells starting at start.
func scanLine(b *Board, start Position, axis Axis, n int, runs []Run) []Run {
	dc, dr := axis.delta()
	i := 0
	for i < n {
		first := b.at(start.Add(i*dc, i*dr))
		if !first.Filled {
			i++
			continue
		}

		// Extend while the next tile has the same kind
		j := i + 1
		for j < n && first.SameKind(b.at(start.Add(j*dc, j*dr))) {
			j++
		}

		if j-i >= MinRun {
			runs = append(runs, Run{
				Axis:   axis,
				Start:  start.Add(i*dc, i*dr),
				Length: j - i,
				Kind:   first.Tile.Kind,
			})
		}
		i = j
	}
	return runs
}

// FindMatches returns the union of all runs on the board. It does not
// mutate the board.
func FindMatches(b *Board) MatchSet {
	set := make(MatchSet)
	for _, r := range FindRuns(b) {
		set.Add(r.Positions()...)
	}
	return set
}

// HasMatch reports whether the board holds at least one run.
func HasMatch(b *Board) bool {
	return len(FindRuns(b)) > 0
}

// WouldMatchAt reports whether placing kind at pos would complete a run
// looking only backward: the MinRun-1 cells to the left, or the MinRun-1
// cells above. Cells after pos are ignored, which is what incremental
// row-major construction needs.
func WouldMatchAt(b *Board, pos Position, kind Kind) bool {
	if !b.InBounds(pos) {
		return false
	}
	return backwardRun(b, pos, kind, 1, 0) || backwardRun(b, pos, kind, 0, 1)
}

func backwardRun(b *Board, pos Position, kind Kind, dc, dr int) bool {
	for k := 1; k < MinRun; k++ {
		p := pos.Add(-k*dc, -k*dr)
		if !b.InBounds(p) {
			return false
		}
		c := b.at(p)
		if !c.Filled || c.Tile.Kind != kind {
			return false
		}
	}
	return true
}

// Move is a candidate swap between two adjacent positions.
type Move struct {
	From Position
	To   Position
}

// FindValidMoves returns every adjacent swap that would produce at least one
// match, ordered row-major by From with the rightward swap before the
// downward one. The board is left untouched.
func FindValidMoves(b *Board) []Move {
	work := b.Clone()
	var moves []Move
	for row := range work.rows {
		for col := range work.columns {
			from := P(col, row)
			for _, to := range []Position{from.Add(1, 0), from.Add(0, 1)} {
				if !work.InBounds(to) || work.at(from).SameKind(work.at(to)) {
					continue
				}
				// Swap, test, swap back
				_ = work.Swap(from, to)
				if HasMatch(work) {
					moves = append(moves, Move{From: from, To: to})
				}
				_ = work.Swap(from, to)
			}
		}
	}
	return moves
}
