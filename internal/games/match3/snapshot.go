package match3

import (
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

// Snapshot contains the logical game state for comparison and debugging.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick    uint64
	Variant string
	Columns int
	Rows    int

	// Board cells, row-major. Kinds uses -1 for empty cells.
	Kinds []int
	IDs   []uint64

	Phase     string
	Selection string
	PendingC  int
	PendingR  int
	CursorC   int
	CursorR   int
	NoMoves   bool
	Stats     core.SessionStats
	Animating bool
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	b := g.eng.Board()
	ctrl := g.eng.Controller()

	kinds := make([]int, 0, b.Columns()*b.Rows())
	ids := make([]uint64, 0, b.Columns()*b.Rows())
	for _, line := range b.KindGrid() {
		kinds = append(kinds, line...)
	}
	for row := range b.Rows() {
		for col := range b.Columns() {
			c, _ := b.Get(engine.P(col, row))
			ids = append(ids, uint64(c.Tile.ID))
		}
	}

	pending, _ := ctrl.Pending()
	return Snapshot{
		Tick:      g.tick,
		Variant:   string(g.variant),
		Columns:   b.Columns(),
		Rows:      b.Rows(),
		Kinds:     kinds,
		IDs:       ids,
		Phase:     g.eng.Resolver().Phase().String(),
		Selection: ctrl.State().String(),
		PendingC:  pending.Column,
		PendingR:  pending.Row,
		CursorC:   g.cursor.Column,
		CursorR:   g.cursor.Row,
		NoMoves:   g.noMoves,
		Stats:     g.stats,
		Animating: !g.anim.Idle(),
	}
}
