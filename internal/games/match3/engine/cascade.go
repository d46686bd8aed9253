package engine

import "fmt"

// Phase is a state of the cascade resolver.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseDetecting
	PhaseRemoving
	PhaseCollapsing
	PhaseRefilling
)

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDetecting:
		return "detecting"
	case PhaseRemoving:
		return "removing"
	case PhaseCollapsing:
		return "collapsing"
	case PhaseRefilling:
		return "refilling"
	default:
		return "unknown"
	}
}

// Report summarises one cascade run from Begin back to Idle.
type Report struct {
	Passes  int // Detecting passes that found matches
	Removed int // Tiles cleared
	Moved   int // Tiles shifted by gravity
	Spawned int // Refill tiles created
}

// Resolver runs the detect → remove → collapse → refill loop until the board
// holds no runs. Each Step performs one phase's mutation synchronously, so a
// driver may insert arbitrary delays between phases without changing the
// final board.
type Resolver struct {
	board    *Board
	source   *Source
	kinds    []Kind
	observer Observer

	phase   Phase
	matched MatchSet
	report  Report
}

// NewResolver creates an idle resolver operating on board. Refill tiles are
// drawn uniformly from kinds using src.
func NewResolver(board *Board, src *Source, kinds []Kind, obs Observer) *Resolver {
	return &Resolver{
		board:    board,
		source:   src,
		kinds:    kinds,
		observer: orNop(obs),
	}
}

// Phase returns the current phase.
func (r *Resolver) Phase() Phase {
	return r.phase
}

// Busy reports whether a cascade is in progress.
func (r *Resolver) Busy() bool {
	return r.phase != PhaseIdle
}

// Report returns the counters of the current or most recent run.
func (r *Resolver) Report() Report {
	return r.report
}

// Begin starts a cascade at the Detecting phase.
func (r *Resolver) Begin() error {
	if r.Busy() {
		return fmt.Errorf("begin in phase %s: %w", r.phase, ErrCascadeInProgress)
	}
	r.report = Report{}
	r.matched = nil
	r.phase = PhaseDetecting
	return nil
}

// Step executes the current phase and returns the next one. Stepping while
// idle does nothing.
func (r *Resolver) Step() Phase {
	switch r.phase {
	case PhaseDetecting:
		matched := FindMatches(r.board)
		if matched.Len() == 0 {
			r.matched = nil
			r.phase = PhaseIdle
			break
		}
		r.matched = matched
		r.report.Passes++
		r.phase = PhaseRemoving

	case PhaseRemoving:
		r.remove()
		r.phase = PhaseCollapsing

	case PhaseCollapsing:
		for col := range r.board.columns {
			r.report.Moved += CollapseColumn(r.board, col, r.observer)
		}
		r.phase = PhaseRefilling

	case PhaseRefilling:
		r.refill()
		r.phase = PhaseDetecting
	}

	return r.phase
}

// Run steps until the board is stable. No pass limit is enforced: refill is
// unconstrained, so an endless chain is possible in theory.
func (r *Resolver) Run() Report {
	for r.Step() != PhaseIdle {
	}
	return r.report
}

// RunLimit steps until the board is stable or maxPasses passes have run.
// When the limit stops a cascade that still has matches, the resolver returns
// to Idle leaving those matches on the board and ErrCascadeLimit is returned.
// maxPasses <= 0 means no limit.
func (r *Resolver) RunLimit(maxPasses int) (Report, error) {
	if maxPasses <= 0 {
		return r.Run(), nil
	}
	for r.phase != PhaseIdle {
		if r.phase == PhaseDetecting && r.report.Passes >= maxPasses && HasMatch(r.board) {
			r.phase = PhaseIdle
			r.matched = nil
			return r.report, fmt.Errorf("%w: %d passes", ErrCascadeLimit, maxPasses)
		}
		r.Step()
	}
	return r.report, nil
}

// remove clears every matched cell exactly once.
func (r *Resolver) remove() {
	for _, p := range r.matched.Positions() {
		c := r.board.at(p)
		if !c.Filled {
			continue
		}
		r.board.put(p, Empty())
		r.report.Removed++
		r.observer.TileRemoved(c.Tile, p)
	}
	r.matched = nil
}

// refill spawns a random tile into every empty cell. Within a column the
// spawn origins are stacked above the grid so tiles fall as one block.
func (r *Resolver) refill() {
	for col := range r.board.columns {
		var empty []Position
		for row := range r.board.rows {
			if p := P(col, row); !r.board.at(p).Filled {
				empty = append(empty, p)
			}
		}

		n := len(empty)
		for i, p := range empty {
			t := r.source.NewTile(r.source.Pick(r.kinds))
			r.board.put(p, Filled(t))
			r.report.Spawned++
			r.observer.TileSpawned(t, p, P(col, i-n))
		}
	}
}

// CollapseColumn compacts one column's tiles toward the bottom, keeping their
// top-to-bottom order and leaving the freed cells at the top empty. The whole
// column is read before anything is written. Returns how many tiles moved;
// obs (may be nil) is told about each of them.
func CollapseColumn(b *Board, col int, obs Observer) int {
	if col < 0 || col >= b.columns {
		return 0
	}
	obs = orNop(obs)

	tiles := make([]Tile, 0, b.rows)
	from := make([]int, 0, b.rows)
	for row := range b.rows {
		if c := b.at(P(col, row)); c.Filled {
			tiles = append(tiles, c.Tile)
			from = append(from, row)
		}
	}

	offset := b.rows - len(tiles)
	for row := range offset {
		b.put(P(col, row), Empty())
	}

	moved := 0
	for i, t := range tiles {
		to := offset + i
		b.put(P(col, to), Filled(t))
		if to != from[i] {
			moved++
			obs.TileMoved(t, P(col, from[i]), P(col, to))
		}
	}
	return moved
}
