package engine

import "fmt"

// SelectionState is the input state of the turn controller.
type SelectionState uint8

const (
	NoSelection SelectionState = iota
	Pending
)

// String returns the string representation of a selection state.
func (s SelectionState) String() string {
	if s == Pending {
		return "pending"
	}
	return "none"
}

// Outcome is the result of releasing a selection.
type Outcome uint8

const (
	// OutcomeNone means nothing happened. The pending selection is kept.
	OutcomeNone Outcome = iota
	// OutcomeInvalidMove means the target was not adjacent. The board is unchanged.
	OutcomeInvalidMove
	// OutcomeReverted means the swap produced no match and was undone.
	OutcomeReverted
	// OutcomeMatched means the swap produced a match and a cascade has begun.
	OutcomeMatched
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeInvalidMove:
		return "invalid"
	case OutcomeReverted:
		return "reverted"
	case OutcomeMatched:
		return "matched"
	default:
		return "unknown"
	}
}

// Controller turns press/release input into swaps. At most one swap is
// evaluated at a time and no input is accepted while a cascade runs.
type Controller struct {
	board    *Board
	resolver *Resolver
	observer Observer

	state   SelectionState
	pending Position
}

// NewController creates a controller with no selection.
func NewController(board *Board, resolver *Resolver, obs Observer) *Controller {
	return &Controller{
		board:    board,
		resolver: resolver,
		observer: orNop(obs),
	}
}

// State returns the selection state.
func (c *Controller) State() SelectionState {
	return c.state
}

// Pending returns the selected position, if any.
func (c *Controller) Pending() (Position, bool) {
	return c.pending, c.state == Pending
}

// Select records pos as the first tile of a swap.
func (c *Controller) Select(pos Position) error {
	if c.resolver.Busy() {
		return fmt.Errorf("select %s: %w", pos, ErrCascadeInProgress)
	}
	if c.state == Pending {
		return fmt.Errorf("select %s while %s is pending: %w", pos, c.pending, ErrInvalidSelectionState)
	}
	if !c.board.InBounds(pos) {
		return fmt.Errorf("select %s: %w", pos, ErrOutOfBounds)
	}

	c.pending = pos
	c.state = Pending
	return nil
}

// Release completes a selection at pos. A release on the pending tile keeps
// the selection so that two separate clicks can form a swap. Any other
// release clears it, including one outside the board, which fails with
// ErrOutOfBounds.
func (c *Controller) Release(pos Position) (Outcome, error) {
	if c.resolver.Busy() {
		return OutcomeNone, fmt.Errorf("release %s: %w", pos, ErrCascadeInProgress)
	}
	if c.state != Pending {
		return OutcomeNone, fmt.Errorf("release %s: %w", pos, ErrInvalidSelectionState)
	}
	if pos == c.pending {
		return OutcomeNone, nil
	}

	from := c.pending
	c.Cancel()

	if !c.board.InBounds(pos) {
		return OutcomeNone, fmt.Errorf("release %s: %w", pos, ErrOutOfBounds)
	}
	if !c.board.IsAdjacent(from, pos) {
		return OutcomeInvalidMove, nil
	}

	c.swap(from, pos)
	if HasMatch(c.board) {
		if err := c.resolver.Begin(); err != nil {
			return OutcomeNone, err
		}
		return OutcomeMatched, nil
	}

	c.swap(from, pos)
	a, b := c.board.at(from), c.board.at(pos)
	c.observer.SwapReverted(a.Tile, b.Tile)
	return OutcomeReverted, nil
}

// Cancel drops a pending selection.
func (c *Controller) Cancel() {
	c.state = NoSelection
	c.pending = Position{}
}

// swap exchanges two in-bounds cells and reports the filled ones as moved.
func (c *Controller) swap(a, b Position) {
	ca, cb := c.board.at(a), c.board.at(b)
	c.board.put(a, cb)
	c.board.put(b, ca)
	if ca.Filled {
		c.observer.TileMoved(ca.Tile, a, b)
	}
	if cb.Filled {
		c.observer.TileMoved(cb.Tile, b, a)
	}
}
