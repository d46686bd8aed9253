package engine

import "errors"

// Errors returned by the engine. Callers match them with errors.Is; most are
// wrapped with the offending position or count.
var (
	// Board errors
	ErrOutOfBounds       = errors.New("position out of bounds")
	ErrInvalidDimensions = errors.New("board dimensions must be positive")

	// Generation errors
	ErrUnsatisfiable = errors.New("no tile kind satisfies the no-match constraint")

	// Turn errors
	ErrInvalidSelectionState = errors.New("invalid selection state")
	ErrCascadeInProgress     = errors.New("cascade in progress")

	// Cascade errors
	ErrCascadeLimit = errors.New("cascade pass limit exceeded")

	// Config errors
	ErrInvalidConfig = errors.New("invalid engine config")
)
