package engine

import "fmt"

// Config holds the board parameters.
type Config struct {
	Columns   int
	Rows      int
	CellSize  float64
	KindCount int

	// GenerateAttempts bounds board generation retries. Zero uses
	// DefaultGenerateAttempts.
	GenerateAttempts int
}

// DefaultConfig returns an 8x8 board with six kinds.
func DefaultConfig() Config {
	return Config{
		Columns:          8,
		Rows:             8,
		CellSize:         1.0,
		KindCount:        6,
		GenerateAttempts: DefaultGenerateAttempts,
	}
}

// Validate checks that the configuration describes a playable board.
func (c Config) Validate() error {
	switch {
	case c.Columns <= 0 || c.Rows <= 0:
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidConfig, c.Columns, c.Rows)
	case c.CellSize <= 0:
		return fmt.Errorf("%w: cell size %v", ErrInvalidConfig, c.CellSize)
	case c.KindCount < 2:
		return fmt.Errorf("%w: kind count %d", ErrInvalidConfig, c.KindCount)
	case c.KindCount > 26:
		return fmt.Errorf("%w: kind count %d exceeds 26", ErrInvalidConfig, c.KindCount)
	case c.GenerateAttempts < 0:
		return fmt.Errorf("%w: generate attempts %d", ErrInvalidConfig, c.GenerateAttempts)
	}
	return nil
}

// Layout returns the world layout for this configuration.
func (c Config) Layout() Layout {
	return Layout{Columns: c.Columns, Rows: c.Rows, CellSize: c.CellSize}
}

// DefaultGenerateAttempts bounds regeneration when a board cannot be filled,
// which only happens with very few kinds.
const DefaultGenerateAttempts = 16

// Attempts returns the generation retry bound in effect.
func (c Config) Attempts() int {
	if c.GenerateAttempts <= 0 {
		return DefaultGenerateAttempts
	}
	return c.GenerateAttempts
}

// Engine wires a board with its resolver and turn controller.
type Engine struct {
	cfg      Config
	kinds    []Kind
	source   *Source
	observer Observer

	board      *Board
	resolver   *Resolver
	controller *Controller
}

// New validates cfg and generates a board with no matches.
func New(cfg Config, src *Source, obs Observer) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:      cfg,
		kinds:    Kinds(cfg.KindCount),
		source:   src,
		observer: orNop(obs),
	}
	if err := e.Regenerate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Regenerate replaces the board with a freshly generated one. Any pending
// selection is dropped.
func (e *Engine) Regenerate() error {
	if e.resolver != nil && e.resolver.Busy() {
		return fmt.Errorf("regenerate: %w", ErrCascadeInProgress)
	}
	b, err := GenerateWithRetry(e.cfg.Columns, e.cfg.Rows, e.kinds, e.source, e.cfg.Attempts())
	if err != nil {
		return err
	}
	e.Load(b)
	return nil
}

// Load installs b as the current board.
func (e *Engine) Load(b *Board) {
	e.board = b
	e.resolver = NewResolver(b, e.source, e.kinds, e.observer)
	e.controller = NewController(b, e.resolver, e.observer)
}

// Config returns the validated configuration.
func (e *Engine) Config() Config { return e.cfg }

// Kinds returns the tile alphabet of the board.
func (e *Engine) Kinds() []Kind { return e.kinds }

// Board returns the current board. Regenerate replaces it.
func (e *Engine) Board() *Board { return e.board }

// Resolver returns the cascade resolver of the current board.
func (e *Engine) Resolver() *Resolver { return e.resolver }

// Controller returns the turn controller of the current board.
func (e *Engine) Controller() *Controller { return e.controller }

// Layout returns the world layout of the board.
func (e *Engine) Layout() Layout { return e.cfg.Layout() }

// Busy reports whether a cascade is in progress.
func (e *Engine) Busy() bool {
	return e.resolver.Busy()
}

// Swap selects a and releases on b in one call.
func (e *Engine) Swap(a, b Position) (Outcome, error) {
	if err := e.controller.Select(a); err != nil {
		return OutcomeNone, err
	}
	out, err := e.controller.Release(b)
	if out == OutcomeNone {
		e.controller.Cancel()
	}
	return out, err
}

// ValidMoves lists the swaps that would produce a match on the current board.
func (e *Engine) ValidMoves() []Move {
	return FindValidMoves(e.board)
}
