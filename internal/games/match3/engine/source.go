package engine

import "math/rand"

// Random provides the integer draws the engine needs. *rand.Rand satisfies
// it; tests substitute scripted sequences.
type Random interface {
	// Intn returns a random int in [0, n).
	Intn(n int) int
}

// Source allocates tile ids and draws tile kinds.
type Source struct {
	rng  Random
	next TileID
}

// NewSource creates a source drawing from rng.
func NewSource(rng Random) *Source {
	return &Source{rng: rng}
}

// NewSeededSource creates a source backed by math/rand with the given seed.
func NewSeededSource(seed int64) *Source {
	return NewSource(rand.New(rand.NewSource(seed)))
}

// NewTile returns a tile of the given kind with a fresh id.
func (s *Source) NewTile(kind Kind) Tile {
	s.next++
	return Tile{ID: s.next, Kind: kind}
}

// Pick returns one of kinds uniformly at random. kinds must be non-empty.
func (s *Source) Pick(kinds []Kind) Kind {
	return kinds[s.rng.Intn(len(kinds))]
}

// Intn exposes the underlying draw, e.g. for choosing a hint.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rng.Intn(n)
}
