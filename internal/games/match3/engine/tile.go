package engine

// Kind is a tile type drawn from a finite alphabet 0..K-1.
type Kind uint8

// TileID is the opaque identity of a tile. IDs are never reused by a Source.
type TileID uint64

// Tile is a single game piece. Its kind never changes; only its board
// position does.
type Tile struct {
	ID   TileID
	Kind Kind
}

// Cell is an optional tile: Filled reports whether Tile is meaningful.
type Cell struct {
	Tile   Tile
	Filled bool
}

// Empty returns an empty cell.
func Empty() Cell {
	return Cell{}
}

// Filled returns a cell holding the given tile.
func Filled(t Tile) Cell {
	return Cell{Tile: t, Filled: true}
}

// SameKind reports whether both cells hold tiles of the same kind.
// Empty cells never match anything, including other empty cells.
func (c Cell) SameKind(other Cell) bool {
	return c.Filled && other.Filled && c.Tile.Kind == other.Tile.Kind
}

// Kinds returns the alphabet 0..n-1.
func Kinds(n int) []Kind {
	if n < 0 {
		n = 0
	}
	kinds := make([]Kind, 0, n)
	for i := 0; i < n; i++ {
		kinds = append(kinds, Kind(i))
	}
	return kinds
}
