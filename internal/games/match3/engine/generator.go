package engine

import (
	"errors"
	"fmt"
)

// Generate builds a full board that contains no runs.
//
// Cells are filled row by row, left to right. For each cell the candidate
// kinds are those that would not complete a run with the two cells to the
// left or the two cells above; one candidate is drawn uniformly from src.
// Generation fails with ErrUnsatisfiable when fewer than two kinds are given
// or when a cell has no candidate, which can happen with exactly two kinds.
func Generate(columns, rows int, kinds []Kind, src *Source) (*Board, error) {
	if len(kinds) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 kinds, got %d", ErrUnsatisfiable, len(kinds))
	}

	b, err := NewBoard(columns, rows)
	if err != nil {
		return nil, err
	}

	candidates := make([]Kind, 0, len(kinds))
	for row := range rows {
		for col := range columns {
			pos := P(col, row)

			candidates = candidates[:0]
			for _, k := range kinds {
				if !WouldMatchAt(b, pos, k) {
					candidates = append(candidates, k)
				}
			}
			if len(candidates) == 0 {
				return nil, fmt.Errorf("%w at %s", ErrUnsatisfiable, pos)
			}

			b.put(pos, Filled(src.NewTile(src.Pick(candidates))))
		}
	}

	return b, nil
}

// GenerateWithRetry calls Generate up to attempts times, retrying only on
// ErrUnsatisfiable. Each attempt draws fresh kinds from src.
func GenerateWithRetry(columns, rows int, kinds []Kind, src *Source, attempts int) (*Board, error) {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for range attempts {
		b, err := Generate(columns, rows, kinds, src)
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, ErrUnsatisfiable) || len(kinds) < 2 {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
