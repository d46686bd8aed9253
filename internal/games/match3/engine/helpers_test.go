package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

// scripted is a Random that replays a fixed sequence, wrapping around.
type scripted struct {
	values []int
	next   int
}

func (s *scripted) Intn(n int) int {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v % n
}

func scriptedSource(values ...int) *engine.Source {
	return engine.NewSource(&scripted{values: values})
}

// Kind letters used in test grids.
const (
	A = 0
	B = 1
	C = 2
	D = 3
	E = 4
)

const X = -1 // empty

func mustBoard(t *testing.T, src *engine.Source, grid [][]int) *engine.Board {
	t.Helper()
	b, err := engine.FromKinds(grid, src)
	require.NoError(t, err)
	return b
}
