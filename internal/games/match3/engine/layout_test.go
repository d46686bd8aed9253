package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

func TestLayoutCellOrigin(t *testing.T) {
	l := engine.Layout{Columns: 8, Rows: 8, CellSize: 2}

	x, y := l.CellOrigin(engine.P(3, 2))
	require.Equal(t, 6.0, x)
	require.Equal(t, -4.0, y)

	// Spawn origins above the grid have positive y.
	_, y = l.CellOrigin(engine.P(0, -1))
	require.Equal(t, 2.0, y)
}

func TestLayoutFrame(t *testing.T) {
	l := engine.Layout{Columns: 8, Rows: 8, CellSize: 1}

	tests := []struct {
		aspect float64
		half   float64
	}{
		{1.0, 5}, // height bound: 8/2 + 1
		{2.0, 8}, // width bound: 8/2 * 2
		{0.5, 5},
	}

	for _, tt := range tests {
		f := l.Frame(tt.aspect)
		require.Equal(t, 3.5, f.CenterX)
		require.Equal(t, -3.5, f.CenterY)
		require.InDelta(t, tt.half, f.HalfHeight, 1e-9, "aspect %v", tt.aspect)
	}
}

func TestLayoutPositionAt(t *testing.T) {
	l := engine.Layout{Columns: 4, Rows: 3, CellSize: 1}

	p, ok := l.PositionAt(2.2, -0.9)
	require.True(t, ok)
	require.Equal(t, engine.P(2, 1), p)

	for row := range 3 {
		for col := range 4 {
			x, y := l.CellOrigin(engine.P(col, row))
			got, ok := l.PositionAt(x, y)
			require.True(t, ok)
			require.Equal(t, engine.P(col, row), got)
		}
	}

	_, ok = l.PositionAt(-1, 0)
	require.False(t, ok)
	_, ok = l.PositionAt(0, 1)
	require.False(t, ok)
}
