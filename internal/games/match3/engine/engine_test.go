package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*engine.Config)
		wantErr bool
	}{
		{"default", func(*engine.Config) {}, false},
		{"zero columns", func(c *engine.Config) { c.Columns = 0 }, true},
		{"negative rows", func(c *engine.Config) { c.Rows = -2 }, true},
		{"zero cell size", func(c *engine.Config) { c.CellSize = 0 }, true},
		{"one kind", func(c *engine.Config) { c.KindCount = 1 }, true},
		{"two kinds", func(c *engine.Config) { c.KindCount = 2 }, false},
		{"too many kinds", func(c *engine.Config) { c.KindCount = 27 }, true},
		{"negative attempts", func(c *engine.Config) { c.GenerateAttempts = -1 }, true},
		{"default attempts", func(c *engine.Config) { c.GenerateAttempts = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := engine.DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, engine.ErrInvalidConfig)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfigAttempts(t *testing.T) {
	cfg := engine.DefaultConfig()
	require.Equal(t, engine.DefaultGenerateAttempts, cfg.Attempts())

	cfg.GenerateAttempts = 0
	require.Equal(t, engine.DefaultGenerateAttempts, cfg.Attempts())

	cfg.GenerateAttempts = 1
	require.Equal(t, 1, cfg.Attempts())

	e, err := engine.New(cfg, engine.NewSeededSource(5), nil)
	require.NoError(t, err)
	require.Equal(t, 1, e.Config().Attempts())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.KindCount = 1
	_, err := engine.New(cfg, engine.NewSeededSource(1), nil)
	require.ErrorIs(t, err, engine.ErrInvalidConfig)
}

func TestEngineDeterministicForSeed(t *testing.T) {
	play := func() string {
		e, err := engine.New(engine.DefaultConfig(), engine.NewSeededSource(2024), nil)
		require.NoError(t, err)

		for range 10 {
			moves := e.ValidMoves()
			if len(moves) == 0 {
				require.NoError(t, e.Regenerate())
				continue
			}
			out, err := e.Swap(moves[0].From, moves[0].To)
			require.NoError(t, err)
			require.Equal(t, engine.OutcomeMatched, out)
			e.Resolver().Run()
		}
		return e.Board().String()
	}

	require.Equal(t, play(), play())
}

func TestEngineSwapOutcomes(t *testing.T) {
	e, err := engine.New(engine.DefaultConfig(), engine.NewSeededSource(11), nil)
	require.NoError(t, err)
	require.False(t, engine.HasMatch(e.Board()))

	out, err := e.Swap(engine.P(0, 0), engine.P(0, 0))
	require.NoError(t, err)
	require.Equal(t, engine.OutcomeNone, out)
	require.Equal(t, engine.NoSelection, e.Controller().State())

	out, err = e.Swap(engine.P(0, 0), engine.P(3, 3))
	require.NoError(t, err)
	require.Equal(t, engine.OutcomeInvalidMove, out)

	moves := e.ValidMoves()
	require.NotEmpty(t, moves)
	out, err = e.Swap(moves[0].From, moves[0].To)
	require.NoError(t, err)
	require.Equal(t, engine.OutcomeMatched, out)
	require.True(t, e.Busy())
	require.ErrorIs(t, e.Regenerate(), engine.ErrCascadeInProgress)

	e.Resolver().Run()
	require.False(t, e.Busy())
	require.NoError(t, e.Regenerate())
}

func TestMultiObserverFansOut(t *testing.T) {
	first, second := &engine.Recorder{}, &engine.Recorder{}
	obs := engine.MultiObserver{first, second}

	tile := engine.Tile{ID: 1, Kind: 2}
	obs.TileRemoved(tile, engine.P(1, 1))
	obs.TileSpawned(tile, engine.P(1, 1), engine.P(1, -1))
	obs.TileMoved(tile, engine.P(1, 1), engine.P(1, 2))
	obs.SwapReverted(tile, tile)

	require.Len(t, first.Events, 4)
	require.Equal(t, first.Events, second.Events)
	require.Equal(t, "spawned", first.Events[1].Type.String())

	first.Reset()
	require.Empty(t, first.Events)
}
