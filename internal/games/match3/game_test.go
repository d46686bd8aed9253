package match3

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New()
	g.ResetWith(testRuntime(seed), config.DefaultMatch3Config())
	return g
}

// cellPoint returns a screen cell inside board position p.
func cellPoint(g *Game, p engine.Position) (int, int) {
	return g.view.toScreen(float64(p.Column), float64(p.Row))
}

func drag(g *Game, from, to engine.Position) core.StepResult {
	in := core.NewInputFrame()
	in.Press(cellPoint(g, from))
	in.Release(cellPoint(g, to))
	return g.Step(in)
}

func settle(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 20000; i++ {
		if !g.State().Busy {
			return
		}
		g.Step(core.NewInputFrame())
	}
	t.Fatal("game did not settle")
}

// revertingSwap finds an adjacent pair of different kinds whose swap makes
// no match.
func revertingSwap(t *testing.T, b *engine.Board) (engine.Position, engine.Position) {
	t.Helper()
	for row := range b.Rows() {
		for col := range b.Columns() - 1 {
			a, c := engine.P(col, row), engine.P(col+1, row)
			ca, _ := b.Get(a)
			cc, _ := b.Get(c)
			if ca.SameKind(cc) {
				continue
			}
			work := b.Clone()
			_ = work.Swap(a, c)
			if !engine.HasMatch(work) {
				return a, c
			}
		}
	}
	t.Fatal("no reverting swap on board")
	return engine.Position{}, engine.Position{}
}

func TestVariantsRegistered(t *testing.T) {
	for _, id := range []string{"match3", "match3_mini"} {
		if !registry.Exists(id) {
			t.Errorf("registry.Exists(%q) = false, expected true", id)
		}
	}
}

func TestResetProducesPlayableBoard(t *testing.T) {
	g := newTestGame(t, 42)

	b := g.Engine().Board()
	if engine.HasMatch(b) {
		t.Errorf("new board has a match:\n%s", b)
	}
	if b.FilledCount() != 64 {
		t.Errorf("FilledCount() = %d, expected 64", b.FilledCount())
	}
	if g.anim.Len() != 64 {
		t.Errorf("sprites = %d, expected 64", g.anim.Len())
	}
	if g.State().Busy || g.State().Paused {
		t.Errorf("State() = %+v, expected idle and unpaused", g.State())
	}
}

func TestMiniVariant(t *testing.T) {
	g := NewMini()
	g.ResetWith(testRuntime(1), config.DefaultMiniConfig())

	if g.ID() != "match3_mini" {
		t.Errorf("ID() = %q, expected match3_mini", g.ID())
	}
	if c := g.Engine().Board().Columns(); c != 6 {
		t.Errorf("Columns() = %d, expected 6", c)
	}
}

func TestUnsatisfiableBoardFallsBackToDefaults(t *testing.T) {
	cfg := config.DefaultMatch3Config()
	cfg.Board.Columns, cfg.Board.Rows = 20, 20
	cfg.Board.KindCount = 2
	cfg.Cascade.GenerateAttempts = 1
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	g := New()
	g.ResetWith(testRuntime(1), cfg)

	if !reflect.DeepEqual(g.Config(), config.DefaultMatch3Config()) {
		t.Errorf("Config() = %+v, expected defaults", g.Config())
	}
	b := g.Engine().Board()
	if b.Columns() != 8 || b.FilledCount() != 64 {
		t.Errorf("board %dx%d with %d tiles, expected a full 8x8 board", b.Columns(), b.Rows(), b.FilledCount())
	}

	mini := NewMini()
	mini.ResetWith(testRuntime(1), cfg)
	if c := mini.Engine().Board().Columns(); c != 6 {
		t.Errorf("mini Columns() = %d, expected 6", c)
	}
}

func TestMatchingSwapCascades(t *testing.T) {
	g := newTestGame(t, 7)
	moves := g.Engine().ValidMoves()
	if len(moves) == 0 {
		t.Skip("seed produced a deadlocked board")
	}

	res := drag(g, moves[0].From, moves[0].To)
	if !res.State.Busy {
		t.Fatal("State().Busy = false after a matching swap, expected true")
	}
	if g.Stats().Matched != 1 {
		t.Errorf("Matched = %d, expected 1", g.Stats().Matched)
	}

	settle(t, g)

	b := g.Engine().Board()
	if engine.HasMatch(b) {
		t.Errorf("settled board still has a match:\n%s", b)
	}
	if b.FilledCount() != 64 {
		t.Errorf("FilledCount() = %d, expected 64", b.FilledCount())
	}
	s := g.Stats()
	if s.Passes < 1 || s.TilesCleared < 3 || s.LongestChain < 1 {
		t.Errorf("Stats() = %+v, expected at least one pass clearing three tiles", s)
	}
	if g.anim.Len() != 64 {
		t.Errorf("sprites = %d after settling, expected 64", g.anim.Len())
	}
}

func TestNonMatchingSwapReverts(t *testing.T) {
	g := newTestGame(t, 3)
	before := g.Engine().Board().Clone()
	a, c := revertingSwap(t, before)

	drag(g, a, c)

	if !g.Engine().Board().Equal(before) {
		t.Error("board changed after a reverted swap")
	}
	s := g.Stats()
	if s.Reverted != 1 || s.Swaps != 1 || s.Matched != 0 {
		t.Errorf("Stats() = %+v, expected one reverted swap", s)
	}

	var reverted int
	for _, e := range g.Events() {
		if e.Type == engine.EventReverted {
			reverted++
		}
	}
	if reverted != 1 {
		t.Errorf("reverted events = %d, expected 1", reverted)
	}

	// The slide out and back still plays
	if !g.State().Busy {
		t.Error("State().Busy = false, expected revert animation")
	}
	settle(t, g)
}

func TestNonAdjacentReleaseIsInvalid(t *testing.T) {
	g := newTestGame(t, 5)
	before := g.Engine().Board().Clone()

	drag(g, engine.P(0, 0), engine.P(2, 0))

	if g.Stats().InvalidMoves != 1 {
		t.Errorf("InvalidMoves = %d, expected 1", g.Stats().InvalidMoves)
	}
	if !g.Engine().Board().Equal(before) {
		t.Error("board changed after an invalid move")
	}
	if g.Engine().Controller().State() != engine.NoSelection {
		t.Error("selection should be cleared after an invalid move")
	}
}

func TestOffBoardReleaseIsInvalid(t *testing.T) {
	g := newTestGame(t, 5)
	before := g.Engine().Board().Clone()

	x, y := cellPoint(g, engine.P(0, 0))
	in := core.NewInputFrame()
	in.Press(x, y)
	in.Release(x-2*g.cfg.Board.CellW, y)
	g.Step(in)

	if g.Stats().InvalidMoves != 1 {
		t.Errorf("InvalidMoves = %d, expected 1", g.Stats().InvalidMoves)
	}
	if !g.Engine().Board().Equal(before) {
		t.Error("board changed after a release off the board")
	}
	if g.Engine().Controller().State() != engine.NoSelection {
		t.Error("selection should be cleared after a release off the board")
	}
}

func TestClickClickSwap(t *testing.T) {
	g := newTestGame(t, 7)
	moves := g.Engine().ValidMoves()
	if len(moves) == 0 {
		t.Skip("seed produced a deadlocked board")
	}
	m := moves[0]

	// First click selects
	drag(g, m.From, m.From)
	if p, ok := g.Engine().Controller().Pending(); !ok || p != m.From {
		t.Fatalf("Pending() = %v, %v; expected %v", p, ok, m.From)
	}

	// Second click on a neighbour swaps
	in := core.NewInputFrame()
	in.Press(cellPoint(g, m.To))
	g.Step(in)
	if g.Stats().Matched != 1 {
		t.Errorf("Matched = %d, expected 1", g.Stats().Matched)
	}

	// The trailing release is ignored
	in = core.NewInputFrame()
	in.Release(cellPoint(g, m.To))
	g.Step(in)
	if g.Stats().InvalidMoves != 0 {
		t.Errorf("InvalidMoves = %d, expected 0", g.Stats().InvalidMoves)
	}
}

func TestKeyboardSelection(t *testing.T) {
	g := newTestGame(t, 9)
	start := g.Cursor()

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	g.Step(in)
	if g.Cursor() != start.Add(-1, 0) {
		t.Errorf("Cursor() = %v, expected %v", g.Cursor(), start.Add(-1, 0))
	}

	in = core.NewInputFrame()
	in.Set(core.ActionSelect)
	g.Step(in)
	if g.Engine().Controller().State() != engine.Pending {
		t.Fatal("Select should leave a pending selection")
	}

	in = core.NewInputFrame()
	in.Set(core.ActionCancel)
	g.Step(in)
	if g.Engine().Controller().State() != engine.NoSelection {
		t.Error("Cancel should drop the selection")
	}

	// Cursor stays on the board
	for range 20 {
		in = core.NewInputFrame()
		in.Set(core.ActionUp)
		g.Step(in)
	}
	if g.Cursor().Row != 0 {
		t.Errorf("Cursor().Row = %d, expected 0", g.Cursor().Row)
	}
}

func TestInputIgnoredWhileBusy(t *testing.T) {
	g := newTestGame(t, 7)
	moves := g.Engine().ValidMoves()
	if len(moves) == 0 {
		t.Skip("seed produced a deadlocked board")
	}
	drag(g, moves[0].From, moves[0].To)

	drag(g, engine.P(0, 0), engine.P(1, 0))
	if s := g.Stats(); s.Swaps != 1 || s.InvalidMoves != 0 {
		t.Errorf("Stats() = %+v, expected input to be ignored while busy", s)
	}
}

func TestHintAndShuffle(t *testing.T) {
	g := newTestGame(t, 11)

	in := core.NewInputFrame()
	in.Set(core.ActionHint)
	g.Step(in)
	if len(g.Engine().ValidMoves()) > 0 && g.hint == nil {
		t.Error("hint should be set when valid moves exist")
	}

	in = core.NewInputFrame()
	in.Set(core.ActionShuffle)
	g.Step(in)
	if g.Stats().Shuffles != 1 {
		t.Errorf("Shuffles = %d, expected 1", g.Stats().Shuffles)
	}
	if g.hint != nil {
		t.Error("shuffle should clear the hint")
	}
	if engine.HasMatch(g.Engine().Board()) {
		t.Error("shuffled board has a match")
	}
}

func TestHintsDisabled(t *testing.T) {
	cfg := config.DefaultMatch3Config()
	config.ApplyMatch3Preset(&cfg, config.DifficultyHard)
	g := New()
	g.ResetWith(testRuntime(11), cfg)

	in := core.NewInputFrame()
	in.Set(core.ActionHint)
	g.Step(in)
	if g.hint != nil {
		t.Error("hint should stay off on hard")
	}
}

func TestPauseStopsSimulation(t *testing.T) {
	g := newTestGame(t, 7)

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	res := g.Step(in)
	if !res.State.Paused {
		t.Fatal("State().Paused = false, expected true")
	}

	before := g.Snapshot()
	drag(g, engine.P(0, 0), engine.P(2, 0))
	if g.Stats().InvalidMoves != 0 {
		t.Error("input should be ignored while paused")
	}
	after := g.Snapshot()
	if !reflect.DeepEqual(before.Kinds, after.Kinds) {
		t.Error("board changed while paused")
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := New()
	rc := testRuntime(1)
	rc.ScreenW, rc.ScreenH = 20, 10
	g.ResetWith(rc, config.DefaultMatch3Config())

	if !g.State().Paused {
		t.Error("State().Paused = false on a tiny screen, expected true")
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("tiny screen should show the resize message")
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("State().Paused = true after growing the screen")
	}
}

func TestDeterministicReplay(t *testing.T) {
	play := func() Snapshot {
		g := newTestGame(t, 2024)
		for range 5 {
			moves := g.Engine().ValidMoves()
			if len(moves) == 0 {
				break
			}
			drag(g, moves[0].From, moves[0].To)
			settle(t, g)
		}
		return g.Snapshot()
	}

	a, b := play(), play()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("snapshots differ for equal seeds:\n%+v\n%+v", a, b)
	}
}

func TestZeroTimingSettlesQuickly(t *testing.T) {
	cfg := config.DefaultMatch3Config()
	cfg.Timing = config.TimingConfig{}
	g := New()
	g.ResetWith(testRuntime(7), cfg)

	moves := g.Engine().ValidMoves()
	if len(moves) == 0 {
		t.Skip("seed produced a deadlocked board")
	}
	drag(g, moves[0].From, moves[0].To)

	ticks := 0
	for g.State().Busy && ticks < 500 {
		g.Step(core.NewInputFrame())
		ticks++
	}
	if g.State().Busy {
		t.Fatal("cascade with zero timings did not settle within 500 ticks")
	}
}

// TestTimingDoesNotChangeOutcome plays the same swaps with default timings,
// with zero timings and on a bare engine resolved in one call.
func TestTimingDoesNotChangeOutcome(t *testing.T) {
	const turns = 5

	animated := func(seed int64, timing config.TimingConfig) *engine.Board {
		cfg := config.DefaultMatch3Config()
		cfg.Timing = timing
		g := New()
		g.ResetWith(testRuntime(seed), cfg)
		for range turns {
			moves := g.Engine().ValidMoves()
			if len(moves) == 0 {
				break
			}
			drag(g, moves[0].From, moves[0].To)
			settle(t, g)
		}
		return g.Engine().Board()
	}

	bare := func(seed int64) *engine.Board {
		e, err := engine.New(config.DefaultMatch3Config().Engine(), engine.NewSeededSource(seed), nil)
		if err != nil {
			t.Fatalf("engine.New() error = %v", err)
		}
		for range turns {
			moves := e.ValidMoves()
			if len(moves) == 0 {
				break
			}
			out, err := e.Swap(moves[0].From, moves[0].To)
			if err != nil || out != engine.OutcomeMatched {
				t.Fatalf("Swap() = %v, %v; expected a match", out, err)
			}
			e.Resolver().Run()
		}
		return e.Board()
	}

	for _, seed := range []int64{7, 42, 2024} {
		want := bare(seed)
		if got := animated(seed, config.DefaultMatch3Config().Timing); !got.Equal(want) {
			t.Errorf("seed %d: default timings diverged\n%s\nexpected\n%s", seed, got, want)
		}
		if got := animated(seed, config.TimingConfig{}); !got.Equal(want) {
			t.Errorf("seed %d: zero timings diverged\n%s\nexpected\n%s", seed, got, want)
		}
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, 42)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(out, "Match-3") {
		t.Error("render should contain the title")
	}
	if !strings.Contains(out, "┌") {
		t.Error("render should draw the board frame")
	}

	// Every board cell shows its tile glyph
	b := g.Engine().Board()
	for row := range b.Rows() {
		for col := range b.Columns() {
			c, _ := b.Get(engine.P(col, row))
			x, y := cellPoint(g, engine.P(col, row))
			glyph, color := StyleFor(c.Tile.Kind)
			cell := screen.GetCell(x, y)
			if cell.Rune != glyph || cell.Color != color {
				t.Fatalf("cell (%d,%d) = %+v, expected %q in color %d", col, row, cell, glyph, color)
			}
		}
	}
}
