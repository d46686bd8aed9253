// Package match3 implements the tile-swap puzzle on top of the engine
// package. The Game type drives the engine from fixed simulation ticks,
// animates its notifications and renders into a core.Screen.
package match3

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

// Variant selects the board preset of a game.
type Variant string

const (
	VariantClassic Variant = "match3"
	VariantMini    Variant = "match3_mini"
)

// messageTicks is how long a status message stays visible (2s at 60fps).
const messageTicks = 120

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives engine and turn events at debug level.
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLogger replaces the package logger. A nil logger discards output.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game is the match-3 game.
type Game struct {
	variant Variant
	cfg     config.Match3Config
	tick    uint64

	eng      *engine.Engine
	anim     *Animator
	recorder *engine.Recorder
	log      *log.Logger

	screenW  int
	screenH  int
	view     view
	tooSmall bool
	paused   bool

	cursor    engine.Position
	hint      *engine.Move
	hintIndex int
	noMoves   bool

	wait    int // Ticks left before the next resolver step
	stats   core.SessionStats
	message string
	msgLeft int
}

// New creates a classic 8x8 game.
func New() *Game {
	return &Game{variant: VariantClassic}
}

// NewMini creates the small 6x6 game.
func NewMini() *Game {
	return &Game{variant: VariantMini}
}

func init() {
	registry.Register(string(VariantClassic), func() registry.Game {
		return New()
	})
	registry.Register(string(VariantMini), func() registry.Game {
		return NewMini()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.variant)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == VariantMini {
		return "Match-3 (Mini)"
	}
	return "Match-3"
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	if g.variant == VariantMini {
		return "6x6 board, five kinds"
	}
	return "8x8 board, swap tiles to line up three"
}

// loadConfig resolves the configuration for this variant.
func (g *Game) loadConfig() config.Match3Config {
	cfg, err := config.LoadMatch3(configPath)
	if err != nil {
		logger.Warn("using default config", "path", configPath, "error", err)
		cfg = config.DefaultMatch3Config()
	}
	if g.variant == VariantMini {
		mini := config.DefaultMiniConfig()
		cfg.Board.Columns = mini.Board.Columns
		cfg.Board.Rows = mini.Board.Rows
	}
	config.ApplyMatch3Preset(&cfg, difficultyPreset)
	if g.variant == VariantMini {
		cfg.Board.KindCount = min(cfg.Board.KindCount, config.DefaultMiniConfig().Board.KindCount)
	}
	return cfg
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.ResetWith(rc, g.loadConfig())
}

// ResetWith restarts the game with an explicit configuration. An invalid
// configuration falls back to the defaults of the variant.
func (g *Game) ResetWith(rc core.RuntimeConfig, cfg config.Match3Config) {
	if err := cfg.Validate(); err != nil {
		logger.Warn("invalid config, using defaults", "error", err)
		cfg = g.defaultConfig()
	}

	g.cfg = cfg
	g.tick = 0
	g.paused = false
	g.hint = nil
	g.hintIndex = 0
	g.noMoves = false
	g.wait = 0
	g.stats = core.SessionStats{}
	g.message = ""
	g.msgLeft = 0
	g.log = logger.With("game", g.ID(), "seed", rc.Seed)

	g.anim = NewAnimator(Timing{
		Swap: cfg.Timing.SwapTicks,
		Pop:  cfg.Timing.PopTicks,
		Fall: cfg.Timing.FallTicks,
	})
	g.recorder = &engine.Recorder{}
	obs := engine.MultiObserver{g.anim, g.recorder, NewLogObserver(g.log)}

	eng, err := engine.New(cfg.Engine(), engine.NewSeededSource(rc.Seed), obs)
	if err != nil {
		// Only reachable with two kinds
		g.log.Error("board generation failed, using defaults", "error", err)
		g.cfg = g.defaultConfig()
		eng, err = engine.New(g.cfg.Engine(), engine.NewSeededSource(rc.Seed), obs)
		if err != nil {
			g.log.Error("default board generation failed", "error", err)
			panic(fmt.Sprintf("match3: default board: %v", err))
		}
	}
	g.eng = eng
	g.anim.Sync(eng.Board())
	g.cursor = engine.P(g.cfg.Board.Columns/2, g.cfg.Board.Rows/2)

	g.Resize(rc.ScreenW, rc.ScreenH)
	g.checkMoves()
}

// defaultConfig returns the built-in configuration of the variant.
func (g *Game) defaultConfig() config.Match3Config {
	if g.variant == VariantMini {
		return config.DefaultMiniConfig()
	}
	return config.DefaultMatch3Config()
}

// Resize adapts the board placement to a new screen size.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.view = newView(g.eng.Layout(), g.cfg.Board.CellW, g.cfg.Board.CellH, w, h)
	g.tooSmall = !g.view.fits(w, h)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.anim.Update()
	if g.msgLeft > 0 {
		g.msgLeft--
		if g.msgLeft == 0 {
			g.message = ""
		}
	}

	switch {
	case g.eng.Busy():
		g.advanceCascade()
	case g.anim.Idle():
		g.handleInput(in)
	}

	return core.StepResult{State: g.State()}
}

// handleInput applies keyboard and pointer input while the board is idle.
func (g *Game) handleInput(in core.InputFrame) {
	cols, rows := g.cfg.Board.Columns, g.cfg.Board.Rows

	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, rows-1)
	case in.Has(core.ActionDown):
		g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, rows-1)
	case in.Has(core.ActionLeft):
		g.cursor.Column = core.Clamp(g.cursor.Column-1, 0, cols-1)
	case in.Has(core.ActionRight):
		g.cursor.Column = core.Clamp(g.cursor.Column+1, 0, cols-1)
	}

	if in.Has(core.ActionCancel) {
		g.eng.Controller().Cancel()
	}
	if in.Has(core.ActionHint) {
		g.showHint()
	}
	if in.Has(core.ActionShuffle) {
		g.shuffle("shuffled")
		return
	}

	if in.Has(core.ActionSelect) {
		ctrl := g.eng.Controller()
		if pending, ok := ctrl.Pending(); ok && pending == g.cursor {
			ctrl.Cancel()
		} else if ok {
			g.release(g.cursor)
		} else {
			g.selectAt(g.cursor)
		}
	}

	for _, ev := range in.Pointer {
		if g.eng.Busy() {
			break
		}
		pos, onBoard := g.view.hit(ev.X, ev.Y)
		ctrl := g.eng.Controller()

		switch ev.Kind {
		case core.PointerPress:
			if !onBoard {
				ctrl.Cancel()
				continue
			}
			g.cursor = pos
			if ctrl.State() == engine.Pending {
				g.release(pos)
			} else {
				g.selectAt(pos)
			}
		case core.PointerRelease:
			if ctrl.State() == engine.Pending {
				g.release(pos)
			}
		}
	}
}

func (g *Game) selectAt(pos engine.Position) {
	if err := g.eng.Controller().Select(pos); err != nil {
		g.log.Debug("select rejected", "at", pos, "error", err)
		return
	}
	g.hint = nil
}

// release completes a pending selection and records the outcome.
func (g *Game) release(pos engine.Position) {
	g.recorder.Reset()
	g.anim.SetMotion(MotionSwap)
	out, err := g.eng.Controller().Release(pos)
	if errors.Is(err, engine.ErrOutOfBounds) {
		out, err = engine.OutcomeInvalidMove, nil
	}
	if err != nil {
		g.log.Debug("release rejected", "at", pos, "error", err)
		return
	}
	g.log.Debug("swap", "to", pos, "outcome", out)

	switch out {
	case engine.OutcomeInvalidMove:
		g.stats.InvalidMoves++
		g.say("tiles must be neighbours")
	case engine.OutcomeReverted:
		g.stats.Swaps++
		g.stats.Reverted++
		g.say("no match")
	case engine.OutcomeMatched:
		g.stats.Swaps++
		g.stats.Matched++
		g.hint = nil
		g.wait = 0
	}
}

// advanceCascade performs at most one resolver phase per tick. A phase runs
// once the animator is idle and the configured delay has elapsed, except
// refill, which starts while the collapse is still falling.
func (g *Game) advanceCascade() {
	r := g.eng.Resolver()
	if r.Phase() != engine.PhaseRefilling && !g.anim.Idle() {
		return
	}
	if g.wait > 0 {
		g.wait--
		return
	}

	g.anim.SetMotion(MotionFall)
	next := r.Step()

	switch next {
	case engine.PhaseCollapsing:
		g.wait = g.cfg.Timing.CollapseDelayTicks
	case engine.PhaseDetecting:
		g.wait = g.cfg.Timing.SettleTicks
		if limit := g.cfg.Cascade.MaxPasses; limit > 0 && r.Report().Passes >= limit {
			if _, err := r.RunLimit(limit); errors.Is(err, engine.ErrCascadeLimit) {
				g.log.Warn("cascade stopped at pass limit", "passes", limit)
			}
			g.finishCascade()
		}
	case engine.PhaseIdle:
		g.finishCascade()
	}
}

// finishCascade records the cascade report and checks for a deadlock.
func (g *Game) finishCascade() {
	rep := g.eng.Resolver().Report()
	g.stats.Passes += rep.Passes
	g.stats.TilesCleared += rep.Removed
	g.stats.LongestChain = max(g.stats.LongestChain, rep.Passes)
	g.log.Debug("cascade settled", "passes", rep.Passes, "removed", rep.Removed, "spawned", rep.Spawned)

	if rep.Passes > 1 {
		g.say(fmt.Sprintf("chain x%d", rep.Passes))
	}
	g.checkMoves()
}

// checkMoves flags a board without valid swaps and optionally replaces it.
func (g *Game) checkMoves() {
	g.noMoves = len(g.eng.ValidMoves()) == 0
	if g.noMoves && g.cfg.Cascade.AutoShuffle {
		g.shuffle("no moves left, new board")
	}
}

// shuffle replaces the board with a fresh one.
func (g *Game) shuffle(reason string) {
	if err := g.eng.Regenerate(); err != nil {
		g.log.Error("regenerate failed", "error", err)
		return
	}
	g.anim.Sync(g.eng.Board())
	g.stats.Shuffles++
	g.hint = nil
	g.say(reason)
	g.noMoves = len(g.eng.ValidMoves()) == 0
}

// showHint highlights one valid swap, cycling on repeated requests.
func (g *Game) showHint() {
	if !g.cfg.Difficulty.Hints {
		g.say("hints are off")
		return
	}
	moves := g.eng.ValidMoves()
	if len(moves) == 0 {
		g.noMoves = true
		return
	}
	m := moves[g.hintIndex%len(moves)]
	g.hintIndex++
	g.hint = &m
}

func (g *Game) say(msg string) {
	g.message = msg
	g.msgLeft = messageTicks
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Paused: g.paused || g.tooSmall,
		Busy:   g.eng != nil && (g.eng.Busy() || !g.anim.Idle()),
		Stats:  g.stats,
	}
}

// Stats returns the session counters.
func (g *Game) Stats() core.SessionStats {
	return g.stats
}

// Engine exposes the underlying engine, mainly for tests and tools.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}

// Config returns the configuration in effect.
func (g *Game) Config() config.Match3Config {
	return g.cfg
}

// Events returns the engine notifications of the last turn.
func (g *Game) Events() []engine.Event {
	return g.recorder.Events
}

// Cursor returns the keyboard cursor position.
func (g *Game) Cursor() engine.Position {
	return g.cursor
}
