package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// recordingGame remembers what the platform fed it.
type recordingGame struct {
	resets  []core.RuntimeConfig
	resizes [][2]int
	frames  []core.InputFrame
	stats   core.SessionStats
}

func (g *recordingGame) ID() string    { return "recording" }
func (g *recordingGame) Title() string { return "Recording" }

func (g *recordingGame) Reset(cfg core.RuntimeConfig) { g.resets = append(g.resets, cfg) }

func (g *recordingGame) Resize(w, h int) { g.resizes = append(g.resizes, [2]int{w, h}) }

func (g *recordingGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.State()}
}

func (g *recordingGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "board") }

func (g *recordingGame) State() core.GameState { return core.GameState{Stats: g.stats} }

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 7}
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected GameModel", next)
	}
	return gm, cmd
}

func TestGameModelInitResetsWithoutHelpLine(t *testing.T) {
	g := &recordingGame{}
	m := NewGameModel(g, nil, testConfig(), "local")

	if cmd := m.Init(); cmd == nil {
		t.Error("Init() should start the tick loop")
	}
	if len(g.resets) != 1 {
		t.Fatalf("Reset() called %d times, expected 1", len(g.resets))
	}
	if g.resets[0].ScreenH != 12-helpRows || g.resets[0].Seed != 7 {
		t.Errorf("Reset() config = %+v, expected height %d and seed 7", g.resets[0], 12-helpRows)
	}
}

func TestGameModelFeedsInputOnTick(t *testing.T) {
	g := &recordingGame{}
	m := NewGameModel(g, nil, testConfig(), "local")

	m, _ = update(t, m, runeKey('h'))
	m, _ = update(t, m, tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, cmd := update(t, m, TickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}

	if len(g.frames) != 1 {
		t.Fatalf("Step() called %d times, expected 1", len(g.frames))
	}
	in := g.frames[0]
	if !in.Has(core.ActionHint) {
		t.Error("first frame should carry ActionHint")
	}
	if len(in.Pointer) != 1 || in.Pointer[0] != (core.PointerEvent{Kind: core.PointerPress, X: 3, Y: 4}) {
		t.Errorf("first frame pointer = %v, expected one press at (3,4)", in.Pointer)
	}

	// Input is cleared after each tick
	update(t, m, TickMsg{})
	if !g.frames[1].Empty() {
		t.Errorf("second frame should be empty, got %+v", g.frames[1])
	}
}

func TestGameModelResizeKeepsBoard(t *testing.T) {
	g := &recordingGame{}
	m := NewGameModel(g, nil, testConfig(), "local")
	m.Init()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if len(g.resets) != 1 {
		t.Errorf("Reset() called %d times, expected only the initial reset", len(g.resets))
	}
	if len(g.resizes) != 1 || g.resizes[0] != [2]int{100, 30 - helpRows} {
		t.Errorf("Resize() calls = %v, expected [[100 %d]]", g.resizes, 30-helpRows)
	}
	if m.Config().ScreenW != 100 || m.Config().ScreenH != 30 {
		t.Errorf("Config() = %+v, expected 100x30", m.Config())
	}
}

func TestGameModelJournalsOnQuit(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &recordingGame{stats: core.SessionStats{Swaps: 4, Matched: 3, Reverted: 1, Passes: 5, LongestChain: 2}}
	m := NewGameModel(g, store, testConfig(), "alice")

	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("q should quit the program")
	}
	// A second quit must not journal twice
	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	sessions, err := store.RecentSessions("recording", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("Expected 1 journaled session, got %d", len(sessions))
	}
	if sessions[0].Player != "alice" || sessions[0].Stats != g.stats {
		t.Errorf("session = %+v, expected alice with %+v", sessions[0], g.stats)
	}
}

func TestGameModelBackToMenu(t *testing.T) {
	g := &recordingGame{}
	m := NewGameModel(g, nil, testConfig(), "local")

	m, cmd := update(t, m, runeKey('b'))
	if !m.BackToMenu() || m.IsQuitting() {
		t.Errorf("b should go back to the menu, got back=%v quit=%v", m.BackToMenu(), m.IsQuitting())
	}
	if cmd != nil {
		t.Error("going back should not quit the program")
	}

	// Ticks stop once the game is left
	if _, cmd := update(t, m, TickMsg{}); cmd != nil {
		t.Error("tick after back should not reschedule")
	}

	standalone := NewGameModel(g, nil, testConfig(), "local")
	standalone.quitOnBack = true
	standalone, cmd = update(t, standalone, runeKey('b'))
	if !standalone.IsQuitting() || cmd == nil {
		t.Error("b in standalone play should quit")
	}
}

func TestGameModelView(t *testing.T) {
	g := &recordingGame{}
	m := NewGameModel(g, nil, testConfig(), "local")

	view := m.View()
	if !strings.HasPrefix(view, "board") {
		t.Errorf("View() should start with the game render, got %q", view)
	}
	if !strings.Contains(view, "hint") {
		t.Errorf("View() should include the key help line, got %q", view)
	}
	if lines := strings.Count(view, "\n"); lines != 12-helpRows {
		t.Errorf("View() has %d line breaks, expected %d", lines, 12-helpRows)
	}
}
