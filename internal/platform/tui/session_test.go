package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/registry"
)

func init() {
	registry.Register("recording", func() registry.Game { return &recordingGame{} })
}

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected SessionModel", next)
	}
	return sm, cmd
}

func newTestSession() SessionModel {
	return NewSessionModel(nil, testConfig(), "bob", log.New(io.Discard))
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := newTestSession()
	if !strings.Contains(m.View(), "Recording") {
		t.Fatalf("menu should list the registered game, got %q", m.View())
	}

	m, cmd := updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.gameModel == nil {
		t.Fatal("enter should start the selected game")
	}
	if cmd == nil {
		t.Error("starting a game should start its tick loop")
	}
	if m.gameModel.player != "bob" {
		t.Errorf("game player = %q, expected the SSH user", m.gameModel.player)
	}
	if !strings.HasPrefix(m.View(), "board") {
		t.Errorf("View() should render the game, got %q", m.View())
	}

	m, _ = updateSession(t, m, runeKey('b'))
	if m.gameModel != nil || m.quitting {
		t.Fatal("b should return to the menu without ending the session")
	}
	if !strings.Contains(m.View(), "Recording") {
		t.Errorf("View() should render the menu again, got %q", m.View())
	}
}

func TestSessionStatsAndBack(t *testing.T) {
	m := newTestSession()

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.stats == nil {
		t.Fatal("tab should open the stats browser")
	}

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.stats != nil || m.quitting {
		t.Fatal("esc should return from the stats browser to the menu")
	}
}

func TestSessionQuitFromGame(t *testing.T) {
	m := newTestSession()
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := updateSession(t, m, runeKey('q'))
	if !m.quitting || cmd == nil {
		t.Fatal("q in a game should end the session")
	}
	if m.View() != "" {
		t.Errorf("View() after quit = %q, expected empty", m.View())
	}
}

func TestSessionTracksResize(t *testing.T) {
	m := newTestSession()
	m, _ = updateSession(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.config.ScreenW != 120 || m.config.ScreenH != 40 {
		t.Errorf("config = %+v, expected 120x40", m.config)
	}
}
