package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-match3/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"w", runeKey('w'), core.ActionUp, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"j", runeKey('j'), core.ActionDown, false},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"l", runeKey('l'), core.ActionRight, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSelect, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionSelect, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEscape}, core.ActionCancel, false},
		{"h", runeKey('h'), core.ActionHint, false},
		{"question mark", runeKey('?'), core.ActionHint, false},
		{"r", runeKey('r'), core.ActionShuffle, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"b", runeKey('b'), core.ActionBack, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey('h'), &frame) {
		t.Error("h should not be a quit request")
	}
	if !frame.Has(core.ActionHint) {
		t.Error("frame should carry ActionHint")
	}

	km.MapKeyToFrame(runeKey('z'), &frame)
	if len(frame.Actions) != 1 {
		t.Errorf("unbound key should not add actions, got %v", frame.Actions)
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	press := tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	release := tea.MouseMsg{X: 14, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
	motion := tea.MouseMsg{X: 12, Y: 5, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
	right := tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}

	if !km.MapMouseToFrame(press, &frame) {
		t.Error("left press should be recorded")
	}
	if km.MapMouseToFrame(motion, &frame) {
		t.Error("motion should be dropped")
	}
	if km.MapMouseToFrame(right, &frame) {
		t.Error("right button press should be dropped")
	}
	if !km.MapMouseToFrame(release, &frame) {
		t.Error("release should be recorded")
	}

	expected := []core.PointerEvent{
		{Kind: core.PointerPress, X: 10, Y: 5},
		{Kind: core.PointerRelease, X: 14, Y: 5},
	}
	if len(frame.Pointer) != len(expected) {
		t.Fatalf("Pointer = %v, expected %v", frame.Pointer, expected)
	}
	for i := range expected {
		if frame.Pointer[i] != expected[i] {
			t.Errorf("Pointer[%d] = %v, expected %v", i, frame.Pointer[i], expected[i])
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionStats},
		{tea.KeyMsg{Type: tea.KeyEscape}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}
