package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // Up arrow, K - move cursor up
	ActionDown           // Down arrow, J - move cursor down
	ActionLeft           // Left arrow, H - move cursor left
	ActionRight          // Right arrow, L - move cursor right
	ActionSelect         // Enter, Space - pick or drop the tile under the cursor
	ActionCancel         // Escape - drop the pending selection
	ActionHint           // ? - show a valid swap
	ActionShuffle        // R - replace the board with a new one
	ActionBack           // B - go back to menu
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSelect:
		return "Select"
	case ActionCancel:
		return "Cancel"
	case ActionHint:
		return "Hint"
	case ActionShuffle:
		return "Shuffle"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// PointerKind distinguishes pointer press from release.
type PointerKind uint8

const (
	PointerPress PointerKind = iota + 1
	PointerRelease
)

// PointerEvent is a mouse press or release in screen cell coordinates.
type PointerEvent struct {
	Kind PointerKind
	X, Y int
}

// InputFrame represents the input for a single simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Pointer holds pointer events in arrival order. A press and its release
	// may land in the same frame.
	Pointer []PointerEvent
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Press records a pointer press at (x, y).
func (f *InputFrame) Press(x, y int) {
	f.Pointer = append(f.Pointer, PointerEvent{Kind: PointerPress, X: x, Y: y})
}

// Release records a pointer release at (x, y).
func (f *InputFrame) Release(x, y int) {
	f.Pointer = append(f.Pointer, PointerEvent{Kind: PointerRelease, X: x, Y: y})
}

// Empty reports whether the frame carries no input at all.
func (f InputFrame) Empty() bool {
	for _, v := range f.Actions {
		if v {
			return false
		}
	}
	return len(f.Pointer) == 0
}

// Clear resets all input for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = f.Pointer[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Pointer = append([]PointerEvent(nil), f.Pointer...)
	return clone
}
