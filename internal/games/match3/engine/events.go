package engine

// Observer receives notifications of committed logical changes. The board is
// already updated when a method is called; implementations animate or log at
// their own pace and must not mutate the board.
type Observer interface {
	// TileRemoved is called once per tile cleared as part of a match.
	TileRemoved(tile Tile, at Position)

	// TileSpawned is called for each refill tile. origin lies above the grid
	// (negative row) in the tile's column.
	TileSpawned(tile Tile, at, origin Position)

	// TileMoved covers both gravity shifts and swap shifts.
	TileMoved(tile Tile, from, to Position)

	// SwapReverted is called after a swap that produced no match was undone.
	SwapReverted(a, b Tile)
}

// NopObserver ignores all notifications.
type NopObserver struct{}

func (NopObserver) TileRemoved(Tile, Position) {}
func (NopObserver) TileSpawned(Tile, Position, Position) {}
func (NopObserver) TileMoved(Tile, Position, Position) {}
func (NopObserver) SwapReverted(Tile, Tile) {}

// MultiObserver fans notifications out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) TileRemoved(t Tile, at Position) {
	for _, o := range m {
		o.TileRemoved(t, at)
	}
}

func (m MultiObserver) TileSpawned(t Tile, at, origin Position) {
	for _, o := range m {
		o.TileSpawned(t, at, origin)
	}
}

func (m MultiObserver) TileMoved(t Tile, from, to Position) {
	for _, o := range m {
		o.TileMoved(t, from, to)
	}
}

func (m MultiObserver) SwapReverted(a, b Tile) {
	for _, o := range m {
		o.SwapReverted(a, b)
	}
}

// EventType identifies a recorded notification.
type EventType uint8

const (
	EventRemoved EventType = iota
	EventSpawned
	EventMoved
	EventReverted
)

// String returns the string representation of an event type.
func (e EventType) String() string {
	switch e {
	case EventRemoved:
		return "removed"
	case EventSpawned:
		return "spawned"
	case EventMoved:
		return "moved"
	case EventReverted:
		return "reverted"
	default:
		return "unknown"
	}
}

// Event is one recorded notification. Fields that do not apply to the
// event type are zero.
type Event struct {
	Type  EventType
	Tile  Tile
	Other Tile     // Second tile of a reverted swap
	From  Position // Previous position, or spawn origin
	To    Position // New position, or position of a removed tile
}

// Recorder is an Observer that keeps every notification in order.
type Recorder struct {
	Events []Event
}

func (r *Recorder) TileRemoved(t Tile, at Position) {
	r.Events = append(r.Events, Event{Type: EventRemoved, Tile: t, To: at})
}

func (r *Recorder) TileSpawned(t Tile, at, origin Position) {
	r.Events = append(r.Events, Event{Type: EventSpawned, Tile: t, From: origin, To: at})
}

func (r *Recorder) TileMoved(t Tile, from, to Position) {
	r.Events = append(r.Events, Event{Type: EventMoved, Tile: t, From: from, To: to})
}

func (r *Recorder) SwapReverted(a, b Tile) {
	r.Events = append(r.Events, Event{Type: EventReverted, Tile: a, Other: b})
}

// Count returns how many recorded events have the given type.
func (r *Recorder) Count(t EventType) int {
	n := 0
	for _, e := range r.Events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

func orNop(o Observer) Observer {
	if o == nil {
		return NopObserver{}
	}
	return o
}
