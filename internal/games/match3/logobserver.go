package match3

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

// LogObserver writes engine notifications to a logger at debug level.
type LogObserver struct {
	log *log.Logger
}

// NewLogObserver creates an observer logging to l.
func NewLogObserver(l *log.Logger) *LogObserver {
	return &LogObserver{log: l}
}

func (o *LogObserver) TileRemoved(t engine.Tile, at engine.Position) {
	o.log.Debug("tile removed", "id", t.ID, "kind", t.Kind, "at", at)
}

func (o *LogObserver) TileSpawned(t engine.Tile, at, origin engine.Position) {
	o.log.Debug("tile spawned", "id", t.ID, "kind", t.Kind, "at", at, "origin", origin)
}

func (o *LogObserver) TileMoved(t engine.Tile, from, to engine.Position) {
	o.log.Debug("tile moved", "id", t.ID, "from", from, "to", to)
}

func (o *LogObserver) SwapReverted(a, b engine.Tile) {
	o.log.Debug("swap reverted", "a", a.ID, "b", b.ID)
}
