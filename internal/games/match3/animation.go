package match3

import (
	"sort"

	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

// Motion selects the duration used for TileMoved notifications.
type Motion uint8

const (
	MotionSwap Motion = iota // Swap and revert slides
	MotionFall               // Gravity shifts
)

type segmentKind uint8

const (
	segMove segmentKind = iota
	segPop
)

// segment is one queued piece of a sprite's animation. Segments of a sprite
// play back to back.
type segment struct {
	kind    segmentKind
	fromC   float64
	fromR   float64
	toC     float64
	toR     float64
	ticks   int
	elapsed int
}

// Sprite is the visual state of one tile. C and R are fractional grid
// coordinates; rows above the board are negative.
type Sprite struct {
	Tile  engine.Tile
	C     float64
	R     float64
	Scale float64 // 1 = full size, shrinks to 0 while popping

	queue  []segment
	tailC  float64 // Position the sprite reaches once the queue drains
	tailR  float64
	doomed bool // Removed from the board, dropped after its pop
}

// Animator is the visual collaborator of the engine. It turns logical
// notifications into timed sprite motion and never touches the board.
type Animator struct {
	timing  Timing
	motion  Motion
	sprites map[engine.TileID]*Sprite
}

// Timing holds animation durations in ticks.
type Timing struct {
	Swap int
	Pop  int
	Fall int
}

// NewAnimator creates an animator with no sprites.
func NewAnimator(t Timing) *Animator {
	return &Animator{
		timing:  t,
		sprites: make(map[engine.TileID]*Sprite),
	}
}

// SetMotion selects how subsequent moves are timed.
func (a *Animator) SetMotion(m Motion) {
	a.motion = m
}

// Sync drops all animation and places one sprite on every tile of b.
func (a *Animator) Sync(b *engine.Board) {
	clear(a.sprites)
	for row := range b.Rows() {
		for col := range b.Columns() {
			c, _ := b.Get(engine.P(col, row))
			if !c.Filled {
				continue
			}
			fc, fr := float64(col), float64(row)
			a.sprites[c.Tile.ID] = &Sprite{Tile: c.Tile, C: fc, R: fr, Scale: 1, tailC: fc, tailR: fr}
		}
	}
}

func (a *Animator) sprite(t engine.Tile, at engine.Position) *Sprite {
	s, ok := a.sprites[t.ID]
	if !ok {
		fc, fr := float64(at.Column), float64(at.Row)
		s = &Sprite{Tile: t, C: fc, R: fr, Scale: 1, tailC: fc, tailR: fr}
		a.sprites[t.ID] = s
	}
	return s
}

func (s *Sprite) enqueue(kind segmentKind, toC, toR float64, ticks int) {
	s.queue = append(s.queue, segment{
		kind:  kind,
		fromC: s.tailC,
		fromR: s.tailR,
		toC:   toC,
		toR:   toR,
		ticks: ticks,
	})
	s.tailC, s.tailR = toC, toR
}

// TileMoved queues a slide to the new cell.
func (a *Animator) TileMoved(t engine.Tile, from, to engine.Position) {
	ticks := a.timing.Fall
	if a.motion == MotionSwap {
		ticks = a.timing.Swap
	}
	a.sprite(t, from).enqueue(segMove, float64(to.Column), float64(to.Row), ticks)
}

// TileRemoved queues a pop after any pending motion.
func (a *Animator) TileRemoved(t engine.Tile, at engine.Position) {
	s := a.sprite(t, at)
	s.enqueue(segPop, s.tailC, s.tailR, a.timing.Pop)
	s.doomed = true
}

// TileSpawned creates a sprite above the board and lets it fall into place.
func (a *Animator) TileSpawned(t engine.Tile, at, origin engine.Position) {
	s := a.sprite(t, origin)
	s.enqueue(segMove, float64(at.Column), float64(at.Row), a.timing.Fall)
}

// SwapReverted needs no extra motion: the two slides back were already
// queued behind the forward slides.
func (a *Animator) SwapReverted(engine.Tile, engine.Tile) {}

// Update advances every sprite by one tick.
func (a *Animator) Update() {
	for id, s := range a.sprites {
		if len(s.queue) == 0 {
			continue
		}
		seg := &s.queue[0]
		seg.elapsed++

		p := 1.0
		if seg.ticks > 0 {
			p = min(float64(seg.elapsed)/float64(seg.ticks), 1)
		}

		switch seg.kind {
		case segMove:
			e := easeOutQuad(p)
			s.C = seg.fromC + (seg.toC-seg.fromC)*e
			s.R = seg.fromR + (seg.toR-seg.fromR)*e
		case segPop:
			s.Scale = 1 - p
		}

		if p >= 1 {
			s.queue = s.queue[1:]
			if len(s.queue) == 0 && s.doomed {
				delete(a.sprites, id)
			}
		}
	}
}

// Idle reports whether no sprite has motion left.
func (a *Animator) Idle() bool {
	for _, s := range a.sprites {
		if len(s.queue) > 0 {
			return false
		}
	}
	return true
}

// Sprites returns the sprites sorted by id, so later tiles draw on top.
func (a *Animator) Sprites() []*Sprite {
	out := make([]*Sprite, 0, len(a.sprites))
	for _, s := range a.sprites {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Tile.ID < out[j].Tile.ID
	})
	return out
}

// Len returns the number of live sprites.
func (a *Animator) Len() int {
	return len(a.sprites)
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}
