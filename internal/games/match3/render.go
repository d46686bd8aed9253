package match3

import (
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

// tileStyle is the glyph and color of one tile kind.
type tileStyle struct {
	glyph rune
	color core.Color
}

// palette covers up to eight kinds; further kinds fall back to letters.
var palette = []tileStyle{
	{'●', core.ColorRed},
	{'◆', core.ColorGreen},
	{'▲', core.ColorYellow},
	{'■', core.ColorBlue},
	{'★', core.ColorMagenta},
	{'♥', core.ColorCyan},
	{'♣', core.ColorOrange},
	{'✚', core.ColorWhite},
}

// StyleFor returns the glyph and color used to draw a kind.
func StyleFor(k engine.Kind) (rune, core.Color) {
	if int(k) < len(palette) {
		p := palette[k]
		return p.glyph, p.color
	}
	return rune('A' + k%26), core.ColorGray
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	g.renderFooter(dst)

	if g.paused {
		dst.DrawTextCenteredColor(g.view.board.Y+g.view.board.H/2, " PAUSED ", core.ColorBrightWhite)
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title and session counters.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextCenteredColor(0, g.Title(), core.ColorBrightWhite)

	s := g.stats
	line := fmt.Sprintf("Swaps %d  Cascades %d  Cleared %d  Best chain %d",
		s.Matched, s.Passes, s.TilesCleared, s.LongestChain)
	dst.DrawTextCenteredColor(1, line, core.ColorGray)
}

// renderBoard draws the frame, the cell markers and the animated tiles.
func (g *Game) renderBoard(dst *core.Screen) {
	v := g.view
	frame := core.NewRect(v.board.X-1, v.board.Y-1, v.board.W+2, v.board.H+2)
	dst.DrawBox(frame, core.ColorGray)

	// Empty cell dots first so falling tiles cover them
	for row := range g.cfg.Board.Rows {
		for col := range g.cfg.Board.Columns {
			x, y := v.toScreen(float64(col), float64(row))
			dst.SetColor(x+v.cellW/2-1, y+(v.cellH-1)/2, '·', core.ColorGray)
		}
	}

	for _, s := range g.anim.Sprites() {
		g.renderSprite(dst, s)
	}

	g.renderMarkers(dst)
}

// renderSprite draws one tile. Sprites above the board are clipped.
func (g *Game) renderSprite(dst *core.Screen, s *Sprite) {
	v := g.view
	x, y := v.toScreen(s.C, s.R)
	glyph, color := StyleFor(s.Tile.Kind)

	switch {
	case s.Scale <= 0:
		return
	case s.Scale < 0.4:
		glyph = '·'
	case s.Scale < 0.8:
		glyph = '∘'
	}

	w := max(v.cellW-1, 1)
	h := max(v.cellH-1, 1)
	for dy := range h {
		py := y + dy
		if py < v.board.Y || py >= v.board.Bottom() {
			continue
		}
		for dx := range w {
			dst.SetColor(x+dx, py, glyph, color)
		}
	}
}

// renderMarkers underlines the cursor, the selection and the hint.
func (g *Game) renderMarkers(dst *core.Screen) {
	if g.hint != nil {
		g.underline(dst, g.hint.From, '┄', core.ColorCyan)
		g.underline(dst, g.hint.To, '┄', core.ColorCyan)
	}
	g.underline(dst, g.cursor, '▔', core.ColorBrightWhite)
	if p, ok := g.eng.Controller().Pending(); ok {
		g.underline(dst, p, '━', core.ColorYellow)
	}
}

func (g *Game) underline(dst *core.Screen, p engine.Position, r rune, c core.Color) {
	v := g.view
	x, y := v.toScreen(float64(p.Column), float64(p.Row))
	y += v.cellH - 1
	if v.cellH == 1 {
		// No spare row: mark the cell edges instead
		dst.SetColor(x+v.cellW-1, y, '◂', c)
		return
	}
	for dx := range max(v.cellW-1, 1) {
		dst.SetColor(x+dx, y, r, c)
	}
}

// renderFooter draws the status message and the no-moves banner.
func (g *Game) renderFooter(dst *core.Screen) {
	y := g.view.board.Bottom() + 1
	if g.message != "" {
		dst.DrawTextCenteredColor(y, g.message, core.ColorYellow)
	}
	if g.noMoves && !g.eng.Busy() {
		dst.DrawTextCenteredColor(y+1, "No moves left - press R for a new board", core.ColorRed)
	}
}
