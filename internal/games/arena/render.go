package arena

import (
	"fmt"

	"github.com/vovakirdan/astro-arcade/internal/core"
	"github.com/vovakirdan/astro-arcade/internal/sim"
)

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.variant.Draw(dst, g.Viewport(), g.snap)
	g.renderHUD(dst) // over anything entering from above

	switch {
	case g.sim.Over():
		dst.DrawMessage(fmt.Sprintf("GAME OVER  Score: %d", g.sim.Score()), "R restart  Q quit")
	case g.paused:
		dst.DrawMessage("PAUSED", g.variant.Help)
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", g.sim.Score()), core.ColorHUD)

	level := fmt.Sprintf("Level: %.0f%%", g.Level()*100)
	dst.DrawTextColored(dst.Width()-len(level)-1, 0, level, core.ColorHUD)

	if g.loadErr != nil {
		dst.DrawTextColored(16, 0, "config error, using defaults", core.ColorRed)
		return
	}
	dst.DrawTextColored(16, 0, g.variant.Title, core.ColorHUD)
}

// DrawEntity draws e through the viewport: a single glyph for a point
// entity, a filled block for a box.
func DrawEntity(dst *core.Screen, v core.Viewport, e sim.Entity, glyph rune, c core.Color) {
	x, y := v.Cell(e.Pos)
	if e.IsPoint() {
		dst.SetColored(x, y, glyph, c)
		return
	}
	cols, rows := v.Span(e.W, e.H)
	dst.DrawRect(core.NewRect(x, y, cols, rows), glyph, c)
}

// DrawEntities draws every entity of a population with the same glyph.
func DrawEntities(dst *core.Screen, v core.Viewport, es []sim.Entity, glyph rune, c core.Color) {
	for _, e := range es {
		DrawEntity(dst, v, e, glyph, c)
	}
}

// arrows holds one glyph per 45 degree sector, clockwise from east.
// Screen y grows downward, so 90 degrees points down.
var arrows = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// Arrow returns the glyph closest to the given heading.
func Arrow(heading float64) rune {
	sector := int((sim.NormalizeHeading(heading)+22.5)/45) % 8
	return arrows[sector]
}
