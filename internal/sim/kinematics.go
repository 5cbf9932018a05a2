package sim

import (
	"math"

	"github.com/vovakirdan/astro-arcade/internal/core"
)

// Boundary selects what happens when an entity leaves the play area.
type Boundary uint8

const (
	// BoundaryWrap re-enters the entity on the opposite edge.
	BoundaryWrap Boundary = iota
	// BoundaryReflect clamps the entity to the edge and mirrors its heading.
	BoundaryReflect
	// BoundaryCull removes the entity once its position is strictly outside the area.
	BoundaryCull
	// BoundaryCullBelow removes the entity only once its top edge passes the bottom.
	// Scrolling obstacles enter from above, so the top edge is open.
	BoundaryCullBelow
)

// Edge is a bit set of play area edges.
type Edge uint8

const (
	EdgeLeft Edge = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom

	EdgeNone Edge = 0
	EdgeAll       = EdgeLeft | EdgeRight | EdgeTop | EdgeBottom
)

// NormalizeHeading reduces deg into [0, 360).
func NormalizeHeading(deg float64) float64 {
	h := math.Mod(deg, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

// Heading returns the unit vector for a heading in degrees.
// 0 points right and 90 points down. Cardinal headings are exact.
func Heading(deg float64) core.Vec2 {
	h := NormalizeHeading(deg)
	switch h {
	case 0:
		return core.V(1, 0)
	case 90:
		return core.V(0, 1)
	case 180:
		return core.V(-1, 0)
	case 270:
		return core.V(0, -1)
	}
	rad := h * math.Pi / 180
	return core.V(math.Cos(rad), math.Sin(rad))
}

// Advance moves e by one tick along its heading and applies the boundary
// policy. The bool is false when the entity left play and must be removed.
func Advance(e Entity, b core.Bounds, p Boundary) (Entity, bool) {
	e.Pos = e.Pos.Add(Heading(e.Heading).Scale(e.Speed))

	switch p {
	case BoundaryWrap:
		e.Pos = Wrap(e.Pos, b)
	case BoundaryReflect:
		e, _ = Reflect(e, b, EdgeAll)
	case BoundaryCull:
		return e, !Outside(e, b)
	case BoundaryCullBelow:
		return e, e.Pos.Y <= b.H
	}
	return e, true
}

// Wrap folds p back into the half-open area [0,W)x[0,H).
// Leaving past the far edge resets to 0; leaving below 0 resets to the
// largest coordinate still inside the area.
func Wrap(p core.Vec2, b core.Bounds) core.Vec2 {
	return core.Vec2{X: wrapAxis(p.X, b.W), Y: wrapAxis(p.Y, b.H)}
}

func wrapAxis(v, extent float64) float64 {
	switch {
	case v >= extent:
		return 0
	case v < 0:
		return math.Nextafter(extent, 0)
	}
	return v
}

// Outside reports whether the position of e is strictly outside the closed
// play area. Box extents are ignored.
func Outside(e Entity, b core.Bounds) bool {
	return !b.Contains(e.Pos)
}

// Reflect clamps e inside the given edges and mirrors the heading component
// that points out through them. It returns the edges that were touched.
// Edges outside the set stay open.
func Reflect(e Entity, b core.Bounds, edges Edge) (Entity, Edge) {
	var hit Edge
	dir := Heading(e.Heading)

	if edges&EdgeLeft != 0 && e.Pos.X < 0 {
		e.Pos.X = 0
		hit |= EdgeLeft
		if dir.X < 0 {
			e.Heading = NormalizeHeading(180 - e.Heading)
		}
	}
	if edges&EdgeRight != 0 && e.Pos.X+e.W > b.W {
		e.Pos.X = b.W - e.W
		hit |= EdgeRight
		if dir.X > 0 {
			e.Heading = NormalizeHeading(180 - e.Heading)
		}
	}

	// Heading may have changed on the X axis; Y mirroring keeps that change.
	dir = Heading(e.Heading)
	if edges&EdgeTop != 0 && e.Pos.Y < 0 {
		e.Pos.Y = 0
		hit |= EdgeTop
		if dir.Y < 0 {
			e.Heading = NormalizeHeading(-e.Heading)
		}
	}
	if edges&EdgeBottom != 0 && e.Pos.Y+e.H > b.H {
		e.Pos.Y = b.H - e.H
		hit |= EdgeBottom
		if dir.Y > 0 {
			e.Heading = NormalizeHeading(-e.Heading)
		}
	}
	return e, hit
}

// Steer applies one tick of rotation and thrust to the craft.
// Speed grows by AccelerationStep up to MaxSpeed while accelerating and
// decays by the same step toward zero otherwise.
func Steer(c Craft) Craft {
	c.Heading += c.RotationRate
	if c.Accelerating {
		c.Speed = math.Min(c.Speed+c.AccelerationStep, c.MaxSpeed)
	} else {
		c.Speed = math.Max(c.Speed-c.AccelerationStep, 0)
	}
	return c
}

// Strafe moves the craft along the axes by step per unit of dx/dy and keeps
// its box inside the play area.
func Strafe(c Craft, dx, dy int, step float64, b core.Bounds) Craft {
	c.Pos.X = core.ClampF(c.Pos.X+float64(dx)*step, 0, math.Max(0, b.W-c.W))
	c.Pos.Y = core.ClampF(c.Pos.Y+float64(dy)*step, 0, math.Max(0, b.H-c.H))
	return c
}
