package pilot

import (
	"math"

	"github.com/vovakirdan/astro-arcade/internal/core"
	"github.com/vovakirdan/astro-arcade/internal/sim"
)

// Auto is a deterministic autopilot for the headless runner. It reacts only
// to the last presented snapshot, so a seeded simulation driven by Auto
// replays identically.
type Auto struct {
	cfg    sim.Config
	bounds core.Bounds
	last   sim.Snapshot
	ready  bool
}

// fireEvery is the autopilot's shot cadence in ticks.
const fireEvery = 8

// NewAuto creates an autopilot for the given configuration and play area.
func NewAuto(cfg sim.Config, b core.Bounds) *Auto {
	return &Auto{cfg: cfg, bounds: b}
}

// Present implements sim.Renderer.
func (a *Auto) Present(snap sim.Snapshot) {
	a.last = snap
	a.ready = true
}

// Sample implements sim.InputSource.
func (a *Auto) Sample() sim.Intent {
	if !a.ready {
		return sim.Intent{}
	}
	if a.cfg.Controls == sim.ControlStrafe {
		return a.dodge()
	}
	return a.hunt()
}

// hunt turns toward the nearest hazard, fires when roughly aligned and
// drifts when nothing is close.
func (a *Auto) hunt() sim.Intent {
	p := a.last.Player
	h, ok := nearest(p.Pos, a.last.Hazards)
	if !ok {
		return sim.Intent{}
	}

	d := h.Pos.Sub(p.Pos)
	diff := turn(p.Heading, math.Atan2(d.Y, d.X)*180/math.Pi)
	step := math.Max(a.cfg.RotationStep, 1)

	return sim.Intent{
		Rotation: core.ClampF(diff/step, -1, 1),
		Thrust:   d.Len() > 250 && math.Abs(diff) < 30,
		Fire:     math.Abs(diff) < 10 && a.last.Tick%fireEvery == 0,
	}
}

// dodge keeps the craft out of the columns of falling obstacles and shoots
// anything directly above it.
func (a *Auto) dodge() sim.Intent {
	p := a.last.Player
	left, right := p.Pos.X, p.Pos.X+p.W

	in := sim.Intent{}
	threat := math.Inf(1)
	var threatMid float64
	for _, o := range a.last.Obstacles {
		if o.Pos.Y+o.H > p.Pos.Y+p.H {
			continue // already past the craft
		}
		if o.Pos.X+o.W <= left || o.Pos.X >= right {
			continue
		}
		in.Fire = a.last.Tick%fireEvery == 0
		if gap := p.Pos.Y - (o.Pos.Y + o.H); gap < threat {
			threat = gap
			threatMid = o.Pos.X + o.W/2
		}
	}

	mid := left + p.W/2
	switch {
	case threat < 150:
		if threatMid >= mid && left > a.cfg.StrafeStep || right >= a.bounds.W-a.cfg.StrafeStep {
			in.MoveX = -1
		} else {
			in.MoveX = 1
		}
	case mid < a.bounds.W/2-a.cfg.StrafeStep:
		in.MoveX = 1
	case mid > a.bounds.W/2+a.cfg.StrafeStep:
		in.MoveX = -1
	}
	return in
}
