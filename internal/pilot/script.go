package pilot

import (
	"fmt"
	"math"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/vovakirdan/astro-arcade/internal/core"
	"github.com/vovakirdan/astro-arcade/internal/sim"
)

// A pilot script defines a function `pilot(view)` returning a map with any of
// the keys rotate (-1..1), thrust (bool), fire (bool), move_x and move_y
// (-1, 0, 1). The view carries the craft, the score and the nearest threats.
const scriptDispatch = `
__intent := pilot(__view)
`

// Script is an InputSource driven by a tengo script. It also implements
// sim.Renderer so it can observe the state it steers.
type Script struct {
	compiled *tengo.Compiled
	last     sim.Snapshot
	err      error
}

// LoadScript reads and compiles a pilot script from disk.
func LoadScript(path string) (*Script, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pilot: read script: %w", err)
	}
	return NewScript(src)
}

// NewScript compiles a pilot script.
func NewScript(src []byte) (*Script, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), scriptDispatch...))
	if err := script.Add("__view", map[string]any{}); err != nil {
		return nil, fmt.Errorf("pilot: compile script: %w", err)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("pilot: compile script: %w", err)
	}
	return &Script{compiled: compiled}, nil
}

// Present implements sim.Renderer.
func (s *Script) Present(snap sim.Snapshot) {
	s.last = snap
}

// Err returns the first script error. After an error the pilot goes idle.
func (s *Script) Err() error {
	return s.err
}

// Sample implements sim.InputSource.
func (s *Script) Sample() sim.Intent {
	if s.err != nil {
		return sim.Intent{}
	}
	in, err := s.run()
	if err != nil {
		s.err = fmt.Errorf("pilot: script tick %d: %w", s.last.Tick, err)
		return sim.Intent{}
	}
	return in
}

func (s *Script) run() (sim.Intent, error) {
	if err := s.compiled.Set("__view", View(s.last)); err != nil {
		return sim.Intent{}, err
	}
	if err := s.compiled.Run(); err != nil {
		return sim.Intent{}, err
	}

	out := s.compiled.Get("__intent").Map()
	if out == nil {
		return sim.Intent{}, fmt.Errorf("pilot() must return a map")
	}
	return sim.Intent{
		Rotation: core.ClampF(toFloat(out["rotate"]), -1, 1),
		Thrust:   toBool(out["thrust"]),
		Fire:     toBool(out["fire"]),
		MoveX:    core.Clamp(int(toFloat(out["move_x"])), -1, 1),
		MoveY:    core.Clamp(int(toFloat(out["move_y"])), -1, 1),
	}, nil
}

// View flattens a snapshot into the plain map handed to pilot scripts.
func View(snap sim.Snapshot) map[string]any {
	p := snap.Player
	view := map[string]any{
		"tick":    int64(snap.Tick),
		"score":   snap.Score,
		"x":       p.Pos.X,
		"y":       p.Pos.Y,
		"w":       p.W,
		"heading": sim.NormalizeHeading(p.Heading),
		"speed":   p.Speed,
	}

	target := p.Pos.Add(core.V(p.W/2, p.H/2))
	if h, ok := nearest(target, snap.Hazards); ok {
		view["hazard"] = describe(target, p.Heading, h)
	}
	if o, ok := nearest(target, snap.Obstacles); ok {
		view["obstacle"] = describe(target, p.Heading, o)
	}
	view["hazards"] = len(snap.Hazards)
	view["obstacles"] = len(snap.Obstacles)
	return view
}

func nearest(from core.Vec2, es []sim.Entity) (sim.Entity, bool) {
	best, bestDist := sim.Entity{}, math.Inf(1)
	for _, e := range es {
		c := e.Pos.Add(core.V(e.W/2, e.H/2))
		if d := core.Dist(from, c); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best, !math.IsInf(bestDist, 1)
}

func describe(from core.Vec2, heading float64, e sim.Entity) map[string]any {
	c := e.Pos.Add(core.V(e.W/2, e.H/2))
	d := c.Sub(from)
	bearing := sim.NormalizeHeading(math.Atan2(d.Y, d.X) * 180 / math.Pi)
	return map[string]any{
		"x":       e.Pos.X,
		"y":       e.Pos.Y,
		"w":       e.W,
		"h":       e.H,
		"dx":      d.X,
		"dy":      d.Y,
		"dist":    d.Len(),
		"bearing": bearing,
		"turn":    turn(heading, bearing),
	}
}

// turn returns the signed shortest rotation from heading to bearing, in (-180, 180].
func turn(heading, bearing float64) float64 {
	diff := sim.NormalizeHeading(bearing - heading)
	if diff > 180 {
		diff -= 360
	}
	return diff
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case float64:
		return n
	case bool:
		if n {
			return 1
		}
	}
	return 0
}

func toBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		return b != 0
	case float64:
		return b != 0
	}
	return false
}
