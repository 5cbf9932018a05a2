// Package pilot provides the input collaborators that feed a simulation one
// Intent per tick: the keyboard latch, a tengo-scripted pilot and a built-in
// autopilot.
package pilot

import (
	"github.com/vovakirdan/astro-arcade/internal/core"
	"github.com/vovakirdan/astro-arcade/internal/sim"
)

// DefaultHold is how many ticks a key stays down after its last press.
// Terminals only report presses and auto-repeat, never releases, so a held
// key is inferred from repeats arriving faster than the hold window.
const DefaultHold = 6

// Latch turns per-tick key frames into held state.
// It is written and sampled from the same goroutine.
type Latch struct {
	hold int
	held map[core.Action]int
	fire bool
}

// NewLatch creates a latch holding keys for hold ticks.
func NewLatch(hold int) *Latch {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Latch{
		hold: hold,
		held: make(map[core.Action]int),
	}
}

// Absorb records the actions pressed since the last tick.
// Fire is an edge: one press queues exactly one shot.
func (l *Latch) Absorb(f core.InputFrame) {
	for _, a := range f.Actions() {
		if a == core.ActionFire {
			l.fire = true
			continue
		}
		l.held[a] = l.hold
	}
}

// Held reports whether a is currently considered down.
func (l *Latch) Held(a core.Action) bool {
	return l.held[a] > 0
}

// Axis folds a negative/positive pair of held actions into -1, 0 or +1.
func (l *Latch) Axis(neg, pos core.Action) int {
	v := 0
	if l.Held(neg) {
		v--
	}
	if l.Held(pos) {
		v++
	}
	return v
}

// Sample implements sim.InputSource. It builds the intent from the held
// keys, consumes a pending shot and ages every hold by one tick.
func (l *Latch) Sample() sim.Intent {
	in := sim.Intent{
		Rotation: float64(l.Axis(core.ActionLeft, core.ActionRight)),
		Thrust:   l.Held(core.ActionUp),
		Fire:     l.fire,
		MoveX:    l.Axis(core.ActionLeft, core.ActionRight),
		MoveY:    l.Axis(core.ActionUp, core.ActionDown),
	}
	l.fire = false
	l.Age()
	return in
}

// Age counts one tick off every held key.
func (l *Latch) Age() {
	for a, n := range l.held {
		if n <= 1 {
			delete(l.held, a)
			continue
		}
		l.held[a] = n - 1
	}
}

// Release drops all held keys and any pending shot.
func (l *Latch) Release() {
	clear(l.held)
	l.fire = false
}
