package sim

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/astro-arcade/internal/core"
)

// InputSource supplies the intent for the next tick. It is sampled once at
// tick start and must not block.
type InputSource interface {
	Sample() Intent
}

// Renderer receives a read-only snapshot after every tick.
type Renderer interface {
	Present(Snapshot)
}

// BoundsProvider reports the current play area. It is read at tick start.
type BoundsProvider interface {
	Bounds() core.Bounds
}

// FixedBounds is a BoundsProvider that never changes.
type FixedBounds core.Bounds

// Bounds implements BoundsProvider.
func (f FixedBounds) Bounds() core.Bounds { return core.Bounds(f) }

// InputFunc adapts a function to InputSource.
type InputFunc func() Intent

// Sample implements InputSource.
func (f InputFunc) Sample() Intent { return f() }

// RenderFunc adapts a function to Renderer.
type RenderFunc func(Snapshot)

// Present implements Renderer.
func (f RenderFunc) Present(s Snapshot) { f(s) }

// Scheduler drives a Simulation one tick at a time. Apart from the running
// flag it holds no simulation state.
type Scheduler struct {
	sim     *Simulation
	input   InputSource
	render  Renderer
	bounds  BoundsProvider
	logger  *log.Logger
	running bool
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *log.Logger) SchedulerOption {
	return func(s *Scheduler) { s.logger = l }
}

// WithRenderer sets the render collaborator.
func WithRenderer(r Renderer) SchedulerOption {
	return func(s *Scheduler) { s.render = r }
}

// NewScheduler creates a scheduler. Without options nothing is rendered and
// logs are discarded.
func NewScheduler(sim *Simulation, input InputSource, bounds BoundsProvider, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		sim:     sim,
		input:   input,
		bounds:  bounds,
		render:  RenderFunc(func(Snapshot) {}),
		logger:  log.New(io.Discard),
		running: !sim.Over(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Simulation returns the driven simulation.
func (s *Scheduler) Simulation() *Simulation { return s.sim }

// Running reports whether more ticks will be scheduled.
func (s *Scheduler) Running() bool { return s.running }

// Stop halts scheduling. The simulation itself is left untouched.
func (s *Scheduler) Stop() { s.running = false }

// Tick samples input and bounds, steps the simulation and presents the
// result. It returns false once the scheduler has stopped.
func (s *Scheduler) Tick() (Report, bool) {
	if !s.running {
		return Report{}, false
	}

	in := s.input.Sample()
	b := s.bounds.Bounds()
	r := s.sim.Step(in, b)

	if r.Spawned > 0 {
		s.logger.Debug("spawned", "tick", r.Tick, "count", r.Spawned)
	}
	if r.GameOver {
		s.running = false
		s.logger.Info("game over", "tick", r.Tick, "score", r.Score, "reason", r.Reason)
	}

	s.render.Present(s.sim.Snapshot())
	return r, true
}

// RunTicks runs up to n ticks back to back and returns how many ran.
func (s *Scheduler) RunTicks(n int) int {
	ran := 0
	for ran < n {
		if _, ok := s.Tick(); !ok {
			break
		}
		ran++
	}
	return ran
}

// Run ticks at a fixed rate until the run ends or ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context, rate int) error {
	if rate <= 0 {
		rate = core.DefaultTickRate
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	for s.running {
		select {
		case <-ctx.Done():
			s.running = false
			return ctx.Err()
		case <-ticker.C:
			s.Tick()
		}
	}
	return nil
}
