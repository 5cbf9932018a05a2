// Package arena hosts a sim.Simulation behind the registry.Game interface.
// Variants such as asteroids and river supply their settings and sprites;
// the arena owns the tick plumbing: key latching, difficulty, pause and
// the HUD.
package arena

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/astro-arcade/internal/config"
	"github.com/vovakirdan/astro-arcade/internal/core"
	"github.com/vovakirdan/astro-arcade/internal/pilot"
	"github.com/vovakirdan/astro-arcade/internal/sim"
)

// HUDRows is the number of screen rows above the play field.
const HUDRows = 1

// Settings is everything a variant needs to build a run.
type Settings struct {
	World      config.WorldConfig
	Sim        sim.Config
	Difficulty config.DifficultyConfig
}

// Variant describes one game built on the arena.
type Variant struct {
	ID    string
	Title string
	Help  string // control hint shown on the pause screen

	// Load returns the settings for the next run. Errors fall back to Defaults.
	Load     func() (Settings, error)
	Defaults func() Settings

	// Draw paints the play field. The HUD is drawn over it afterwards.
	Draw func(dst *core.Screen, v core.Viewport, snap sim.Snapshot)
}

// Game implements registry.Game for a Variant.
type Game struct {
	variant    Variant
	runtime    core.RuntimeConfig
	settings   Settings
	sim        *sim.Simulation
	sched      *sim.Scheduler
	input      sim.InputSource
	logger     *log.Logger
	latch      *pilot.Latch
	difficulty *config.DifficultyManager
	snap       sim.Snapshot
	paused     bool
	loadErr    error
}

// New creates a game for v. It is not playable until Reset.
func New(v Variant) *Game {
	return &Game{variant: v, latch: pilot.NewLatch(pilot.DefaultHold)}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return g.variant.ID }

// Title returns the display name for this game.
func (g *Game) Title() string { return g.variant.Title }

// SetInput replaces the keyboard latch with another input source, such as
// a scripted pilot. Passing nil restores the keyboard. Takes effect on the
// next Reset.
func (g *Game) SetInput(in sim.InputSource) {
	g.input = in
}

// SetLogger routes scheduler lifecycle events to l. Takes effect on the
// next Reset.
func (g *Game) SetLogger(l *log.Logger) {
	g.logger = l
}

// Reset starts a new run. A restart always builds a fresh simulation.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	settings, err := g.variant.Load()
	if err == nil {
		err = settings.Sim.Validate()
	}
	g.loadErr = err
	if err != nil {
		settings = g.variant.Defaults()
	}
	g.settings = settings
	g.difficulty = config.NewDifficultyManager(settings.Difficulty)

	g.latch.Release()
	g.paused = false

	s, err := sim.NewSimulation(g.tuned(settings.Sim, 0, 0), rand.New(rand.NewSource(runtime.Seed)), g.Bounds())
	if err != nil {
		// Defaults always validate; only a degenerate screen gets here.
		s, _ = sim.NewSimulation(settings.Sim, rand.New(rand.NewSource(runtime.Seed)), core.B(1, 1))
		g.loadErr = err
	}
	g.sim = s

	input := g.input
	if input == nil {
		input = g.latch
	}
	if r, ok := input.(sim.Renderer); ok {
		r.Present(s.Snapshot())
	}
	opts := []sim.SchedulerOption{sim.WithRenderer(g)}
	if g.logger != nil {
		opts = append(opts, sim.WithLogger(g.logger))
	}
	g.sched = sim.NewScheduler(s, input, g, opts...)
	g.snap = s.Snapshot()
}

// Resize adopts new terminal dimensions without restarting the run.
// Terminal-sized worlds pick up the new bounds on the next tick.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
}

// Bounds implements sim.BoundsProvider.
func (g *Game) Bounds() core.Bounds {
	return g.settings.World.Bounds(g.runtime.ScreenW, g.playRows())
}

// Present implements sim.Renderer. It caches the snapshot for Render and
// forwards it to an observing input source.
func (g *Game) Present(snap sim.Snapshot) {
	g.snap = snap
	if g.input == nil {
		return
	}
	if r, ok := g.input.(sim.Renderer); ok {
		r.Present(snap)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.sim.Over() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
		if g.paused {
			g.latch.Release()
		}
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.latch.Absorb(in)
	g.retune()

	r, _ := g.sched.Tick()
	return core.StepResult{State: g.State(), Events: events(r)}
}

// retune applies the difficulty for the current score and tick.
func (g *Game) retune() {
	want := g.tuned(g.settings.Sim, g.sim.Score(), int(g.sim.Tick()))
	if want == g.sim.Config() {
		return
	}
	if err := g.sim.Retune(want); err != nil {
		g.loadErr = err
	}
}

func (g *Game) tuned(base sim.Config, score, ticks int) sim.Config {
	return g.difficulty.Tune(base, score, ticks)
}

func events(r sim.Report) []string {
	var out []string
	if r.HazardKills > 0 {
		out = append(out, fmt.Sprintf("hazard destroyed x%d", r.HazardKills))
	}
	if r.ObstacleKills > 0 {
		out = append(out, fmt.Sprintf("obstacle destroyed x%d", r.ObstacleKills))
	}
	if r.Passed > 0 {
		out = append(out, fmt.Sprintf("obstacle passed x%d", r.Passed))
	}
	if r.GameOver {
		out = append(out, "game over: "+r.Reason)
	}
	return out
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.sim.Score(),
		Tick:     g.sim.Tick(),
		GameOver: g.sim.Over(),
		Paused:   g.paused,
		Reason:   g.snap.Reason,
	}
}

// Snapshot returns the last presented simulation snapshot.
func (g *Game) Snapshot() sim.Snapshot {
	return g.snap
}

// Simulation exposes the running simulation.
func (g *Game) Simulation() *sim.Simulation {
	return g.sim
}

// Scheduler exposes the scheduler driving the simulation.
func (g *Game) Scheduler() *sim.Scheduler {
	return g.sched
}

// Err returns the config problem that made the last Reset fall back to
// defaults, if any.
func (g *Game) Err() error {
	return g.loadErr
}

// Level returns the current difficulty level.
func (g *Game) Level() float64 {
	return g.difficulty.Level(g.sim.Score(), int(g.sim.Tick()))
}

func (g *Game) playRows() int {
	return max(1, g.runtime.ScreenH-HUDRows)
}

// Viewport returns the mapping from simulation space to screen cells.
func (g *Game) Viewport() core.Viewport {
	return g.settings.World.Viewport(g.runtime.ScreenW, g.playRows(), HUDRows)
}
