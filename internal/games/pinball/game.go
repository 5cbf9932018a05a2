// Package pinball implements the bounded variant: a ball that reflects off
// the side and top walls and two paddles keeping it from leaving through
// the open bottom.
package pinball

import (
	"fmt"
	"math"

	"github.com/vovakirdan/astro-arcade/internal/config"
	"github.com/vovakirdan/astro-arcade/internal/core"
	"github.com/vovakirdan/astro-arcade/internal/games/arena"
	"github.com/vovakirdan/astro-arcade/internal/pilot"
	"github.com/vovakirdan/astro-arcade/internal/registry"
	"github.com/vovakirdan/astro-arcade/internal/sim"
)

// ID is the registry identifier.
const ID = "pinball"

// ReasonOutOfBalls ends the run when the last ball drains.
const ReasonOutOfBalls = "out of balls"

// Visual characters for rendering
const (
	BallChar   = 'O'
	PaddleChar = '▀'
)

// walls are the reflecting edges; the bottom stays open.
const walls = sim.EdgeLeft | sim.EdgeRight | sim.EdgeTop

// Game implements the Pinball game logic.
type Game struct {
	cfg        config.PinballConfig
	runtime    core.RuntimeConfig
	latch      *pilot.Latch
	difficulty *config.DifficultyManager
	machine    sim.Machine
	ball       sim.Entity
	left       sim.Entity // moved with A/D
	right      sim.Entity // moved with ←/→
	score      int
	lives      int
	tick       uint64
	paused     bool
	loadErr    error
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// New creates a new Pinball game instance.
func New() *Game {
	return &Game{latch: pilot.NewLatch(pilot.DefaultHold)}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return ID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Pinball" }

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadPinball(configPath)
	if err == nil {
		err = cfg.Validate()
	}
	g.loadErr = err
	if err != nil {
		cfg = config.DefaultPinballConfig()
	}
	config.ApplyPreset(&cfg.Difficulty, difficultyPreset)
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.machine = sim.Machine{}
	g.latch.Release()
	g.score = 0
	g.lives = cfg.Gameplay.Lives
	g.tick = 0
	g.paused = false

	b := g.Bounds()
	p := cfg.Paddles
	g.left = sim.Entity{
		Kind: sim.KindObstacle,
		Pos:  core.V(p.Inset, b.H-p.Lift),
		W:    p.Width,
		H:    p.Height,
	}
	g.right = g.left
	g.right.Pos.X = b.W - p.Inset - p.Width
	g.serve(b)
}

// serve puts the ball back in the middle of the table.
func (g *Game) serve(b core.Bounds) {
	c := g.cfg.Ball
	g.ball = sim.Entity{
		Kind:    sim.KindHazard,
		Pos:     core.V(b.W/2-c.Size/2, b.H/2-c.Size/2),
		Heading: c.Heading(),
		Speed:   c.Speed(),
		W:       c.Size,
		H:       c.Size,
	}
}

// Resize adopts new terminal dimensions without restarting the run.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
}

// Bounds returns the table area.
func (g *Game) Bounds() core.Bounds {
	return g.cfg.World.Bounds(g.runtime.ScreenW, max(1, g.runtime.ScreenH-arena.HUDRows))
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.machine.Over() {
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

	g.tick++
	g.latch.Absorb(in)
	b := g.Bounds()

	// Each paddle is confined to its half of the table.
	half := b.W / 2
	g.left = g.movePaddle(g.left, g.latch.Axis(core.ActionAltLeft, core.ActionAltRight), 0, half)
	g.right = g.movePaddle(g.right, g.latch.Axis(core.ActionLeft, core.ActionRight), half, b.W)
	g.latch.Age()

	var events []string

	g.ball.Speed = g.difficulty.Speed(g.cfg.Ball.Speed(), g.score, int(g.tick))
	ball, inPlay := sim.Advance(g.ball, b, sim.BoundaryCullBelow)
	ball, _ = sim.Reflect(ball, b, walls)
	g.ball = ball

	if !inPlay {
		g.lives--
		events = append(events, "ball lost")
		if g.lives <= 0 {
			g.machine.End(ReasonOutOfBalls)
			events = append(events, "game over: "+ReasonOutOfBalls)
			return core.StepResult{State: g.State(), Events: events}
		}
		g.serve(b)
		return core.StepResult{State: g.State(), Events: events}
	}

	if hits := sim.Pairs([]sim.Entity{g.ball}, []sim.Entity{g.left, g.right}, sim.Overlap()); len(hits) > 0 {
		if sim.Heading(g.ball.Heading).Y > 0 {
			paddle := g.left
			if hits[0].B == 1 {
				paddle = g.right
			}
			g.ball.Pos.Y = paddle.Pos.Y - g.ball.H
			g.ball.Heading = sim.NormalizeHeading(-g.ball.Heading)
			g.score += g.cfg.Gameplay.PaddleReward
			events = append(events, fmt.Sprintf("paddle +%d", g.cfg.Gameplay.PaddleReward))
		}
	}

	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) movePaddle(p sim.Entity, dx int, lo, hi float64) sim.Entity {
	p.Pos.X += float64(dx) * g.cfg.Paddles.Speed
	p.Pos.X = core.ClampF(p.Pos.X, lo, math.Max(lo, hi-p.W))
	return p
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Lives:    g.lives,
		Tick:     g.tick,
		GameOver: g.machine.Over(),
		Paused:   g.paused,
		Reason:   g.machine.Reason(),
	}
}

// Err returns the config problem that made the last Reset fall back to
// defaults, if any.
func (g *Game) Err() error {
	return g.loadErr
}

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	v := g.cfg.World.Viewport(g.runtime.ScreenW, max(1, g.runtime.ScreenH-arena.HUDRows), arena.HUDRows)

	arena.DrawEntity(dst, v, g.left, PaddleChar, core.ColorBrightBlue)
	arena.DrawEntity(dst, v, g.right, PaddleChar, core.ColorBrightMagenta)
	if !g.machine.Over() {
		arena.DrawEntity(dst, v, g.ball, BallChar, core.ColorBrightWhite)
	}

	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", g.score), core.ColorHUD)
	dst.DrawTextCentered(0, fmt.Sprintf("Balls: %d", g.lives))
	if g.loadErr != nil {
		msg := "config error, using defaults"
		dst.DrawTextColored(dst.Width()-len(msg)-1, 0, msg, core.ColorRed)
	}

	switch {
	case g.machine.Over():
		dst.DrawMessage(fmt.Sprintf("GAME OVER  Score: %d", g.score), "R restart  Q quit")
	case g.paused:
		dst.DrawMessage("PAUSED", "A/D left paddle  ←/→ right paddle")
	}
}

// Snapshot contains the complete table state for determinism checks.
type Snapshot struct {
	Tick  uint64
	Score int
	Lives int
	Ball  sim.Entity
	Left  sim.Entity
	Right sim.Entity
	Phase sim.Phase
}

// Snapshot returns the current table state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:  g.tick,
		Score: g.score,
		Lives: g.lives,
		Ball:  g.ball,
		Left:  g.left,
		Right: g.right,
		Phase: g.machine.Phase(),
	}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
