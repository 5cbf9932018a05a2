package sim

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/astro-arcade/internal/core"
)

// Game-over reasons.
const (
	ReasonHazard   = "craft hit a hazard"
	ReasonObstacle = "craft hit an obstacle"
)

// Report summarizes what one tick did.
type Report struct {
	Tick          uint64
	Score         int
	Gained        int // score added this tick
	HazardKills   int // hazards destroyed by projectiles
	ObstacleKills int // obstacles destroyed by projectiles
	Passed        int // obstacles that left through the bottom
	Expired       int // projectiles that left the play area
	Fired         bool
	Spawned       int // hazards and obstacles inserted by the spawner
	GameOver      bool
	Reason        string
}

// Simulation is the context object of one run. It owns the store, the
// spawner, the lifecycle machine and the score. Restarting means building a
// new Simulation.
type Simulation struct {
	cfg     Config
	store   *Store
	spawner *Spawner
	machine Machine
	score   int
	tick    uint64
}

// NewSimulation validates the configuration and bounds, places the craft and
// seeds the hazard population. Invalid input fails here, before any tick.
func NewSimulation(cfg Config, rng RNG, b core.Bounds) (*Simulation, error) {
	var errs []error
	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}
	if !b.Valid() {
		errs = append(errs, fmt.Errorf("%w: bounds %vx%v must be positive and finite", ErrInvalidConfig, b.W, b.H))
	}
	if rng == nil {
		errs = append(errs, fmt.Errorf("%w: nil rng", ErrInvalidConfig))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:     cfg,
		store:   NewStore(newCraft(cfg, b)),
		spawner: NewSpawner(rng, cfg),
	}
	s.spawner.Seed(s.store, b)
	return s, nil
}

func newCraft(cfg Config, b core.Bounds) Craft {
	c := Craft{
		Entity:           Entity{Kind: KindCraft, W: cfg.CraftSize, H: cfg.CraftSize},
		MaxSpeed:         cfg.MaxSpeed,
		AccelerationStep: cfg.AccelerationStep,
	}
	switch cfg.Controls {
	case ControlStrafe:
		// Bottom centre, facing up the screen.
		c.Pos = core.V(b.W/2-cfg.CraftSize/2, b.H-cfg.CraftSize-cfg.CraftMargin)
		c.Heading = 270
	default:
		c.Pos = b.Center()
	}
	return c
}

// Config returns the configuration the run was built with.
func (s *Simulation) Config() Config { return s.cfg }

// Retune swaps the tunables for the rest of the run, typically as the
// difficulty rises. Entities already in play keep their speeds. The control
// scheme cannot change mid-run.
func (s *Simulation) Retune(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Controls != s.cfg.Controls {
		return fmt.Errorf("%w: controls cannot change mid-run", ErrInvalidConfig)
	}
	s.cfg = cfg
	s.spawner.cfg = cfg
	return nil
}

// Store exposes the entity store. Callers outside a tick may inspect or
// arrange populations; the simulation mutates it only inside Step.
func (s *Simulation) Store() *Store { return s.store }

// Phase returns the lifecycle phase.
func (s *Simulation) Phase() Phase { return s.machine.Phase() }

// Over reports whether the run has ended.
func (s *Simulation) Over() bool { return s.machine.Over() }

// Score returns the current score.
func (s *Simulation) Score() int { return s.score }

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() uint64 { return s.tick }

// Step runs one tick against the bounds sampled at tick start:
//
//  1. integrate the craft and every population, culling entities that left
//  2. detect craft and projectile collisions on the new positions
//  3. a craft collision ends the run and stops all further mutation
//  4. otherwise remove destroyed entities in batches, score, and fire
//  5. replenish hazards and maybe spawn an obstacle
//
// Once the run is over Step does nothing.
func (s *Simulation) Step(in Intent, b core.Bounds) Report {
	if s.machine.Over() {
		return s.report(Report{})
	}
	s.tick++
	r := Report{}

	// 1. Kinematics.
	s.moveCraft(in, b)
	s.store.Cull(Hazards, func(e Entity) (Entity, bool) {
		return Advance(e, b, BoundaryWrap)
	})
	r.Expired = len(s.store.Cull(Projectiles, func(e Entity) (Entity, bool) {
		return Advance(e, b, BoundaryCull)
	}))
	r.Passed = len(s.store.Cull(Obstacles, func(e Entity) (Entity, bool) {
		return Advance(e, b, BoundaryCullBelow)
	}))
	r.Gained += r.Passed * s.cfg.PassReward

	// 2. Detection. Read-only over the integrated positions.
	craft := []Entity{s.store.Player().Entity}
	hazards := s.store.All(Hazards)
	projectiles := s.store.All(Projectiles)
	obstacles := s.store.All(Obstacles)

	var crash []Pair
	if len(hazards) > 0 {
		crash = Pairs(craft, hazards, Within(s.cfg.CraftHazardThreshold))
	}
	if len(crash) > 0 {
		// 3. Terminal transition; the colliding hazard goes, nothing else changes.
		s.store.RemoveAt(Hazards, crash[0].B)
		return s.end(r, ReasonHazard)
	}
	if crash = Pairs(craft, obstacles, Overlap()); len(crash) > 0 {
		s.store.RemoveAt(Obstacles, crash[0].B)
		return s.end(r, ReasonObstacle)
	}

	var shotHazards, shotObstacles []Pair
	if len(hazards) > 0 {
		shotHazards = FirstHits(Pairs(projectiles, hazards, Within(s.cfg.ProjectileHazardThreshold)))
	}
	if len(obstacles) > 0 {
		shotObstacles = FirstHits(Without(Pairs(projectiles, obstacles, Overlap()), shotHazards))
	}

	// 4. Apply effects in reverse-sorted batches.
	spent := make([]int, 0, len(shotHazards)+len(shotObstacles))
	hazardIdx := make([]int, 0, len(shotHazards))
	for _, p := range shotHazards {
		spent = append(spent, p.A)
		hazardIdx = append(hazardIdx, p.B)
	}
	obstacleIdx := make([]int, 0, len(shotObstacles))
	for _, p := range shotObstacles {
		spent = append(spent, p.A)
		obstacleIdx = append(obstacleIdx, p.B)
	}
	s.store.RemoveBatch(Projectiles, spent)
	r.HazardKills = s.store.RemoveBatch(Hazards, hazardIdx)
	r.ObstacleKills = s.store.RemoveBatch(Obstacles, obstacleIdx)
	r.Gained += r.HazardKills*s.cfg.HazardReward + r.ObstacleKills*s.cfg.ObstacleReward

	if in.Fire {
		s.fire()
		r.Fired = true
	}

	// 5. Spawn.
	if s.cfg.HazardTarget > 0 {
		r.Spawned += s.spawner.Replenish(s.store, b, s.cfg.HazardTarget)
	}
	if s.cfg.ObstacleProbability > 0 && s.spawner.MaybeObstacle(s.store, b, s.cfg.ObstacleProbability) {
		r.Spawned++
	}

	s.score += r.Gained
	return s.report(r)
}

func (s *Simulation) moveCraft(in Intent, b core.Bounds) {
	c := s.store.Player()
	switch s.cfg.Controls {
	case ControlStrafe:
		*c = Strafe(*c, in.MoveX, in.MoveY, s.cfg.StrafeStep, b)
	default:
		c.RotationRate = core.ClampF(in.Rotation, -1, 1) * s.cfg.RotationStep
		c.Accelerating = in.Thrust
		*c = Steer(*c)
		c.Entity, _ = Advance(c.Entity, b, BoundaryWrap)
	}
}

// fire spawns one projectile at the craft's muzzle: its position for a
// point craft, the middle of its top edge for a box.
func (s *Simulation) fire() {
	c := s.store.Player()
	heading := c.Heading
	if s.cfg.AimFixed {
		heading = s.cfg.AimHeading
	}
	s.store.Insert(Projectiles, Entity{
		Kind:    KindProjectile,
		Pos:     core.V(c.Pos.X+(c.W-s.cfg.ProjectileW)/2, c.Pos.Y),
		Heading: heading,
		Speed:   s.cfg.ProjectileSpeed,
		W:       s.cfg.ProjectileW,
		H:       s.cfg.ProjectileH,
	})
}

func (s *Simulation) end(r Report, reason string) Report {
	s.machine.End(reason)
	s.score += r.Gained
	return s.report(r)
}

func (s *Simulation) report(r Report) Report {
	r.Tick = s.tick
	r.Score = s.score
	r.GameOver = s.machine.Over()
	r.Reason = s.machine.Reason()
	return r
}
