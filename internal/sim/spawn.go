package sim

import (
	"github.com/vovakirdan/astro-arcade/internal/core"
)

// RNG is the subset of *rand.Rand the spawner draws from.
// Seeding it makes every run reproducible.
type RNG interface {
	Float64() float64
	Intn(n int) int
}

// spawnAttempts bounds the retries spent looking for a clear hazard position.
const spawnAttempts = 8

// Spawner keeps population invariants: the hazard count and the obstacle stream.
type Spawner struct {
	rng RNG
	cfg Config
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(rng RNG, cfg Config) *Spawner {
	return &Spawner{rng: rng, cfg: cfg}
}

// Hazard builds a hazard at a random point of the play area with a random
// heading in [0, 360) and a speed drawn uniformly from the configured band.
// When a spawn clearance is set, positions too close to avoid are redrawn a
// bounded number of times.
func (sp *Spawner) Hazard(b core.Bounds, avoid core.Vec2) Entity {
	pos := sp.point(b)
	if sp.cfg.SpawnClearance > 0 {
		for i := 1; i < spawnAttempts && core.Dist(pos, avoid) < sp.cfg.SpawnClearance; i++ {
			pos = sp.point(b)
		}
	}

	return Entity{
		Kind:    KindHazard,
		Pos:     pos,
		Heading: float64(sp.rng.Intn(360)),
		Speed:   sp.cfg.HazardSpeedMin + sp.rng.Float64()*(sp.cfg.HazardSpeedMax-sp.cfg.HazardSpeedMin),
	}
}

func (sp *Spawner) point(b core.Bounds) core.Vec2 {
	// Float64 * extent can round up to the extent itself; wrap keeps it inside.
	return Wrap(core.V(sp.rng.Float64()*b.W, sp.rng.Float64()*b.H), b)
}

// Replenish inserts fresh hazards until the population reaches target.
// It returns how many were inserted.
func (sp *Spawner) Replenish(s *Store, b core.Bounds, target int) int {
	n := 0
	for s.Len(Hazards) < target {
		s.Insert(Hazards, sp.Hazard(b, s.Player().Pos))
		n++
	}
	return n
}

// MaybeObstacle makes one Bernoulli draw with probability p and, on success,
// inserts an obstacle just above the play area. Its width and height are
// drawn from the configured size range and its left edge keeps it inside the
// horizontal bounds.
func (sp *Spawner) MaybeObstacle(s *Store, b core.Bounds, p float64) bool {
	if sp.rng.Float64() >= p {
		return false
	}

	span := sp.cfg.ObstacleMaxSize - sp.cfg.ObstacleMinSize
	w := sp.cfg.ObstacleMinSize + sp.rng.Intn(span)
	h := sp.cfg.ObstacleMinSize + sp.rng.Intn(span)
	x := sp.rng.Intn(max(1, int(b.W)-w))

	s.Insert(Obstacles, Entity{
		Kind:    KindObstacle,
		Pos:     core.V(float64(x), -float64(h)),
		Heading: 90,
		Speed:   sp.cfg.ObstacleSpeed,
		W:       float64(w),
		H:       float64(h),
	})
	return true
}

// Seed creates the initial hazard population.
func (sp *Spawner) Seed(s *Store, b core.Bounds) int {
	return sp.Replenish(s, b, sp.cfg.HazardTarget)
}
