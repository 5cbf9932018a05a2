package sim

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
)

// ErrInvalidConfig is returned when a Config cannot drive a simulation.
var ErrInvalidConfig = errors.New("sim: invalid config")

// Controls selects how the craft responds to input.
type Controls uint8

const (
	// ControlSteer rotates and thrusts the craft along its heading (toroidal play).
	ControlSteer Controls = iota
	// ControlStrafe moves the craft along the axes inside the play area (scrolling play).
	ControlStrafe
)

// Config holds every tunable of a simulation run.
type Config struct {
	Controls Controls

	// Craft
	CraftSize        float64 // box edge; 0 makes the craft a point
	CraftMargin      float64 // gap below a strafing craft at start
	MaxSpeed         float64
	AccelerationStep float64
	RotationStep     float64 // degrees per tick at full turn input
	StrafeStep       float64

	// Hazards
	HazardTarget   int // population kept alive by replenishment; 0 disables hazards
	HazardSpeedMin float64
	HazardSpeedMax float64
	SpawnClearance float64 // minimum spawn distance from the craft; 0 disables

	// Projectiles
	ProjectileSpeed float64
	ProjectileW     float64
	ProjectileH     float64
	AimFixed        bool    // fire along AimHeading instead of the craft heading
	AimHeading      float64 // degrees, used when AimFixed

	// Obstacles
	ObstacleProbability float64 // per-tick spawn chance; 0 disables obstacles
	ObstacleSpeed       float64
	ObstacleMinSize     int
	ObstacleMaxSize     int // exclusive

	// Collision thresholds for point pairs
	CraftHazardThreshold      float64
	ProjectileHazardThreshold float64

	// Rewards
	HazardReward   int
	ObstacleReward int
	PassReward     int
}

// Validate reports every problem with the config at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	nonNeg := map[string]float64{
		"craft size":        c.CraftSize,
		"craft margin":      c.CraftMargin,
		"max speed":         c.MaxSpeed,
		"acceleration step": c.AccelerationStep,
		"rotation step":     c.RotationStep,
		"strafe step":       c.StrafeStep,
		"spawn clearance":   c.SpawnClearance,
		"projectile width":  c.ProjectileW,
		"projectile height": c.ProjectileH,
	}
	for _, name := range slices.Sorted(maps.Keys(nonNeg)) {
		if v := nonNeg[name]; v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			bad("%s must be a finite value >= 0, got %v", name, v)
		}
	}

	if c.Controls != ControlSteer && c.Controls != ControlStrafe {
		bad("unknown controls %d", c.Controls)
	}
	if c.ProjectileSpeed <= 0 {
		bad("projectile speed must be > 0, got %v", c.ProjectileSpeed)
	}

	if c.HazardTarget < 0 {
		bad("hazard target must be >= 0, got %d", c.HazardTarget)
	}
	if c.HazardTarget > 0 {
		if c.HazardSpeedMin < 0 || c.HazardSpeedMax < c.HazardSpeedMin {
			bad("hazard speed band [%v, %v) must satisfy 0 <= min <= max", c.HazardSpeedMin, c.HazardSpeedMax)
		}
		if c.CraftHazardThreshold <= 0 {
			bad("craft/hazard threshold must be > 0, got %v", c.CraftHazardThreshold)
		}
		if c.ProjectileHazardThreshold <= 0 {
			bad("projectile/hazard threshold must be > 0, got %v", c.ProjectileHazardThreshold)
		}
	}

	if c.ObstacleProbability < 0 || c.ObstacleProbability > 1 || math.IsNaN(c.ObstacleProbability) {
		bad("obstacle probability must be in [0, 1], got %v", c.ObstacleProbability)
	}
	if c.ObstacleProbability > 0 {
		if c.ObstacleSpeed <= 0 {
			bad("obstacle speed must be > 0, got %v", c.ObstacleSpeed)
		}
		if c.ObstacleMinSize <= 0 || c.ObstacleMaxSize <= c.ObstacleMinSize {
			bad("obstacle size range [%d, %d) must satisfy 0 < min < max", c.ObstacleMinSize, c.ObstacleMaxSize)
		}
	}

	if c.HazardTarget == 0 && c.ObstacleProbability == 0 {
		bad("nothing to collide with: both hazards and obstacles are disabled")
	}
	if c.HazardReward < 0 || c.ObstacleReward < 0 || c.PassReward < 0 {
		bad("rewards must be >= 0 so the score never decreases")
	}

	return errors.Join(errs...)
}
