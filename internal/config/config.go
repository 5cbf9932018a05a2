// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/astro-arcade/internal/core"
	"github.com/vovakirdan/astro-arcade/internal/sim"
)

// WorldConfig sizes the simulation space and maps it onto the terminal.
// A zero width or height makes the world follow the terminal size.
type WorldConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	UnitsPerCol float64 `yaml:"units_per_col"` // simulation units per terminal column
	UnitsPerRow float64 `yaml:"units_per_row"` // simulation units per terminal row
}

// Fill reports whether the world tracks the terminal size.
func (w WorldConfig) Fill() bool {
	return w.Width <= 0 || w.Height <= 0
}

// Bounds returns the play area for a cols x rows terminal field.
func (w WorldConfig) Bounds(cols, rows int) core.Bounds {
	if w.Fill() {
		return w.Viewport(cols, rows, 0).Bounds(cols, rows)
	}
	return core.B(w.Width, w.Height)
}

// Viewport returns the mapping used to draw the world in a cols x rows
// field starting offsetY rows down. Fixed-size worlds are scaled to fit.
func (w WorldConfig) Viewport(cols, rows, offsetY int) core.Viewport {
	if w.Fill() {
		return core.Viewport{UnitsPerCol: w.UnitsPerCol, UnitsPerRow: w.UnitsPerRow, OffsetY: offsetY}
	}
	return core.Viewport{
		UnitsPerCol: w.Width / float64(max(cols, 1)),
		UnitsPerRow: w.Height / float64(max(rows, 1)),
		OffsetY:     offsetY,
	}
}

// CraftConfig defines the player craft.
type CraftConfig struct {
	Size         float64 `yaml:"size"`   // 0 for a point craft
	Margin       float64 `yaml:"margin"` // gap under a strafing craft
	MaxSpeed     float64 `yaml:"max_speed"`
	Acceleration float64 `yaml:"acceleration"`
	Rotation     float64 `yaml:"rotation"` // degrees per tick
	Strafe       float64 `yaml:"strafe"`   // units per tick
}

// HazardConfig defines the free-floating hazards.
type HazardConfig struct {
	Count          int     `yaml:"count"`
	MinSpeed       float64 `yaml:"min_speed"`
	MaxSpeed       float64 `yaml:"max_speed"`
	SpawnClearance float64 `yaml:"spawn_clearance"`
}

// ProjectileConfig defines what the craft fires.
type ProjectileConfig struct {
	Speed  float64 `yaml:"speed"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ObstacleConfig defines the falling obstacle stream.
type ObstacleConfig struct {
	Probability float64 `yaml:"probability"` // spawn chance per tick
	Speed       float64 `yaml:"speed"`
	MinSize     int     `yaml:"min_size"`
	MaxSize     int     `yaml:"max_size"` // exclusive
}

// CollisionConfig holds the distance thresholds for point pairs.
type CollisionConfig struct {
	CraftHazard      float64 `yaml:"craft_hazard"`
	ProjectileHazard float64 `yaml:"projectile_hazard"`
}

// ScoringConfig holds the rewards.
type ScoringConfig struct {
	Hazard   int `yaml:"hazard"`
	Obstacle int `yaml:"obstacle"`
	Pass     int `yaml:"pass"`
}

// AsteroidsConfig contains all configuration for the Asteroids game.
type AsteroidsConfig struct {
	World       WorldConfig      `yaml:"world"`
	Craft       CraftConfig      `yaml:"craft"`
	Hazards     HazardConfig     `yaml:"hazards"`
	Projectiles ProjectileConfig `yaml:"projectiles"`
	Collision   CollisionConfig  `yaml:"collision"`
	Scoring     ScoringConfig    `yaml:"scoring"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
}

// SimConfig converts the game config into a simulation config.
func (c AsteroidsConfig) SimConfig() sim.Config {
	return sim.Config{
		Controls:                  sim.ControlSteer,
		CraftSize:                 c.Craft.Size,
		MaxSpeed:                  c.Craft.MaxSpeed,
		AccelerationStep:          c.Craft.Acceleration,
		RotationStep:              c.Craft.Rotation,
		HazardTarget:              c.Hazards.Count,
		HazardSpeedMin:            c.Hazards.MinSpeed,
		HazardSpeedMax:            c.Hazards.MaxSpeed,
		SpawnClearance:            c.Hazards.SpawnClearance,
		ProjectileSpeed:           c.Projectiles.Speed,
		ProjectileW:               c.Projectiles.Width,
		ProjectileH:               c.Projectiles.Height,
		CraftHazardThreshold:      c.Collision.CraftHazard,
		ProjectileHazardThreshold: c.Collision.ProjectileHazard,
		HazardReward:              c.Scoring.Hazard,
	}
}

// Validate checks the config can drive a simulation.
func (c AsteroidsConfig) Validate() error {
	return errors.Join(validate(c.World, c.SimConfig()), c.Difficulty.Validate())
}

// RiverConfig contains all configuration for the River Raid game.
type RiverConfig struct {
	World       WorldConfig      `yaml:"world"`
	Craft       CraftConfig      `yaml:"craft"`
	Obstacles   ObstacleConfig   `yaml:"obstacles"`
	Projectiles ProjectileConfig `yaml:"projectiles"`
	Scoring     ScoringConfig    `yaml:"scoring"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
}

// SimConfig converts the game config into a simulation config.
// Projectiles always travel straight up the screen.
func (c RiverConfig) SimConfig() sim.Config {
	return sim.Config{
		Controls:            sim.ControlStrafe,
		CraftSize:           c.Craft.Size,
		CraftMargin:         c.Craft.Margin,
		StrafeStep:          c.Craft.Strafe,
		ProjectileSpeed:     c.Projectiles.Speed,
		ProjectileW:         c.Projectiles.Width,
		ProjectileH:         c.Projectiles.Height,
		AimFixed:            true,
		AimHeading:          270,
		ObstacleProbability: c.Obstacles.Probability,
		ObstacleSpeed:       c.Obstacles.Speed,
		ObstacleMinSize:     c.Obstacles.MinSize,
		ObstacleMaxSize:     c.Obstacles.MaxSize,
		ObstacleReward:      c.Scoring.Obstacle,
		PassReward:          c.Scoring.Pass,
	}
}

// Validate checks the config can drive a simulation.
func (c RiverConfig) Validate() error {
	return errors.Join(validate(c.World, c.SimConfig()), c.Difficulty.Validate())
}

// PinballConfig contains all configuration for the Pinball game.
type PinballConfig struct {
	World      WorldConfig      `yaml:"world"`
	Ball       BallConfig       `yaml:"ball"`
	Paddles    PaddleConfig     `yaml:"paddles"`
	Gameplay   PinballGameplay  `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BallConfig defines the ball. It is served from the centre with the
// given velocity.
type BallConfig struct {
	Size      float64 `yaml:"size"`
	VelocityX float64 `yaml:"velocity_x"`
	VelocityY float64 `yaml:"velocity_y"`
}

// Heading returns the serve direction in degrees.
func (b BallConfig) Heading() float64 {
	return sim.NormalizeHeading(math.Atan2(b.VelocityY, b.VelocityX) * 180 / math.Pi)
}

// Speed returns the serve speed.
func (b BallConfig) Speed() float64 {
	return math.Hypot(b.VelocityX, b.VelocityY)
}

// PaddleConfig defines both flippers.
type PaddleConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Lift   float64 `yaml:"lift"`  // distance from the bottom edge to the paddle top
	Inset  float64 `yaml:"inset"` // distance from the side walls at serve
	Speed  float64 `yaml:"speed"`
}

// PinballGameplay defines lives and rewards.
type PinballGameplay struct {
	Lives        int `yaml:"lives"`
	PaddleReward int `yaml:"paddle_reward"`
}

// Validate checks the config describes a playable table.
func (c PinballConfig) Validate() error {
	var errs []error
	if err := validateWorld(c.World); err != nil {
		errs = append(errs, err)
	}
	if c.Ball.Size < 0 || c.Ball.Speed() <= 0 {
		errs = append(errs, fmt.Errorf("%w: ball needs size >= 0 and a non-zero velocity", sim.ErrInvalidConfig))
	}
	if c.Paddles.Width <= 0 || c.Paddles.Height <= 0 || c.Paddles.Speed < 0 {
		errs = append(errs, fmt.Errorf("%w: paddles need a positive size and speed >= 0", sim.ErrInvalidConfig))
	}
	if err := c.Difficulty.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Gameplay.Lives <= 0 {
		errs = append(errs, fmt.Errorf("%w: lives must be > 0, got %d", sim.ErrInvalidConfig, c.Gameplay.Lives))
	}
	if c.Gameplay.PaddleReward < 0 {
		errs = append(errs, fmt.Errorf("%w: paddle reward must be >= 0", sim.ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// Validate checks the progression type and that scaling never slows the game.
func (d DifficultyConfig) Validate() error {
	var errs []error
	switch d.Progression.Type {
	case ProgressScore, ProgressTime, ProgressNone, "":
	default:
		errs = append(errs, fmt.Errorf("%w: unknown progression type %q", sim.ErrInvalidConfig, d.Progression.Type))
	}
	if d.Progression.MaxAt < 0 {
		errs = append(errs, fmt.Errorf("%w: progression max_at must be >= 0", sim.ErrInvalidConfig))
	}
	if d.Scaling.SpeedMultiplier < 0 || d.Scaling.SpawnMultiplier < 0 {
		errs = append(errs, fmt.Errorf("%w: scaling multipliers must be >= 0", sim.ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to speeds at max difficulty
	SpawnMultiplier float64 `yaml:"spawn_multiplier"` // Added to spawn chances at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values yield "",
// which keeps the config's own difficulty settings.
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	}
	return ""
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies a difficulty section based on a preset.
// An empty preset leaves it untouched.
func ApplyPreset(d *DifficultyConfig, preset DifficultyPreset) {
	switch {
	case preset == "":
	case IsFixedPreset(preset):
		d.Enabled = false
	default:
		d.Enabled = true
		d.InitialLevel = InitialLevelForPreset(preset)
	}
}

func validateWorld(w WorldConfig) error {
	var errs []error
	if w.Fill() && (w.UnitsPerCol <= 0 || w.UnitsPerRow <= 0) {
		errs = append(errs, fmt.Errorf("%w: a terminal-sized world needs positive units per cell", sim.ErrInvalidConfig))
	}
	if !w.Fill() && !core.B(w.Width, w.Height).Valid() {
		errs = append(errs, fmt.Errorf("%w: world %vx%v must be positive", sim.ErrInvalidConfig, w.Width, w.Height))
	}
	return errors.Join(errs...)
}

func validate(w WorldConfig, c sim.Config) error {
	return errors.Join(validateWorld(w), c.Validate())
}
