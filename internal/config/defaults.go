package config

import (
	_ "embed"
)

//go:embed defaults/asteroids.yaml
var defaultAsteroidsYAML []byte

//go:embed defaults/river.yaml
var defaultRiverYAML []byte

//go:embed defaults/pinball.yaml
var defaultPinballYAML []byte

// DefaultAsteroidsConfig returns the default Asteroids configuration.
func DefaultAsteroidsConfig() AsteroidsConfig {
	return AsteroidsConfig{
		World: WorldConfig{Width: 800, Height: 600, UnitsPerCol: 10, UnitsPerRow: 20},
		Craft: CraftConfig{
			MaxSpeed:     5,
			Acceleration: 0.1,
			Rotation:     5,
		},
		Hazards: HazardConfig{
			Count:          5,
			MinSpeed:       1,
			MaxSpeed:       3,
			SpawnClearance: 100,
		},
		Projectiles: ProjectileConfig{Speed: 7},
		Collision: CollisionConfig{
			CraftHazard:      20,
			ProjectileHazard: 15,
		},
		Scoring: ScoringConfig{Hazard: 100},
		Difficulty: DifficultyConfig{
			Enabled: true,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{SpeedMultiplier: 1.0},
		},
	}
}

// DefaultRiverConfig returns the default River Raid configuration.
func DefaultRiverConfig() RiverConfig {
	return RiverConfig{
		World: WorldConfig{Width: 400, Height: 600, UnitsPerCol: 10, UnitsPerRow: 20},
		Craft: CraftConfig{
			Size:   40,
			Margin: 20,
			Strafe: 5,
		},
		Obstacles: ObstacleConfig{
			Probability: 0.05,
			Speed:       5,
			MinSize:     20,
			MaxSize:     60,
		},
		Projectiles: ProjectileConfig{Speed: 10, Width: 10, Height: 20},
		Scoring:     ScoringConfig{Obstacle: 50, Pass: 10},
		Difficulty: DifficultyConfig{
			Enabled: true,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 2000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.6,
				SpawnMultiplier: 1.0,
			},
		},
	}
}

// DefaultPinballConfig returns the default Pinball configuration.
func DefaultPinballConfig() PinballConfig {
	return PinballConfig{
		World: WorldConfig{Width: 800, Height: 600, UnitsPerCol: 10, UnitsPerRow: 20},
		Ball:  BallConfig{Size: 20, VelocityX: 4, VelocityY: 4},
		Paddles: PaddleConfig{
			Width:  100,
			Height: 20,
			Lift:   100,
			Inset:  50,
			Speed:  20,
		},
		Gameplay: PinballGameplay{Lives: 3, PaddleReward: 10},
		Difficulty: DifficultyConfig{
			Enabled: true,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 15000, // 5 minutes at 50 ticks per second
			},
			Scaling: ScalingConfig{SpeedMultiplier: 0.5},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "asteroids":
		return defaultAsteroidsYAML
	case "river":
		return defaultRiverYAML
	case "pinball":
		return defaultPinballYAML
	default:
		return nil
	}
}
