// Package asteroids implements the toroidal variant: a steering craft in a
// wrapping field of drifting hazards that it shoots for points.
package asteroids

import (
	"github.com/vovakirdan/astro-arcade/internal/config"
	"github.com/vovakirdan/astro-arcade/internal/core"
	"github.com/vovakirdan/astro-arcade/internal/games/arena"
	"github.com/vovakirdan/astro-arcade/internal/registry"
	"github.com/vovakirdan/astro-arcade/internal/sim"
)

// ID is the registry identifier.
const ID = "asteroids"

// Visual characters for rendering
const (
	HazardChar     = '@'
	ProjectileChar = '•'
)

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

// New creates a new Asteroids game instance.
func New() *arena.Game {
	return arena.New(arena.Variant{
		ID:       ID,
		Title:    "Asteroids",
		Help:     "←/→ turn  ↑ thrust  Space fire",
		Load:     load,
		Defaults: func() arena.Settings { return settings(config.DefaultAsteroidsConfig()) },
		Draw:     draw,
	})
}

func load() (arena.Settings, error) {
	cfg, err := config.LoadAsteroids(configPath)
	if err != nil {
		return arena.Settings{}, err
	}
	if err := cfg.Validate(); err != nil {
		return arena.Settings{}, err
	}
	return settings(cfg), nil
}

func settings(cfg config.AsteroidsConfig) arena.Settings {
	config.ApplyPreset(&cfg.Difficulty, difficultyPreset)
	return arena.Settings{
		World:      cfg.World,
		Sim:        cfg.SimConfig(),
		Difficulty: cfg.Difficulty,
	}
}

func draw(dst *core.Screen, v core.Viewport, snap sim.Snapshot) {
	arena.DrawEntities(dst, v, snap.Hazards, HazardChar, core.ColorHazard)
	arena.DrawEntities(dst, v, snap.Projectiles, ProjectileChar, core.ColorProjectile)
	if !snap.GameOver() {
		arena.DrawEntity(dst, v, snap.Player.Entity, arena.Arrow(snap.Player.Heading), core.ColorCraft)
	}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
