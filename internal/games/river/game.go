// Package river implements the scrolling variant: a strafing craft at the
// bottom of the screen dodging and shooting obstacles that fall from above.
package river

import (
	"github.com/vovakirdan/astro-arcade/internal/config"
	"github.com/vovakirdan/astro-arcade/internal/core"
	"github.com/vovakirdan/astro-arcade/internal/games/arena"
	"github.com/vovakirdan/astro-arcade/internal/registry"
	"github.com/vovakirdan/astro-arcade/internal/sim"
)

// ID is the registry identifier.
const ID = "river"

// Visual characters for rendering
const (
	CraftChar      = '▲'
	ObstacleChar   = '▓'
	ProjectileChar = '┃'
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

// New creates a new River Raid game instance.
func New() *arena.Game {
	return arena.New(arena.Variant{
		ID:       ID,
		Title:    "River Raid",
		Help:     "←/→/↑/↓ move  Space fire",
		Load:     load,
		Defaults: func() arena.Settings { return settings(config.DefaultRiverConfig()) },
		Draw:     draw,
	})
}

func load() (arena.Settings, error) {
	cfg, err := config.LoadRiver(configPath)
	if err != nil {
		return arena.Settings{}, err
	}
	if err := cfg.Validate(); err != nil {
		return arena.Settings{}, err
	}
	return settings(cfg), nil
}

func settings(cfg config.RiverConfig) arena.Settings {
	config.ApplyPreset(&cfg.Difficulty, difficultyPreset)
	return arena.Settings{
		World:      cfg.World,
		Sim:        cfg.SimConfig(),
		Difficulty: cfg.Difficulty,
	}
}

func draw(dst *core.Screen, v core.Viewport, snap sim.Snapshot) {
	arena.DrawEntities(dst, v, snap.Obstacles, ObstacleChar, core.ColorObstacle)
	arena.DrawEntities(dst, v, snap.Projectiles, ProjectileChar, core.ColorProjectile)
	arena.DrawEntity(dst, v, snap.Player.Entity, CraftChar, core.ColorCraft)
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
