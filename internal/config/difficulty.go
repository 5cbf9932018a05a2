package config

import (
	"math"

	"github.com/vovakirdan/astro-arcade/internal/sim"
)

// Progression types understood by DifficultyManager.
const (
	ProgressScore = "score"
	ProgressTime  = "time"
	ProgressNone  = "none"
)

// DifficultyManager turns score and elapsed ticks into a difficulty level
// and scales simulation tunables by it. It is stateless between calls, so
// replaying a run yields the same tuning.
type DifficultyManager struct {
	cfg     DifficultyConfig
	initial float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:     cfg,
		initial: clampF(cfg.InitialLevel, 0, 1),
	}
}

// Progressive reports whether the level moves at all.
func (d *DifficultyManager) Progressive() bool {
	switch d.cfg.Progression.Type {
	case ProgressScore, ProgressTime:
		return d.cfg.Enabled
	}
	return false
}

// progress is how far along the progression axis the run is, in [0, 1].
func (d *DifficultyManager) progress(score, ticks int) float64 {
	maxAt := float64(max(d.cfg.Progression.MaxAt, 1))
	var at float64
	if d.cfg.Progression.Type == ProgressScore {
		at = float64(score)
	} else {
		at = float64(ticks)
	}
	return clampF(at/maxAt, 0, 1)
}

// Level returns the difficulty level in [0, 1]: the initial level, raised
// linearly towards 1 as the run progresses.
func (d *DifficultyManager) Level(score, ticks int) float64 {
	if !d.Progressive() {
		return d.initial
	}
	return d.initial + d.progress(score, ticks)*(1-d.initial)
}

// Speed scales baseSpeed from 1x at level 0 to (1 + SpeedMultiplier)x at level 1.
func (d *DifficultyManager) Speed(baseSpeed float64, score, ticks int) float64 {
	return baseSpeed * (1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}

// Chance scales a per-tick spawn probability the same way, capped at 1.
func (d *DifficultyManager) Chance(base float64, score, ticks int) float64 {
	return math.Min(1, base*(1+d.Level(score, ticks)*d.cfg.Scaling.SpawnMultiplier))
}

// Tune scales the speed and spawn tunables of base for the current
// difficulty. Everything else is returned unchanged.
func (d *DifficultyManager) Tune(base sim.Config, score, ticks int) sim.Config {
	out := base
	out.HazardSpeedMin = d.Speed(base.HazardSpeedMin, score, ticks)
	out.HazardSpeedMax = d.Speed(base.HazardSpeedMax, score, ticks)
	out.ObstacleSpeed = d.Speed(base.ObstacleSpeed, score, ticks)
	out.ObstacleProbability = d.Chance(base.ObstacleProbability, score, ticks)
	return out
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
