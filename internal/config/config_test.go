package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/astro-arcade/internal/core"
	"github.com/vovakirdan/astro-arcade/internal/sim"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	tests := []struct {
		id   string
		want any
		into any
	}{
		{"asteroids", DefaultAsteroidsConfig(), &AsteroidsConfig{}},
		{"river", DefaultRiverConfig(), &RiverConfig{}},
		{"pinball", DefaultPinballConfig(), &PinballConfig{}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if err := yaml.Unmarshal(GetDefaultYAML(tt.id), tt.into); err != nil {
				t.Fatalf("embedded yaml: %v", err)
			}
			got := reflect.ValueOf(tt.into).Elem().Interface()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("embedded %s.yaml drifted from the hard-coded default:\n got %+v\nwant %+v", tt.id, got, tt.want)
			}
		})
	}
}

func TestDefaultsAreValid(t *testing.T) {
	if err := DefaultAsteroidsConfig().Validate(); err != nil {
		t.Errorf("asteroids: %v", err)
	}
	if err := DefaultRiverConfig().Validate(); err != nil {
		t.Errorf("river: %v", err)
	}
	if err := DefaultPinballConfig().Validate(); err != nil {
		t.Errorf("pinball: %v", err)
	}
}

func TestLoadCustomOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "asteroids.yaml")
	data := "hazards:\n  count: 9\ncollision:\n  craft_hazard: 30\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAsteroids(path)
	if err != nil {
		t.Fatalf("LoadAsteroids: %v", err)
	}
	if cfg.Hazards.Count != 9 || cfg.Collision.CraftHazard != 30 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Hazards.MaxSpeed != 3 || cfg.Projectiles.Speed != 7 {
		t.Errorf("untouched keys should keep their defaults: %+v", cfg)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadRiver(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing custom file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("craft: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadPinball(bad)
	if err == nil {
		t.Error("expected a parse error")
	}
	if !reflect.DeepEqual(cfg, DefaultPinballConfig()) {
		t.Error("a failed parse should hand back the defaults")
	}
}

func TestCheckRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "river.yaml")
	if err := os.WriteFile(path, []byte("obstacles:\n  min_size: 50\n  max_size: 10\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	err := Check("river", path)
	if !errors.Is(err, sim.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if err := Check("unknown", ""); err != nil {
		t.Errorf("unconfigured games should pass, got %v", err)
	}
}

func TestPinballValidate(t *testing.T) {
	cfg := DefaultPinballConfig()
	cfg.Ball.VelocityX, cfg.Ball.VelocityY = 0, 0
	cfg.Gameplay.Lives = 0
	err := cfg.Validate()
	if !errors.Is(err, sim.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestBallServe(t *testing.T) {
	b := DefaultPinballConfig().Ball
	if h := b.Heading(); h < 44.999 || h > 45.001 {
		t.Errorf("heading = %v, expected 45", h)
	}
	if s := b.Speed(); s < 5.656 || s > 5.657 {
		t.Errorf("speed = %v, expected 4*sqrt(2)", s)
	}
}

func TestWorldBounds(t *testing.T) {
	fixed := WorldConfig{Width: 800, Height: 600, UnitsPerCol: 10, UnitsPerRow: 20}
	if got := fixed.Bounds(40, 10); got != core.B(800, 600) {
		t.Errorf("fixed world should ignore the terminal, got %+v", got)
	}
	v := fixed.Viewport(80, 30, 1)
	if v.UnitsPerCol != 10 || v.UnitsPerRow != 20 || v.OffsetY != 1 {
		t.Errorf("fixed viewport = %+v", v)
	}

	fill := WorldConfig{UnitsPerCol: 10, UnitsPerRow: 20}
	if got := fill.Bounds(100, 40); got != core.B(1000, 800) {
		t.Errorf("fill world = %+v, expected 1000x800", got)
	}
}

func TestPresets(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard || ParsePreset("brutal") != "" {
		t.Error("ParsePreset mismatch")
	}

	d := DifficultyConfig{Enabled: true, InitialLevel: 0.5}
	ApplyPreset(&d, "")
	if d.InitialLevel != 0.5 {
		t.Error("empty preset should leave the config alone")
	}
	ApplyPreset(&d, DifficultyNormal)
	if !d.Enabled || d.InitialLevel != 0.3 {
		t.Errorf("normal preset: %+v", d)
	}
	ApplyPreset(&d, DifficultyFixed)
	if d.Enabled {
		t.Error("fixed preset should disable progression")
	}
}

func TestDifficultyLevel(t *testing.T) {
	tests := []struct {
		name  string
		cfg   DifficultyConfig
		score int
		ticks int
		want  float64
	}{
		{"disabled", DifficultyConfig{InitialLevel: 0.3}, 1000, 1000, 0.3},
		{"score start", DifficultyConfig{Enabled: true, Progression: ProgressionConfig{"score", 100}}, 0, 0, 0},
		{"score half", DifficultyConfig{Enabled: true, Progression: ProgressionConfig{"score", 100}}, 50, 0, 0.5},
		{"score capped", DifficultyConfig{Enabled: true, Progression: ProgressionConfig{"score", 100}}, 500, 0, 1},
		{"time", DifficultyConfig{Enabled: true, InitialLevel: 0.5, Progression: ProgressionConfig{"time", 100}}, 0, 50, 0.75},
		{"none", DifficultyConfig{Enabled: true, InitialLevel: 0.2, Progression: ProgressionConfig{"none", 100}}, 99, 99, 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewDifficultyManager(tt.cfg).Level(tt.score, tt.ticks); got != tt.want {
				t.Errorf("Level = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestDifficultyTune(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:     ScalingConfig{SpeedMultiplier: 1, SpawnMultiplier: 1},
	})
	base := DefaultRiverConfig().SimConfig()
	base.HazardSpeedMin, base.HazardSpeedMax = 1, 3

	if got := d.Tune(base, 0, 0); got != base {
		t.Errorf("level 0 should not change anything: %+v", got)
	}
	got := d.Tune(base, 100, 0)
	if got.ObstacleSpeed != 10 || got.HazardSpeedMin != 2 || got.HazardSpeedMax != 6 {
		t.Errorf("speeds should double at max level: %+v", got)
	}
	if got.ObstacleProbability != 0.1 {
		t.Errorf("probability = %v, expected 0.1", got.ObstacleProbability)
	}
	if got.Controls != base.Controls || got.PassReward != base.PassReward {
		t.Error("Tune must only touch speeds and spawn chances")
	}

	base.ObstacleProbability = 0.8
	if p := d.Tune(base, 100, 0).ObstacleProbability; p != 1 {
		t.Errorf("probability should cap at 1, got %v", p)
	}
}

func TestDefaultsStartAtReferenceTuning(t *testing.T) {
	ast := DefaultAsteroidsConfig()
	riv := DefaultRiverConfig()

	// Level 0 leaves the reference values alone.
	a := NewDifficultyManager(ast.Difficulty).Tune(ast.SimConfig(), 0, 0)
	if a.HazardSpeedMin != 1 || a.HazardSpeedMax != 3 {
		t.Errorf("asteroids at level 0: band [%v,%v), expected [1,3)", a.HazardSpeedMin, a.HazardSpeedMax)
	}
	r := NewDifficultyManager(riv.Difficulty).Tune(riv.SimConfig(), 0, 0)
	if r.ObstacleSpeed != 5 || r.ObstacleProbability != 0.05 {
		t.Errorf("river at level 0: speed %v chance %v, expected 5 and 0.05", r.ObstacleSpeed, r.ObstacleProbability)
	}

	// Progression moves away from them as the score rises.
	if a := NewDifficultyManager(ast.Difficulty).Tune(ast.SimConfig(), 5000, 0); a.HazardSpeedMax <= 3 {
		t.Errorf("asteroids at max score: HazardSpeedMax = %v, expected above 3", a.HazardSpeedMax)
	}

	// The fixed preset keeps them for the whole run.
	ApplyPreset(&riv.Difficulty, DifficultyFixed)
	r = NewDifficultyManager(riv.Difficulty).Tune(riv.SimConfig(), 2000, 9000)
	if r.ObstacleSpeed != 5 || r.ObstacleProbability != 0.05 {
		t.Errorf("river with fixed preset: speed %v chance %v, expected 5 and 0.05", r.ObstacleSpeed, r.ObstacleProbability)
	}
}

func TestDifficultyValidate(t *testing.T) {
	good := DefaultAsteroidsConfig().Difficulty
	if err := good.Validate(); err != nil {
		t.Fatalf("default difficulty invalid: %v", err)
	}

	bad := good
	bad.Progression.Type = "kills"
	if err := bad.Validate(); !errors.Is(err, sim.ErrInvalidConfig) {
		t.Errorf("unknown progression type: got %v", err)
	}

	bad = good
	bad.Scaling.SpeedMultiplier = -1
	if err := bad.Validate(); !errors.Is(err, sim.ErrInvalidConfig) {
		t.Errorf("negative multiplier: got %v", err)
	}

	cfg := DefaultPinballConfig()
	cfg.Difficulty.Progression.MaxAt = -5
	if err := cfg.Validate(); err == nil {
		t.Error("pinball Validate should include the difficulty section")
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "river.yaml")
	other := filepath.Join(dir, "notes.txt")
	for _, p := range []string{path, other} {
		if err := os.WriteFile(p, []byte("x: 1\n"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	w, err := NewWatcher(10*time.Millisecond, path)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(other, []byte("ignored\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	want, _ := filepath.Abs(path)
	select {
	case got := <-w.Events:
		if got != want {
			t.Errorf("event for %q, expected %q", got, want)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no event for the watched file")
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	for range w.Events {
	}
	_ = w.Close() // idempotent
}
