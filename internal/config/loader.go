package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadAsteroids loads Asteroids configuration.
// Search order: customPath -> ~/.arcade/configs/asteroids.yaml -> ./configs/asteroids.yaml -> embedded default
func LoadAsteroids(customPath string) (AsteroidsConfig, error) {
	return load("asteroids", customPath, DefaultAsteroidsConfig)
}

// LoadRiver loads River Raid configuration.
// Search order: customPath -> ~/.arcade/configs/river.yaml -> ./configs/river.yaml -> embedded default
func LoadRiver(customPath string) (RiverConfig, error) {
	return load("river", customPath, DefaultRiverConfig)
}

// LoadPinball loads Pinball configuration.
// Search order: customPath -> ~/.arcade/configs/pinball.yaml -> ./configs/pinball.yaml -> embedded default
func LoadPinball(customPath string) (PinballConfig, error) {
	return load("pinball", customPath, DefaultPinballConfig)
}

// load reads a game config. Files are decoded over the hard-coded defaults,
// so a file only needs the keys it changes. Only a custom path reports
// errors; the search path falls through silently.
func load[T any](id, customPath string, defaults func() T) (T, error) {
	cfg := defaults()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return defaults(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{
		userConfigPath(id + ".yaml"),
		filepath.Join("configs", id+".yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = defaults()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(GetDefaultYAML(id), &cfg); err != nil {
		return defaults(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ResolvePath returns the file LoadX would read for a game, or "" when
// only the embedded default applies. The watcher uses it to know what to
// follow.
func ResolvePath(id, customPath string) string {
	if customPath != "" {
		return customPath
	}
	for _, path := range []string{userConfigPath(id + ".yaml"), filepath.Join("configs", id+".yaml")} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Check loads a game's config and validates it. The CLI calls it before
// starting a game so bad files fail fast instead of silently falling back.
func Check(id, customPath string) error {
	var err error
	switch id {
	case "asteroids":
		var c AsteroidsConfig
		if c, err = LoadAsteroids(customPath); err == nil {
			err = c.Validate()
		}
	case "river":
		var c RiverConfig
		if c, err = LoadRiver(customPath); err == nil {
			err = c.Validate()
		}
	case "pinball":
		var c PinballConfig
		if c, err = LoadPinball(customPath); err == nil {
			err = c.Validate()
		}
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("config %s: %w", id, err)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
