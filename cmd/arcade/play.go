package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/astro-arcade/internal/config"
	"github.com/vovakirdan/astro-arcade/internal/core"
	"github.com/vovakirdan/astro-arcade/internal/games/asteroids"
	"github.com/vovakirdan/astro-arcade/internal/games/pinball"
	"github.com/vovakirdan/astro-arcade/internal/games/river"
	"github.com/vovakirdan/astro-arcade/internal/platform/tui"
	"github.com/vovakirdan/astro-arcade/internal/registry"
	"github.com/vovakirdan/astro-arcade/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagWatch      bool
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Up/W          - Thrust (asteroids), move up (river)
  Left/Right    - Rotate (asteroids), strafe (river), right paddle (pinball)
  A/D           - Left paddle (pinball)
  Down/S        - Move down (river)
  Space         - Fire
  P             - Pause
  R             - Restart (after game over)
  Esc/B         - Back to menu (paused or game over)
  Q/Ctrl+C      - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

With --watch the game restarts whenever its config file changes.

Examples:
  arcade play asteroids
  arcade play river --difficulty hard
  arcade play pinball --difficulty fixed
  arcade play asteroids --config ./my-asteroids.yaml --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Restart the game when its config file changes")
}

// configureGame passes the config path and difficulty preset to a game
// package before the game is created.
func configureGame(gameID, path, preset string) {
	switch gameID {
	case asteroids.ID:
		asteroids.SetConfigPath(path)
		asteroids.SetDifficultyPreset(preset)
	case river.ID:
		river.SetConfigPath(path)
		river.SetDifficultyPreset(preset)
	case pinball.ID:
		pinball.SetConfigPath(path)
		pinball.SetDifficultyPreset(preset)
	}
}

// terminalConfig builds a runtime config sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	// A broken file fails here instead of silently falling back to defaults
	if err := config.Check(gameID, flagConfig); err != nil {
		return err
	}
	configureGame(gameID, flagConfig, flagDifficulty)

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	var opts []tui.Option
	if flagWatch {
		w, err := watchConfig(gameID)
		if err != nil {
			return err
		}
		if w != nil {
			defer w.Close()
			opts = append(opts, tui.WithWatcher(w))
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	} else {
		defer store.Close()
	}

	_, err = tui.Run(game, store, terminalConfig(), opts...)
	return err
}

// watchConfig starts a watcher on the file the game loads, or returns nil
// when the game runs on its built-in config.
func watchConfig(gameID string) (*config.Watcher, error) {
	path := config.ResolvePath(gameID, flagConfig)
	if path == "" {
		fmt.Fprintln(os.Stderr, "Warning: --watch ignored, the game is using its built-in config")
		return nil, nil
	}
	return config.NewWatcher(config.DefaultDebounce, path)
}
