// arcade is a terminal arcade built on a deterministic entity simulation.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show high scores and recorded runs
//	arcade sim <game>        - Run a game headless with a scripted pilot
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 50)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.arcade/scores.db)
//
// Unset global flags fall back to ARCADE_FPS, ARCADE_SEED and ARCADE_DB,
// which may also come from a .env file in the working directory.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/astro-arcade/internal/core"

	// Import games to register them
	_ "github.com/vovakirdan/astro-arcade/internal/games/asteroids"
	_ "github.com/vovakirdan/astro-arcade/internal/games/pinball"
	_ "github.com/vovakirdan/astro-arcade/internal/games/river"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Astro Arcade - asteroids and river raids in your terminal",
	Long: `Astro Arcade runs a deterministic entity simulation behind three
terminal games: a wrapping asteroid field, a scrolling river raid and a
two-paddle pinball table.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores and recorded runs
  sim      - Run a game headless and print its state hash

Examples:
  arcade list
  arcade play asteroids
  arcade menu
  arcade serve --ssh :2222
  arcade sim river --seed 42 --ticks 5000`,
	PersistentPreRunE: loadEnv,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultTickRate, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// loadEnv reads .env (if present) and fills global flags the user did not
// set on the command line. Variables already in the environment win over
// the file.
func loadEnv(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	flags := cmd.Flags()
	if v, ok := os.LookupEnv("ARCADE_DB"); ok && !flags.Changed("db") {
		flagDBPath = v
	}
	if v, ok := os.LookupEnv("ARCADE_FPS"); ok && !flags.Changed("fps") {
		fps, err := strconv.Atoi(v)
		if err != nil || fps <= 0 {
			return fmt.Errorf("ARCADE_FPS: want a positive integer, got %q", v)
		}
		flagFPS = fps
	}
	if v, ok := os.LookupEnv("ARCADE_SEED"); ok && !flags.Changed("seed") {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("ARCADE_SEED: %w", err)
		}
		flagSeed = seed
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	return nil
}
