package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/astro-arcade/internal/platform/tui"
	"github.com/vovakirdan/astro-arcade/internal/registry"
	"github.com/vovakirdan/astro-arcade/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Open the game picker. Pick a game with the arrow keys or j/k and Enter,
or press Tab for the scoreboard. Esc on the pause or game over screen
comes back here; q quits.

Each game gets a fresh seed unless --seed pins one.

Examples:
  arcade menu
  arcade menu --difficulty hard
  arcade --seed 42 menu`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	// --fps, --seed and --db are global
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset for every game: easy, normal, hard, fixed")
}

func runMenu(_ *cobra.Command, _ []string) error {
	// Scores are optional; the menu still works without them
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	} else {
		defer store.Close()
	}

	for _, g := range registry.List() {
		configureGame(g.ID, "", flagDifficulty)
	}
	return tui.RunSession(store, terminalConfig(), os.Getenv("USER"), flagSeed != 0)
}
