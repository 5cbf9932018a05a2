package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/astro-arcade/internal/config"
	"github.com/vovakirdan/astro-arcade/internal/registry"
	"github.com/vovakirdan/astro-arcade/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long: `Shows every game registered in the arcade with its play count, best
score and the config file it would load.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(_ *cobra.Command, _ []string) error {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return nil
	}

	// Stats are best-effort; the list works without a database
	var stats map[string]*storage.GameStats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, _ = store.GetAllGamesStats()
		store.Close()
	}

	t := newTable("ID", "Title", "Played", "Best", "Last played", "Config")
	for _, g := range games {
		title := g.Title
		if g.Headless {
			title += "*"
		}
		played, best, last := "0", "-", "never"
		if st, ok := stats[g.ID]; ok {
			played = humanize.Comma(int64(st.GamesCount))
			best = humanize.Comma(int64(st.HighScore))
			if !st.LastPlayed.IsZero() {
				last = humanize.Time(st.LastPlayed)
			}
		}
		source := config.ResolvePath(g.ID, "")
		if source == "" {
			source = "(built-in)"
		}
		t.Row(g.ID, title, played, best, last, source)
	}

	fmt.Println(t.Render())
	fmt.Println()
	fmt.Println("* also runs headless with 'arcade sim <id>'.")
	fmt.Println("Run 'arcade play <id>' to play a game.")
	return nil
}
