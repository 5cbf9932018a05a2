package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/astro-arcade/internal/registry"
	"github.com/vovakirdan/astro-arcade/internal/storage"
)

var (
	flagRuns  int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores and recorded runs for a game",
	Long: `Display the top 10 high scores for the specified game, followed by
the most recent headless runs recorded by 'arcade sim'.

Examples:
  arcade scores asteroids
  arcade scores river --runs 20
  arcade scores pinball --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRuns, "runs", 5, "Number of recent headless runs to show (0 hides them)")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every score and run of the game")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := args[0]
	info, ok := registry.Lookup(gameID)
	if !ok {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.Clear(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores and runs of %s.\n", info.Title)
		return nil
	}

	if err := printScores(store, gameID, info.Title); err != nil {
		return err
	}
	if flagRuns > 0 {
		return printRuns(store, gameID, flagRuns)
	}
	return nil
}

func printScores(store *storage.Store, gameID, title string) error {
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n\n", title)
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	t := newTable("Rank", "Score", "Date")
	for i, e := range scores {
		t.Row(fmt.Sprintf("#%d", i+1), humanize.Comma(int64(e.Score)), e.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println(t.Render())

	if st, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("\nBest: %s  Games: %d  Average: %.0f\n", humanize.Comma(int64(st.HighScore)), st.GamesCount, st.AvgScore)
	}
	return nil
}

func printRuns(store *storage.Store, gameID string, limit int) error {
	runs, err := store.RecentRuns(gameID, limit)
	if err != nil || len(runs) == 0 {
		return err
	}

	t := newTable("Seed", "Ticks", "Score", "Hash", "Pilot", "Ended")
	for _, r := range runs {
		ended := r.Reason
		if ended == "" {
			ended = "-"
		}
		t.Row(fmt.Sprint(r.Seed), fmt.Sprint(r.Ticks), fmt.Sprint(r.Score), fmt.Sprintf("%016x", r.Hash), r.Pilot, ended)
	}
	fmt.Printf("\nRecent runs\n\n%s\n", t.Render())
	return nil
}
