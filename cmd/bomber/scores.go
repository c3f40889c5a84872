package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomber/internal/games/bomberman"
	"github.com/vovakirdan/tui-bomber/internal/registry"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the best runs of a mode (default: bomberman).

Examples:
  bomber scores
  bomber scores bomberman_hard --limit 20
  bomber scores bomberman_easy --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every score of the mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := bomberman.GameID
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'bomber list' to see available modes", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return fmt.Errorf("error clearing scores: %w", err)
		}
		fmt.Fprintf(out, "Cleared scores for %s.\n", gameID)
		return nil
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", gameID)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'bomber play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-8s  %-5s  %-12s  %-8s  %s\n", "Rank", "Score", "Level", "Player", "Ended", "Date")
	fmt.Fprintf(out, "  %-4s  %-8s  %-5s  %-12s  %-8s  %s\n", "----", "-----", "-----", "------", "-----", "----")
	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-8d  %-5d  %-12s  %-8s  %s\n",
			i+1, entry.Score, entry.Level, entry.Player, entry.Reason, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GameStats(gameID)
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Runs: %d  Best: %d  Average: %.0f  Furthest level: %d\n",
			stats.Runs, stats.Best, stats.Average, stats.MaxLevel)
	}
	return nil
}
