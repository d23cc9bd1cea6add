package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mahjong/internal/registry"
	"github.com/vovakirdan/tui-mahjong/internal/storage"
)

var flagRecent int

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores and recent games for a variant",
	Long: `Display the top 10 high scores for the variant, followed by its most
recent finished games and how they ended.

Examples:
  mahjong scores
  mahjong scores mahjong_pyramid --recent 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 5, "Number of recent games to show (0 = none)")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := "mahjong"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q (run 'mahjong list' to see them)", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("cannot retrieve scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'mahjong play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  Scored games: %d  Cleared: %d\n", stats.HighScore, stats.GamesCount, stats.Wins)
	}

	if counts, err := store.OutcomeCounts(gameID); err == nil && len(counts) > 0 {
		fmt.Printf("Outcomes: %d cleared, %d time up, %d no moves, %d abandoned\n",
			counts[storage.OutcomeWon], counts[storage.OutcomeTimedOut],
			counts[storage.OutcomeDeadlocked], counts[storage.OutcomeAbandoned])
	}

	if flagRecent <= 0 {
		return nil
	}
	sessions, err := store.RecentSessions(gameID, flagRecent)
	if err != nil {
		return fmt.Errorf("cannot retrieve recent games: %w", err)
	}
	if len(sessions) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Recent games:")
	fmt.Printf("  %-16s  %-10s  %-6s  %-5s  %-5s  %s\n", "Date", "Outcome", "Score", "Pairs", "Combo", "Time")
	for _, s := range sessions {
		secs := int(s.Elapsed)
		fmt.Printf("  %-16s  %-10s  %-6d  %-5d  x%-4d  %d:%02d\n",
			s.CreatedAt.Format("2006-01-02 15:04"), s.Outcome, s.Score,
			s.Matches, s.BestCombo, secs/60, secs%60)
	}
	return nil
}
