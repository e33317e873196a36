package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/registry"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show match history",
	Long: `Display the most recent finished matches and the win tally.
Without a mode, all modes are listed.

Examples:
  bomber scores
  bomber scores arena3 --limit 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of matches to show")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := ""
	title := "all modes"
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown mode %q, run 'bomber list' to see available modes", gameID)
		}
		game, err := registry.Create(gameID)
		if err != nil {
			return fmt.Errorf("creating game: %w", err)
		}
		title = game.Title()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening match database: %w", err)
	}
	defer store.Close()

	matches, err := store.RecentMatches(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving matches: %w", err)
	}

	fmt.Printf("Match History - %s\n", title)
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'bomber play' and finish a match to see it here!")
		return nil
	}

	fmt.Printf("  %-16s  %-7s  %-6s  %-10s  %s\n", "Date", "Mode", "Rounds", "Scores", "Winner")
	fmt.Printf("  %-16s  %-7s  %-6s  %-10s  %s\n", "----", "----", "------", "------", "------")
	for _, m := range matches {
		fmt.Printf("  %-16s  %-7s  %-6d  %-10s  %s\n",
			m.CreatedAt.Format("2006-01-02 15:04"), m.GameID, m.Rounds, joinScores(m.Scores), slotName(m.Winner))
	}

	wins, err := store.Wins(gameID)
	if err == nil && len(wins) > 0 {
		parts := make([]string, len(wins))
		for i, w := range wins {
			parts[i] = fmt.Sprintf("%s %d", slotName(w.Slot), w.Wins)
		}
		fmt.Println()
		fmt.Printf("Wins: %s\n", strings.Join(parts, ", "))
	}
	return nil
}

func joinScores(scores []int) string {
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = fmt.Sprint(s)
	}
	return strings.Join(parts, "-")
}

func slotName(slot int) string {
	if slot < 0 || slot >= core.MaxPlayers {
		return "draw"
	}
	return core.PlayerID(slot).String()
}
