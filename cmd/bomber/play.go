package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomber/internal/platform/tui"
	"github.com/vovakirdan/tui-bomber/internal/registry"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start a match in the given mode: arena (1 player), arena2 or arena3.

Controls:
  P1  W/A/S/D move, Space bomb, E detonate, X obstacle
  P2  Arrows move, / bomb, . detonate, , obstacle
  P3  I/J/K/L move, O bomb, U detonate, M obstacle
  Enter      - Start
  P          - Pause
  R          - Restart (after game over)
  Esc/B      - Back (on title, pause or game over)
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower monsters, longer fuses, clumsy pursuers
  normal - Values from the config
  hard   - Faster monsters, shorter fuses
  fixed  - Config values, pursuers never make mistakes

Examples:
  bomber play
  bomber play arena2 --difficulty easy
  bomber play arena3 --config ./my-arena.yaml
  bomber play --maps ./maps --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "arena"
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'bomber list' to see available modes", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	// Open match storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open match database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	if _, err := tui.Run(game, store, runtimeConfig(), logger.WithPrefix("tui")); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
