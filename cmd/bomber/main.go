// bomber is a terminal bomb arena for up to three players on one keyboard.
//
// Usage:
//
//	bomber list                  - List available modes
//	bomber play [mode]           - Play a mode (default: arena)
//	bomber menu                  - Start menu to pick modes interactively
//	bomber maps list|validate    - Inspect the map pool
//	bomber scores [mode]         - Show match history
//	bomber serve                 - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible matches
//	--db <path>           - Set database path (default: ~/.bomber/scores.db)
//	--config <path>       - Custom arena config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--maps <dir>          - Extra map directory
//	--watch               - Reload maps when files in --maps change
//	--log <path>          - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-bomber/internal/games/arena"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagMapsDir    string
	flagWatch      bool
	flagLogPath    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bomber",
	Short: "Bomber - hot-seat bomb arena in your terminal",
	Long: `Bomber is a tile arena where up to three players share one keyboard,
drop bombs, collect power-ups and try to outlast each other and the monsters.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker menu
  maps     - List or validate maps
  scores   - View match history
  serve    - Start SSH server for remote play

Examples:
  bomber play
  bomber play arena3 --difficulty hard
  bomber menu --maps ./maps --watch
  bomber maps validate ./maps
  bomber serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setup()
	},
	PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
		return teardown()
	},
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.bomber/scores.db", "Path to match history database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom arena config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagMapsDir, "maps", "", "Directory with extra maps (.txt or .yaml)")
	pf.BoolVar(&flagWatch, "watch", false, "Reload maps when the --maps directory changes")
	pf.StringVar(&flagLogPath, "log", "", "Write logs to this file")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
