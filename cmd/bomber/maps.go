package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomber/internal/games/arena/maps"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "Inspect arena maps",
}

var mapsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the maps a match draws from",
	Long: `Lists the built-in maps plus any found in the --maps directory.
A directory map replaces a built-in map with the same ID.

Examples:
  bomber maps list
  bomber maps list --maps ./maps`,
	Args: cobra.NoArgs,
	RunE: runMapsList,
}

var mapsValidateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Check map files for errors",
	Long: `Parses every .txt, .yaml and .yml file under dir (default: --maps)
against the configured grid size and reports each problem with its position.

Examples:
  bomber maps validate ./maps
  bomber maps validate --config ./big-arena.yaml ./maps`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMapsValidate,
}

func init() {
	mapsCmd.AddCommand(mapsListCmd)
	mapsCmd.AddCommand(mapsValidateCmd)
}

func runMapsList(_ *cobra.Command, _ []string) error {
	size, err := mapSize()
	if err != nil {
		return err
	}
	pool, rejected, err := maps.Load(flagMapsDir, size)
	if err != nil {
		return err
	}

	fmt.Printf("  %-12s  %-20s  %-6s  %-8s  %s\n", "ID", "Name", "Spawns", "Monsters", "Source")
	fmt.Printf("  %-12s  %-20s  %-6s  %-8s  %s\n", "--", "----", "------", "--------", "------")
	for _, m := range pool.Maps() {
		fmt.Printf("  %-12s  %-20s  %-6d  %-8d  %s\n", m.ID, m.Name, len(m.Spawns), len(m.Monsters), filepath.ToSlash(m.Path))
	}

	if len(rejected) > 0 {
		fmt.Println()
		fmt.Printf("%d file(s) rejected, run 'bomber maps validate' for details.\n", len(rejected))
	}
	return nil
}

func runMapsValidate(_ *cobra.Command, args []string) error {
	dir := flagMapsDir
	if len(args) == 1 {
		dir = args[0]
	}
	if dir == "" {
		return errors.New("no directory given, pass one or set --maps")
	}

	size, err := mapSize()
	if err != nil {
		return err
	}
	found, err := maps.NewLoader(dir, size).LoadAll()
	for _, m := range found {
		fmt.Printf("ok    %s (%s)\n", filepath.ToSlash(m.Path), m.ID)
	}

	var joined interface{ Unwrap() []error }
	switch {
	case err == nil:
		fmt.Printf("\n%d map(s) valid for a %dx%d grid.\n", len(found), size.Cols, size.Rows)
		return nil
	case errors.As(err, &joined):
		for _, e := range joined.Unwrap() {
			fmt.Printf("error %v\n", e)
		}
		return fmt.Errorf("%d map(s) rejected", len(joined.Unwrap()))
	default:
		return err
	}
}
