// Package maps loads arena layouts. Two file formats are understood: plain
// text grids of tile codes and YAML documents that add a name, player spawns
// and a monster roster. Maps ship embedded in the binary and may be
// supplemented from a directory that can be watched for changes.
package maps

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-bomber/internal/games/arena/sim"
)

// ErrNotFound is returned when no map has the requested ID.
var ErrNotFound = errors.New("maps: map not found")

// Map is a validated layout plus where it came from.
type Map struct {
	sim.Layout
	Path string
}

// ParseError describes why a map was rejected. Line and Column are 1-based;
// zero means the problem is not tied to a position.
type ParseError struct {
	Map     string
	Line    int
	Column  int
	Code    string // offending token, if any
	Message string
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("maps: %s:%d:%d: %s %q", e.Map, e.Line, e.Column, e.Message, e.Code)
	case e.Line > 0:
		return fmt.Sprintf("maps: %s:%d: %s", e.Map, e.Line, e.Message)
	default:
		return fmt.Sprintf("maps: %s: %s", e.Map, e.Message)
	}
}

// Size is the expected grid size. A zero size accepts any rectangle.
type Size struct {
	Cols, Rows int
}

// classicRoster is the monster line-up used by maps that do not list their own.
var classicRoster = []sim.MonsterSpawn{
	{Species: sim.Pursuer, Tile: sim.Tile{Col: 1, Row: 10}},
	{Species: sim.Wanderer, Tile: sim.Tile{Col: 14, Row: 2}},
	{Species: sim.EdgeAvoider, Tile: sim.Tile{Col: 3, Row: 2}},
	{Species: sim.FaultyPursuer, Tile: sim.Tile{Col: 3, Row: 5}},
}
