package sim

import (
	"errors"
	"fmt"
	"sort"
)

// TileKind is the static kind of one grid cell.
type TileKind int

const (
	Open TileKind = iota
	Wall
	Destructible
)

// String returns a human-readable name for the tile kind.
func (k TileKind) String() string {
	switch k {
	case Open:
		return "open"
	case Wall:
		return "wall"
	case Destructible:
		return "destructible"
	default:
		return "unknown"
	}
}

// TileKindFromCode maps a map-file tile code to its kind.
func TileKindFromCode(code int) (TileKind, bool) {
	switch code {
	case 0:
		return Open, true
	case 1:
		return Wall, true
	case 2:
		return Destructible, true
	default:
		return Open, false
	}
}

// Tile is a grid coordinate.
type Tile struct {
	Col, Row int
}

// Step returns the tile n cells away in the given direction.
func (t Tile) Step(d Direction, n int) Tile {
	dx, dy := d.Delta()
	return Tile{Col: t.Col + dx*n, Row: t.Row + dy*n}
}

// ErrEmptyGrid is returned when a grid has no cells.
var ErrEmptyGrid = errors.New("sim: empty grid")

// Grid is the tile map of one round. Its dimensions never change and the
// only mutation is Destructible -> Open.
type Grid struct {
	cols, rows int
	kinds      []TileKind
	boxes      map[Tile]struct{}
}

// NewGrid builds a grid from row-major kinds. Rows must all have the same length.
func NewGrid(kinds [][]TileKind) (*Grid, error) {
	if len(kinds) == 0 || len(kinds[0]) == 0 {
		return nil, ErrEmptyGrid
	}

	g := &Grid{
		cols:  len(kinds[0]),
		rows:  len(kinds),
		boxes: make(map[Tile]struct{}),
	}
	g.kinds = make([]TileKind, 0, g.cols*g.rows)

	for row, line := range kinds {
		if len(line) != g.cols {
			return nil, fmt.Errorf("sim: row %d has %d columns, expected %d", row, len(line), g.cols)
		}
		for col, k := range line {
			switch k {
			case Open, Wall:
			case Destructible:
				g.boxes[Tile{col, row}] = struct{}{}
			default:
				return nil, fmt.Errorf("sim: unknown tile kind %d at (%d,%d)", k, col, row)
			}
			g.kinds = append(g.kinds, k)
		}
	}
	return g, nil
}

// Cols returns the grid width in tiles.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the grid height in tiles.
func (g *Grid) Rows() int { return g.rows }

// InBounds reports whether the cell lies on the grid.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < g.cols && row < g.rows
}

// KindAt returns the kind of a cell. Cells off the grid read as Wall.
func (g *Grid) KindAt(col, row int) TileKind {
	if !g.InBounds(col, row) {
		return Wall
	}
	return g.kinds[row*g.cols+col]
}

// IsSolid reports whether a cell blocks movement.
func (g *Grid) IsSolid(col, row int) bool {
	return g.KindAt(col, row) != Open
}

// IsEdge reports whether a cell is on the outer ring of the arena or off the grid.
func (g *Grid) IsEdge(col, row int) bool {
	return col <= 0 || row <= 0 || col >= g.cols-1 || row >= g.rows-1
}

// SetOpen turns a Destructible cell into Open. Any other cell is left alone,
// since two blasts may reach the same box in one tick.
func (g *Grid) SetOpen(col, row int) bool {
	if g.KindAt(col, row) != Destructible {
		return false
	}
	g.kinds[row*g.cols+col] = Open
	delete(g.boxes, Tile{col, row})
	return true
}

// Boxes returns the remaining destructible cells in row-major order.
func (g *Grid) Boxes() []Tile {
	out := make([]Tile, 0, len(g.boxes))
	for t := range g.boxes {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Kinds returns a row-major copy of all cells.
func (g *Grid) Kinds() []TileKind {
	out := make([]TileKind, len(g.kinds))
	copy(out, g.kinds)
	return out
}
