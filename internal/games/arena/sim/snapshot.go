package sim

import "github.com/vovakirdan/tui-bomber/internal/core"

// EntityView is the render state of a player or monster.
type EntityView struct {
	Slot       int // player slot; -1 for monsters
	Species    Species
	Box        core.Rect
	Dir        Direction
	Life       int
	AnimPhase  int
	Ghost      bool
	Invincible bool
	Blink      bool
	Bombs      int
	BombLimit  int
	Radius     int
}

// BombView is the render state of a bomb.
type BombView struct {
	Tile     Tile
	State    BombState
	FuseLeft int
	Cells    []Tile
}

// PowerUpView is a revealed power-up waiting on the floor.
type PowerUpView struct {
	Kind PowerUpKind
	Tile Tile
}

// Snapshot is a copy of everything a renderer needs. It shares no memory
// with the simulation, so it can be handed to another goroutine.
type Snapshot struct {
	Tick      uint64
	Phase     Phase
	Round     int
	MaxRounds int
	Scores    []int

	Cols, Rows int
	TileSize   int
	TickRate   int
	Tiles      []TileKind // row-major

	Players   []EntityView // active players only
	Monsters  []EntityView
	Bombs     []BombView
	Obstacles []Tile
	PowerUps  []PowerUpView

	GracePending bool
}

// KindAt returns the tile kind of a cell in the snapshot grid.
func (s Snapshot) KindAt(col, row int) TileKind {
	if col < 0 || row < 0 || col >= s.Cols || row >= s.Rows {
		return Wall
	}
	return s.Tiles[row*s.Cols+col]
}

// Snapshot copies the current match state.
func (m *Match) Snapshot() Snapshot {
	s := Snapshot{
		Tick:         m.ctx.Tick,
		Phase:        m.ctx.Phase,
		Round:        m.ctx.Round,
		MaxRounds:    m.ctx.MaxRounds,
		Scores:       append([]int(nil), m.ctx.Scores...),
		TileSize:     m.params.TileSize,
		TickRate:     m.params.TickRate,
		GracePending: m.ctx.GracePending,
	}

	w := m.world
	if w.grid == nil {
		return s
	}
	s.Cols, s.Rows = w.grid.Cols(), w.grid.Rows()
	s.Tiles = w.grid.Kinds()

	for _, p := range w.players {
		if !p.Active() {
			continue
		}
		s.Players = append(s.Players, EntityView{
			Slot:       int(p.Slot),
			Box:        p.Bounds(),
			Dir:        p.Dir,
			Life:       p.Life,
			AnimPhase:  p.AnimPhase,
			Ghost:      p.Ghost,
			Invincible: p.Invincible(),
			Blink:      p.Blink,
			Bombs:      p.BombCount,
			BombLimit:  p.BombLimit,
			Radius:     p.BlastRadius,
		})
	}
	for _, mon := range w.monsters {
		if !mon.Alive() {
			continue
		}
		s.Monsters = append(s.Monsters, EntityView{
			Slot:      -1,
			Species:   mon.Species,
			Box:       mon.Bounds(),
			Dir:       mon.Dir,
			Life:      mon.Life,
			AnimPhase: mon.AnimPhase,
		})
	}
	for _, b := range w.bombs {
		s.Bombs = append(s.Bombs, BombView{
			Tile:     b.Tile,
			State:    b.State,
			FuseLeft: b.FuseLeft(m.params.FuseTicks),
			Cells:    append([]Tile(nil), b.Cells...),
		})
	}
	for _, o := range w.obstacles {
		s.Obstacles = append(s.Obstacles, o.Tile)
	}
	for _, pu := range w.powerUps {
		if pu.Visible {
			s.PowerUps = append(s.PowerUps, PowerUpView{Kind: pu.Kind, Tile: pu.Tile})
		}
	}
	return s
}
