package sim

import (
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// Layout is a validated map: tile kinds plus spawn points.
type Layout struct {
	ID       string
	Name     string
	Tiles    [][]TileKind
	Spawns   []Tile // per player slot
	Monsters []MonsterSpawn
}

// MonsterSpawn places one monster at round start.
type MonsterSpawn struct {
	Species Species
	Tile    Tile
}

// WorldView is the read side of the world that monster policies rely on.
type WorldView interface {
	Grid() *Grid
	TileSize() int
	Rand() *rand.Rand
	CanStep(e *Entity, dir Direction) bool
	BombOnPath(e *Entity, dir Direction) bool
	NearestPlayer(x, y int) (*Player, bool)
}

// World holds every entity and object of the current round.
type World struct {
	params    Params
	grid      *Grid
	players   []*Player
	monsters  []*Monster
	bombs     []*Bomb
	obstacles []*Obstacle
	powerUps  []*PowerUp
	rng       *rand.Rand
	logger    *log.Logger
	events    []Event
	bombPass  uint64 // count of updateBombs passes
}

// NewWorld creates an empty world for the given number of player slots.
func NewWorld(params Params, players int, rng *rand.Rand, logger *log.Logger) *World {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	w := &World{
		params:  params,
		rng:     rng,
		logger:  logger,
		players: make([]*Player, players),
	}
	for i := range w.players {
		w.players[i] = &Player{Slot: core.PlayerID(i), removed: true}
	}
	return w
}

// Grid returns the current tile grid.
func (w *World) Grid() *Grid { return w.grid }

// TileSize returns the logical pixel size of one tile.
func (w *World) TileSize() int { return w.params.TileSize }

// Rand returns the simulation RNG.
func (w *World) Rand() *rand.Rand { return w.rng }

// Players returns every player slot, including removed ones.
func (w *World) Players() []*Player { return w.players }

// Monsters returns the living monsters.
func (w *World) Monsters() []*Monster { return w.monsters }

// Bombs returns the bombs on the field.
func (w *World) Bombs() []*Bomb { return w.bombs }

// Obstacles returns the player-placed obstacles.
func (w *World) Obstacles() []*Obstacle { return w.obstacles }

// PowerUps returns the uncollected power-ups, hidden or visible.
func (w *World) PowerUps() []*PowerUp { return w.powerUps }

// Reset loads a new round: fresh grid, default player stats, new monsters,
// new hidden power-ups. Bombs and obstacles are cleared; pending events are kept.
func (w *World) Reset(grid *Grid, layout Layout) {
	w.grid = grid
	w.bombs = nil
	w.obstacles = nil
	w.powerUps = nil
	w.monsters = nil

	for i, p := range w.players {
		p.resetForRound(w.params, w.spawnFor(i, layout))
	}
	for _, ms := range layout.Monsters {
		w.monsters = append(w.monsters, NewMonster(ms.Species, ms.Tile, w.params))
	}
	w.hidePowerUps()
}

// DefaultSpawns returns the inner arena corners used as spawns, one per
// player slot, by layouts that do not list their own.
func DefaultSpawns(cols, rows int) []Tile {
	corners := []Tile{{1, 1}, {cols - 2, rows - 2}, {cols - 2, 1}, {1, rows - 2}}
	return corners[:core.MaxPlayers]
}

// spawnFor picks the spawn tile of a slot, falling back to the arena corners.
func (w *World) spawnFor(slot int, layout Layout) Tile {
	if slot < len(layout.Spawns) {
		return layout.Spawns[slot]
	}
	corners := DefaultSpawns(w.grid.Cols(), w.grid.Rows())
	return corners[slot%len(corners)]
}

// hidePowerUps buries one power-up of each kind under a random box.
func (w *World) hidePowerUps() {
	boxes := w.grid.Boxes()
	for _, kind := range PowerUpKinds {
		if len(boxes) == 0 {
			return
		}
		i := w.rng.Intn(len(boxes))
		w.powerUps = append(w.powerUps, &PowerUp{Kind: kind, Tile: boxes[i]})
		boxes = append(boxes[:i], boxes[i+1:]...)
	}
}

// beginTick clears the tick-scoped hit flags.
func (w *World) beginTick() {
	for _, p := range w.players {
		p.HitThisTick = false
	}
	for _, m := range w.monsters {
		m.HitThisTick = false
	}
}

func (w *World) emit(e Event) {
	w.events = append(w.events, e)
}

// drainEvents returns and clears the events raised since the last call.
func (w *World) drainEvents() []Event {
	out := w.events
	w.events = nil
	return out
}

// activePlayers returns the players still in the round.
func (w *World) activePlayers() []*Player {
	out := make([]*Player, 0, len(w.players))
	for _, p := range w.players {
		if p.Active() {
			out = append(out, p)
		}
	}
	return out
}

// NearestPlayer returns the living player closest to a point.
func (w *World) NearestPlayer(x, y int) (*Player, bool) {
	var best *Player
	bestDist := math.MaxFloat64
	for _, p := range w.players {
		if !p.Active() || !p.Alive() {
			continue
		}
		px, py := p.Center()
		if d := math.Hypot(float64(px-x), float64(py-y)); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, best != nil
}

// TileOccupied reports whether a player other than except overlaps the tile.
func (w *World) TileOccupied(t Tile, except *Player) bool {
	r := tileRect(t, w.params.TileSize)
	for _, p := range w.players {
		if p == except || !p.Active() {
			continue
		}
		if p.Bounds().Intersects(r) {
			return true
		}
	}
	return false
}

// bombAt returns the live bomb on a tile, if any.
func (w *World) bombAt(t Tile) *Bomb {
	for _, b := range w.bombs {
		if b.State != Expired && b.Tile == t {
			return b
		}
	}
	return nil
}

// obstacleAt returns the index of the obstacle on a tile, or -1.
func (w *World) obstacleAt(t Tile) int {
	for i, o := range w.obstacles {
		if o.Tile == t {
			return i
		}
	}
	return -1
}

// arenaRect is the pixel area of the whole grid.
func (w *World) arenaRect() core.Rect {
	ts := w.params.TileSize
	return core.NewRect(0, 0, w.grid.Cols()*ts, w.grid.Rows()*ts)
}
