package sim

import "github.com/vovakirdan/tui-bomber/internal/core"

// Direction is one of the four cardinal facings.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every facing in decision order.
var Directions = [4]Direction{DirUp, DirDown, DirLeft, DirRight}

// Delta returns the unit step for the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Body selects which tile rule the collision engine applies to an entity.
type Body int

const (
	// BodyNormal is stopped by solid tiles.
	BodyNormal Body = iota
	// BodyHeavy ignores tiles and is stopped only by bombs and the arena bounds.
	BodyHeavy
)

// NoCollision is returned by collision queries that hit nothing.
const NoCollision = -1

// Entity is the shared movable state of players and monsters.
// Positions are top-left anchored logical pixels.
type Entity struct {
	X, Y    int
	Hitbox  core.Rect // relative to X, Y
	Dir     Direction
	Speed   int
	Life    int
	MaxLife int
	Body    Body
	Ghost   bool

	// CollisionOn is recomputed by every movement attempt.
	CollisionOn bool
	// HitThisTick guards against double damage and is cleared each tick.
	HitThisTick bool

	AnimPhase   int
	animCounter int
}

// Bounds returns the hitbox in world coordinates.
func (e *Entity) Bounds() core.Rect {
	return core.NewRect(e.X+e.Hitbox.X, e.Y+e.Hitbox.Y, e.Hitbox.W, e.Hitbox.H)
}

// Projected returns the hitbox after one step in dir at the current speed.
func (e *Entity) Projected(dir Direction) core.Rect {
	dx, dy := dir.Delta()
	return e.Bounds().Offset(dx*e.Speed, dy*e.Speed)
}

// Alive reports whether the entity has life left.
func (e *Entity) Alive() bool {
	return e.Life > 0
}

// Center returns the hitbox center.
func (e *Entity) Center() (int, int) {
	return e.Bounds().Center()
}

// TileAt returns the tile that holds the hitbox center.
func (e *Entity) TileAt(tileSize int) Tile {
	cx, cy := e.Center()
	return Tile{Col: floorDiv(cx, tileSize), Row: floorDiv(cy, tileSize)}
}

// step moves the entity one speed step in its facing.
func (e *Entity) step() {
	dx, dy := e.Dir.Delta()
	e.X += dx * e.Speed
	e.Y += dy * e.Speed
}

// animate advances the walking animation.
func (e *Entity) animate(ticksPerFrame int) {
	e.animCounter++
	if e.animCounter > ticksPerFrame {
		e.AnimPhase ^= 1
		e.animCounter = 0
	}
}

// tileRect returns the pixel rectangle of a tile.
func tileRect(t Tile, tileSize int) core.Rect {
	return core.NewRect(t.Col*tileSize, t.Row*tileSize, tileSize, tileSize)
}

// floorDiv divides rounding toward negative infinity so that pixels left of
// or above the arena land on tile -1.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
