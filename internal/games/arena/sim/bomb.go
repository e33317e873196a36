package sim

import "errors"

// BombState is the lifecycle of a bomb. A bomb passes through each state once.
type BombState int

const (
	Armed BombState = iota
	Exploding
	Expired
)

// String returns a human-readable name for the state.
func (s BombState) String() string {
	switch s {
	case Armed:
		return "armed"
	case Exploding:
		return "exploding"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Placement errors. They are reported to the caller and change nothing.
var (
	ErrNotAlive    = errors.New("sim: player is not in play")
	ErrBombLimit   = errors.New("sim: bomb limit reached")
	ErrTileBlocked = errors.New("sim: tile is blocked")
	ErrNoObstacles = errors.New("sim: no obstacle allowance left")
	ErrNoDetonator = errors.New("sim: player holds no detonator")
)

// Bomb is a tile-aligned timed explosive.
type Bomb struct {
	Tile  Tile
	Owner *Player // non-owning; may be removed from play before the bomb expires
	// Radius is copied from the owner at placement and never re-read.
	Radius int
	State  BombState
	Timer  int
	// Cells holds the tiles covered by the blast once the bomb explodes.
	Cells []Tile

	chainTicks  int
	chainPass   uint64 // bomb pass that scheduled the chain
	fireTicks   int
	ignoreOwner bool
}

// ChainScheduled reports whether another blast has queued this bomb.
func (b *Bomb) ChainScheduled() bool {
	return b.chainTicks > 0
}

// IgnoresOwner reports whether the owner may still walk through the bomb.
func (b *Bomb) IgnoresOwner() bool {
	return b.ignoreOwner
}

// FuseLeft returns the ticks until the natural or chained explosion.
func (b *Bomb) FuseLeft(fuseTicks int) int {
	if b.State != Armed {
		return 0
	}
	if b.chainTicks > 0 {
		return b.chainTicks
	}
	return max(fuseTicks-b.Timer, 0)
}

// covers reports whether the blast reached a tile.
func (b *Bomb) covers(t Tile) bool {
	for _, c := range b.Cells {
		if c == t {
			return true
		}
	}
	return false
}

// ownerHoldsFuse reports whether a detonator keeps the fuse from burning.
func (b *Bomb) ownerHoldsFuse() bool {
	return b.Owner.Active() && b.Owner.Detonator
}

// Obstacle is a solid block dropped by a player.
type Obstacle struct {
	Tile  Tile
	Owner *Player

	ignoreOwner bool
}
