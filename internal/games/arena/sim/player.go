package sim

import "github.com/vovakirdan/tui-bomber/internal/core"

// Intent is what one player asks for during a tick.
type Intent struct {
	Up, Down, Left, Right bool
	Bomb                  bool
	Detonate              bool
	Obstacle              bool
}

// Direction returns the requested movement. Up wins over down, down over
// left, left over right.
func (in Intent) Direction() (Direction, bool) {
	switch {
	case in.Up:
		return DirUp, true
	case in.Down:
		return DirDown, true
	case in.Left:
		return DirLeft, true
	case in.Right:
		return DirRight, true
	default:
		return DirDown, false
	}
}

// IntentFromFrame converts platform actions into an intent.
func IntentFromFrame(f core.InputFrame) Intent {
	return Intent{
		Up:       f.Has(core.ActionUp),
		Down:     f.Has(core.ActionDown),
		Left:     f.Has(core.ActionLeft),
		Right:    f.Has(core.ActionRight),
		Bomb:     f.Has(core.ActionBomb),
		Detonate: f.Has(core.ActionDetonate),
		Obstacle: f.Has(core.ActionObstacle),
	}
}

// Player is a human-controlled entity. A Player keeps its identity for the
// whole match; its stats are reset at every round start.
type Player struct {
	Entity
	Slot core.PlayerID

	BombLimit   int
	BombCount   int
	BlastRadius int
	Bombs       []*Bomb

	InvincibleTicks int
	GhostTicks      int
	Detonator       bool
	SpeedBonus      int

	ObstacleAllowance int
	ObstaclesPlaced   int

	Blink bool

	currentTile Tile
	lastTile    Tile
	removed     bool
}

// Active reports whether the player still takes part in the round.
func (p *Player) Active() bool {
	return p != nil && !p.removed
}

// Invincible reports whether blasts and monsters currently leave the player unhurt.
func (p *Player) Invincible() bool {
	return p.InvincibleTicks > 0
}

// PreviousTile is the last tile the player left, used for obstacle placement.
func (p *Player) PreviousTile() Tile {
	return p.lastTile
}

// resetForRound restores default stats and moves the player to its spawn tile.
func (p *Player) resetForRound(params Params, spawn Tile) {
	pp := params.Player
	p.Entity = Entity{
		X:       spawn.Col * params.TileSize,
		Y:       spawn.Row * params.TileSize,
		Hitbox:  pp.Hitbox,
		Dir:     DirDown,
		Speed:   pp.Speed,
		Life:    pp.Life,
		MaxLife: pp.Life,
		Body:    BodyNormal,
	}
	p.BombLimit = pp.BombLimit
	p.BombCount = 0
	p.BlastRadius = pp.BlastRadius
	p.Bombs = nil
	p.InvincibleTicks = 0
	p.GhostTicks = 0
	p.Detonator = false
	p.SpeedBonus = 0
	p.ObstacleAllowance = 0
	p.ObstaclesPlaced = 0
	p.Blink = false
	p.currentTile = p.TileAt(params.TileSize)
	p.lastTile = p.currentTile
	p.removed = false
}

// tickEffects counts down timed power-ups and refreshes derived flags.
func (p *Player) tickEffects(pu PowerUpParams) {
	if p.InvincibleTicks > 0 {
		p.InvincibleTicks--
	}
	if p.GhostTicks > 0 {
		p.GhostTicks--
	}
	p.Ghost = p.GhostTicks > 0

	remaining := max(p.InvincibleTicks, p.GhostTicks)
	period := max(pu.BlinkPeriod, 1)
	p.Blink = remaining > 0 && remaining <= pu.BlinkTicks && (remaining/period)%2 == 1
}

// trackTile remembers the previous tile whenever the player crosses into a new one.
func (p *Player) trackTile(tileSize int) {
	cur := p.TileAt(tileSize)
	if cur != p.currentTile {
		p.lastTile = p.currentTile
		p.currentTile = cur
	}
}

// forgetBomb drops an expired bomb from the player's placed list.
func (p *Player) forgetBomb(b *Bomb) {
	for i, own := range p.Bombs {
		if own == b {
			p.Bombs = append(p.Bombs[:i], p.Bombs[i+1:]...)
			return
		}
	}
}
