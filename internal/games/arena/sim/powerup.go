package sim

// PowerUpKind is the closed set of power-ups hidden under boxes.
type PowerUpKind int

const (
	ExtraBomb PowerUpKind = iota
	ObstacleGrant
	Invincibility
	BlastExpansion
	DetonatorGrant
	GhostMode
	RollerSkate
)

// PowerUpKinds lists every kind in hiding order.
var PowerUpKinds = []PowerUpKind{
	ExtraBomb, ObstacleGrant, Invincibility, BlastExpansion, DetonatorGrant, GhostMode, RollerSkate,
}

// String returns a human-readable name for the kind.
func (k PowerUpKind) String() string {
	switch k {
	case ExtraBomb:
		return "extra bomb"
	case ObstacleGrant:
		return "obstacle"
	case Invincibility:
		return "invincibility"
	case BlastExpansion:
		return "blast expansion"
	case DetonatorGrant:
		return "detonator"
	case GhostMode:
		return "ghost"
	case RollerSkate:
		return "roller skate"
	default:
		return "unknown"
	}
}

// PowerUp sits under a destructible box until a blast reveals it.
type PowerUp struct {
	Kind      PowerUpKind
	Tile      Tile
	Visible   bool
	Collected bool
}

// Apply grants the power-up to a player.
func (k PowerUpKind) Apply(p *Player, params Params) {
	pu := params.PowerUps
	switch k {
	case ExtraBomb:
		if p.BombLimit < params.Player.MaxBombLimit {
			p.BombLimit++
		}
	case ObstacleGrant:
		p.ObstacleAllowance += pu.ObstacleGrant
	case Invincibility:
		if !p.Invincible() {
			p.InvincibleTicks = pu.InvincibleTicks
		}
	case BlastExpansion:
		p.BlastRadius += pu.BlastBonus
	case DetonatorGrant:
		p.Detonator = true
	case GhostMode:
		p.GhostTicks = pu.GhostTicks
		p.Ghost = true
	case RollerSkate:
		p.SpeedBonus += pu.SkateBonus
		p.Speed += pu.SkateBonus
	}
}
