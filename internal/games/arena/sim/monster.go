package sim

import (
	"fmt"
	"strings"
)

// Species selects the movement policy of a monster.
type Species int

const (
	Wanderer Species = iota
	EdgeAvoider
	Pursuer
	FaultyPursuer
)

// String returns the map-file name of the species.
func (s Species) String() string {
	switch s {
	case Wanderer:
		return "wanderer"
	case EdgeAvoider:
		return "edge-avoider"
	case Pursuer:
		return "pursuer"
	case FaultyPursuer:
		return "faulty-pursuer"
	default:
		return "unknown"
	}
}

// ParseSpecies accepts the map-file names plus the classic creature names.
func ParseSpecies(name string) (Species, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "wanderer", "slime", "green-slime":
		return Wanderer, nil
	case "edge-avoider", "orc":
		return EdgeAvoider, nil
	case "pursuer", "red-slime":
		return Pursuer, nil
	case "faulty-pursuer", "skeleton":
		return FaultyPursuer, nil
	default:
		return 0, fmt.Errorf("sim: unknown monster species %q", name)
	}
}

// Monster is a scripted enemy. It dies from one blast and kills any
// non-invincible player it touches.
type Monster struct {
	Entity
	Species Species

	policy Policy

	// counter and nextDecision pace the policy; hold freezes a pursuer.
	counter      int
	nextDecision int
	hold         int
}

// NewMonster builds a monster of the given species standing on a tile.
func NewMonster(species Species, tile Tile, params Params) *Monster {
	mp := params.Monsters
	m := &Monster{
		Entity: Entity{
			X:       tile.Col * params.TileSize,
			Y:       tile.Row * params.TileSize,
			Hitbox:  mp.Hitbox,
			Dir:     DirDown,
			Life:    mp.Life,
			MaxLife: mp.Life,
		},
		Species: species,
	}

	switch species {
	case EdgeAvoider:
		m.Speed = mp.EdgeAvoiderSpeed
		m.Body = BodyHeavy
		m.policy = edgeAvoider{}
	case Pursuer:
		m.Speed = mp.PursuerSpeed
		m.policy = pursuer{interval: mp.PursuitTicks, ambush: newAmbushBand(mp)}
	case FaultyPursuer:
		m.Speed = mp.FaultySpeed
		m.policy = pursuer{interval: mp.PursuitTicks, ambush: newAmbushBand(mp), errorRate: mp.FaultyErrorRate}
	default:
		m.Speed = mp.WandererSpeed
		m.policy = wanderer{
			minTicks:    mp.WanderMinTicks,
			jitterTicks: mp.WanderJitterTicks,
			weights:     mp.WanderWeights,
			minSpeed:    mp.WandererMinSpeed,
			maxSpeed:    mp.WandererMaxSpeed,
		}
	}
	return m
}

// updateMonster lets the policy pick a facing, then moves through the
// collision engine. Heavy bodies only consult the tile check, which already
// covers bombs and the arena bounds for them.
func (w *World) updateMonster(m *Monster) {
	dir, move := m.policy.ChooseDirection(m, w)
	m.Dir = dir
	if !move {
		return
	}

	m.CollisionOn = false
	w.ResolveTileCollision(&m.Entity)
	if m.Body != BodyHeavy {
		w.ResolveBombCollision(&m.Entity, nil)
		w.ResolveObjectCollision(&m.Entity, nil, false)
		w.ResolveEntityCollision(&m.Entity, w.monsterEntities())
	}
	if !m.CollisionOn {
		m.step()
	}
	m.animate(w.params.AnimTicks)
}

// monsterEntities lists the living monsters as collision candidates.
func (w *World) monsterEntities() []*Entity {
	out := make([]*Entity, 0, len(w.monsters))
	for _, m := range w.monsters {
		out = append(out, &m.Entity)
	}
	return out
}

// touchPlayers kills every non-invincible player overlapping a monster.
func (w *World) touchPlayers(p *Player) {
	if p.Invincible() || !p.Alive() {
		return
	}
	box := p.Bounds()
	for _, m := range w.monsters {
		if m.Alive() && m.Bounds().Intersects(box) {
			p.Life = 0
			w.logger.Debug("player caught", "player", p.Slot, "monster", m.Species)
			return
		}
	}
}
