package config

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/arena/sim"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// DefaultArenaConfig returns the default arena configuration.
func DefaultArenaConfig() ArenaConfig {
	return ArenaConfig{
		Grid: GridConfig{
			TileSize: 48,
			Cols:     16,
			Rows:     12,
		},
		Timing: TimingConfig{
			TickRate:     60,
			FuseMS:       3000,
			FireMS:       1000,
			ChainDelayMS: 500,
			GraceMS:      2000,
			AnimTicks:    12,
		},
		Match: MatchConfig{
			MaxRounds: 4,
		},
		Player: PlayerConfig{
			Life:         3,
			Speed:        4,
			BombLimit:    1,
			MaxBombLimit: 2,
			BlastRadius:  2,
			Hitbox:       Hitbox{X: 10, Y: 18, W: 28, H: 28},
		},
		Monsters: MonsterConfig{
			Life:   1,
			Hitbox: Hitbox{X: 3, Y: 18, W: 42, H: 30},
			Wanderer: WandererConfig{
				Speed:      2,
				MinSpeed:   1,
				MaxSpeed:   3,
				DecisionMS: 1000,
				JitterMS:   1000,
				Weights:    [4]int{20, 20, 30, 30},
			},
			Pursuer: PursuerConfig{
				Speed:      3,
				DecisionMS: 2000,
			},
			Faulty: FaultyConfig{
				Speed:     3,
				ErrorRate: 0.2,
			},
			EdgeAvoider: EdgeAvoiderConfig{
				Speed: 1,
			},
			Ambush: AmbushConfig{
				NearTiles:    1,
				MinimumTiles: 1,
				FarTiles:     3,
			},
		},
		PowerUps: PowerUpConfig{
			InvincibleMS:     5000,
			GhostMS:          5000,
			BlinkMS:          2000,
			BlinkPeriodTicks: 10,
			SkateBonus:       2,
			ObstacleGrant:    3,
			BlastRadiusBonus: 1,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "arena":
		return defaultArenaYAML
	default:
		return nil
	}
}

// Validate reports every setting the simulation cannot run with.
func (c ArenaConfig) Validate() error {
	var errs []error
	positive := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, v))
		}
	}
	positive("grid.tile_size", c.Grid.TileSize)
	positive("grid.cols", c.Grid.Cols)
	positive("grid.rows", c.Grid.Rows)
	positive("timing.tick_rate", c.Timing.TickRate)
	positive("timing.fuse_ms", c.Timing.FuseMS)
	positive("timing.fire_ms", c.Timing.FireMS)
	positive("timing.anim_ticks", c.Timing.AnimTicks)
	positive("match.max_rounds", c.Match.MaxRounds)
	positive("player.life", c.Player.Life)
	positive("player.speed", c.Player.Speed)
	positive("player.bomb_limit", c.Player.BombLimit)
	positive("player.blast_radius", c.Player.BlastRadius)
	positive("player.hitbox.w", c.Player.Hitbox.W)
	positive("player.hitbox.h", c.Player.Hitbox.H)
	positive("monsters.life", c.Monsters.Life)
	positive("monsters.hitbox.w", c.Monsters.Hitbox.W)
	positive("monsters.hitbox.h", c.Monsters.Hitbox.H)
	positive("monsters.pursuer.decision_ms", c.Monsters.Pursuer.DecisionMS)
	positive("monsters.wanderer.decision_ms", c.Monsters.Wanderer.DecisionMS)

	if c.Player.MaxBombLimit < c.Player.BombLimit {
		errs = append(errs, fmt.Errorf("player.max_bomb_limit %d is below bomb_limit %d", c.Player.MaxBombLimit, c.Player.BombLimit))
	}
	w := c.Monsters.Wanderer
	if w.MinSpeed <= 0 || w.MaxSpeed < w.MinSpeed {
		errs = append(errs, fmt.Errorf("monsters.wanderer speed range %d..%d is invalid", w.MinSpeed, w.MaxSpeed))
	}
	if r := c.Monsters.Faulty.ErrorRate; r < 0 || r > 1 {
		errs = append(errs, fmt.Errorf("monsters.faulty_pursuer.error_rate %v is outside [0, 1]", r))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ToParams converts the configuration to simulation parameters.
func (c ArenaConfig) ToParams() sim.Params {
	rate := c.Timing.TickRate
	ticks := func(ms int) int { return sim.TicksFromMillis(ms, rate) }
	rect := func(h Hitbox) core.Rect { return core.NewRect(h.X, h.Y, h.W, h.H) }
	m := c.Monsters

	return sim.Params{
		TileSize:        c.Grid.TileSize,
		Cols:            c.Grid.Cols,
		Rows:            c.Grid.Rows,
		TickRate:        rate,
		FuseTicks:       ticks(c.Timing.FuseMS),
		FireTicks:       ticks(c.Timing.FireMS),
		ChainDelayTicks: ticks(c.Timing.ChainDelayMS),
		GraceTicks:      ticks(c.Timing.GraceMS),
		AnimTicks:       c.Timing.AnimTicks,
		MaxRounds:       c.Match.MaxRounds,
		Player: sim.PlayerParams{
			Life:         c.Player.Life,
			Speed:        c.Player.Speed,
			BombLimit:    c.Player.BombLimit,
			MaxBombLimit: c.Player.MaxBombLimit,
			BlastRadius:  c.Player.BlastRadius,
			Hitbox:       rect(c.Player.Hitbox),
		},
		Monsters: sim.MonsterParams{
			Life:               m.Life,
			Hitbox:             rect(m.Hitbox),
			WandererSpeed:      m.Wanderer.Speed,
			WandererMinSpeed:   m.Wanderer.MinSpeed,
			WandererMaxSpeed:   m.Wanderer.MaxSpeed,
			WanderMinTicks:     ticks(m.Wanderer.DecisionMS),
			WanderJitterTicks:  ticks(m.Wanderer.JitterMS),
			WanderWeights:      m.Wanderer.Weights,
			PursuerSpeed:       m.Pursuer.Speed,
			PursuitTicks:       ticks(m.Pursuer.DecisionMS),
			FaultySpeed:        m.Faulty.Speed,
			FaultyErrorRate:    m.Faulty.ErrorRate,
			EdgeAvoiderSpeed:   m.EdgeAvoider.Speed,
			AmbushNearTiles:    m.Ambush.NearTiles,
			AmbushMinimumTiles: m.Ambush.MinimumTiles,
			AmbushFarTiles:     m.Ambush.FarTiles,
		},
		PowerUps: sim.PowerUpParams{
			InvincibleTicks: ticks(c.PowerUps.InvincibleMS),
			GhostTicks:      ticks(c.PowerUps.GhostMS),
			BlinkTicks:      ticks(c.PowerUps.BlinkMS),
			BlinkPeriod:     c.PowerUps.BlinkPeriodTicks,
			SkateBonus:      c.PowerUps.SkateBonus,
			ObstacleGrant:   c.PowerUps.ObstacleGrant,
			BlastBonus:      c.PowerUps.BlastRadiusBonus,
		},
	}
}
