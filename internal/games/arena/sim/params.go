// Package sim is the arena simulation kernel: the tile grid, the collision
// engine, bombs and blasts, monster policies and the round/match state
// machine. Everything advances in fixed ticks and all timers are tick counts.
// The package has no rendering or input dependencies.
package sim

import "github.com/vovakirdan/tui-bomber/internal/core"

// PlayerParams are the per-round default stats of a player.
type PlayerParams struct {
	Life         int
	Speed        int
	BombLimit    int
	MaxBombLimit int // cap for the extra-bomb power-up
	BlastRadius  int
	Hitbox       core.Rect // offset and size relative to the entity position
}

// MonsterParams tune every monster species.
type MonsterParams struct {
	Life   int
	Hitbox core.Rect

	WandererSpeed      int
	WandererMinSpeed   int
	WandererMaxSpeed   int
	WanderMinTicks     int    // shortest time between wanderer decisions
	WanderJitterTicks  int    // random extra time added to WanderMinTicks
	WanderWeights      [4]int // up, down, left, right
	PursuerSpeed       int
	PursuitTicks       int // decision interval for pursuers
	FaultySpeed        int
	FaultyErrorRate    float64
	EdgeAvoiderSpeed   int
	AmbushNearTiles    int // lateral band, in tiles
	AmbushFarTiles     int // longitudinal band upper bound, in tiles
	AmbushMinimumTiles int // longitudinal band lower bound, in tiles
}

// PowerUpParams tune the power-up effects.
type PowerUpParams struct {
	InvincibleTicks int
	GhostTicks      int
	BlinkTicks      int // effects blink during their last BlinkTicks
	BlinkPeriod     int
	SkateBonus      int
	ObstacleGrant   int
	BlastBonus      int
}

// Params holds every tunable of the simulation, already expressed in ticks
// and logical pixels.
type Params struct {
	TileSize int
	Cols     int
	Rows     int
	TickRate int

	FuseTicks       int // armed time before a bomb explodes
	FireTicks       int // how long an explosion stays on the field
	ChainDelayTicks int // delay before a chain-triggered bomb explodes
	GraceTicks      int // delay between the first death and round judgment
	AnimTicks       int // ticks per walking animation frame

	MaxRounds int

	Player   PlayerParams
	Monsters MonsterParams
	PowerUps PowerUpParams
}

// DefaultParams returns the stock arena tuning at 60 ticks per second.
func DefaultParams() Params {
	return Params{
		TileSize:        48,
		Cols:            16,
		Rows:            12,
		TickRate:        60,
		FuseTicks:       180,
		FireTicks:       60,
		ChainDelayTicks: 30,
		GraceTicks:      120,
		AnimTicks:       12,
		MaxRounds:       4,
		Player: PlayerParams{
			Life:         3,
			Speed:        4,
			BombLimit:    1,
			MaxBombLimit: 2,
			BlastRadius:  2,
			Hitbox:       core.NewRect(10, 18, 28, 28),
		},
		Monsters: MonsterParams{
			Life:               1,
			Hitbox:             core.NewRect(3, 18, 42, 30),
			WandererSpeed:      2,
			WandererMinSpeed:   1,
			WandererMaxSpeed:   3,
			WanderMinTicks:     60,
			WanderJitterTicks:  60,
			WanderWeights:      [4]int{20, 20, 30, 30},
			PursuerSpeed:       3,
			PursuitTicks:       120,
			FaultySpeed:        3,
			FaultyErrorRate:    0.2,
			EdgeAvoiderSpeed:   1,
			AmbushNearTiles:    1,
			AmbushMinimumTiles: 1,
			AmbushFarTiles:     3,
		},
		PowerUps: PowerUpParams{
			InvincibleTicks: 300,
			GhostTicks:      300,
			BlinkTicks:      120,
			BlinkPeriod:     10,
			SkateBonus:      2,
			ObstacleGrant:   3,
			BlastBonus:      1,
		},
	}
}

// TicksFromMillis converts a wall-clock duration to ticks at the given rate.
func TicksFromMillis(ms, tickRate int) int {
	if ms <= 0 || tickRate <= 0 {
		return 0
	}
	return ms * tickRate / 1000
}
