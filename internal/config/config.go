// Package config provides YAML-based arena configuration loading and
// difficulty presets.
package config

// ArenaConfig contains all configuration for the bomb arena.
type ArenaConfig struct {
	Grid     GridConfig    `yaml:"grid"`
	Timing   TimingConfig  `yaml:"timing"`
	Match    MatchConfig   `yaml:"match"`
	Player   PlayerConfig  `yaml:"player"`
	Monsters MonsterConfig `yaml:"monsters"`
	PowerUps PowerUpConfig `yaml:"powerups"`
}

// GridConfig defines the arena size.
type GridConfig struct {
	TileSize int `yaml:"tile_size"` // logical pixels per tile
	Cols     int `yaml:"cols"`
	Rows     int `yaml:"rows"`
}

// TimingConfig defines the tick rate and the bomb and round timers.
// Durations are in milliseconds and converted to ticks at TickRate.
type TimingConfig struct {
	TickRate     int `yaml:"tick_rate"`
	FuseMS       int `yaml:"fuse_ms"`
	FireMS       int `yaml:"fire_ms"`
	ChainDelayMS int `yaml:"chain_delay_ms"`
	GraceMS      int `yaml:"grace_ms"`
	AnimTicks    int `yaml:"anim_ticks"`
}

// MatchConfig defines the match length.
type MatchConfig struct {
	MaxRounds int `yaml:"max_rounds"`
}

// Hitbox is a rectangle relative to the entity position.
type Hitbox struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// PlayerConfig defines the per-round player stats.
type PlayerConfig struct {
	Life         int    `yaml:"life"`
	Speed        int    `yaml:"speed"`
	BombLimit    int    `yaml:"bomb_limit"`
	MaxBombLimit int    `yaml:"max_bomb_limit"`
	BlastRadius  int    `yaml:"blast_radius"`
	Hitbox       Hitbox `yaml:"hitbox"`
}

// MonsterConfig defines the monster species.
type MonsterConfig struct {
	Life        int               `yaml:"life"`
	Hitbox      Hitbox            `yaml:"hitbox"`
	Wanderer    WandererConfig    `yaml:"wanderer"`
	Pursuer     PursuerConfig     `yaml:"pursuer"`
	Faulty      FaultyConfig      `yaml:"faulty_pursuer"`
	EdgeAvoider EdgeAvoiderConfig `yaml:"edge_avoider"`
	Ambush      AmbushConfig      `yaml:"ambush"`
}

// WandererConfig defines the random walker.
type WandererConfig struct {
	Speed      int    `yaml:"speed"`
	MinSpeed   int    `yaml:"min_speed"`
	MaxSpeed   int    `yaml:"max_speed"`
	DecisionMS int    `yaml:"decision_ms"` // shortest time between turns
	JitterMS   int    `yaml:"jitter_ms"`
	Weights    [4]int `yaml:"weights"` // up, down, left, right
}

// PursuerConfig defines the player hunter.
type PursuerConfig struct {
	Speed      int `yaml:"speed"`
	DecisionMS int `yaml:"decision_ms"`
}

// FaultyConfig defines the pursuer that sometimes picks a random direction.
type FaultyConfig struct {
	Speed     int     `yaml:"speed"`
	ErrorRate float64 `yaml:"error_rate"` // 0.0 to 1.0
}

// EdgeAvoiderConfig defines the heavy monster that walks through walls.
type EdgeAvoiderConfig struct {
	Speed int `yaml:"speed"`
}

// AmbushConfig defines the band, in tiles, in which pursuers wait for a player.
type AmbushConfig struct {
	NearTiles    int `yaml:"near_tiles"`
	MinimumTiles int `yaml:"minimum_tiles"`
	FarTiles     int `yaml:"far_tiles"`
}

// PowerUpConfig defines the power-up effects.
type PowerUpConfig struct {
	InvincibleMS     int `yaml:"invincible_ms"`
	GhostMS          int `yaml:"ghost_ms"`
	BlinkMS          int `yaml:"blink_ms"`
	BlinkPeriodTicks int `yaml:"blink_period_ticks"`
	SkateBonus       int `yaml:"skate_bonus"`
	ObstacleGrant    int `yaml:"obstacle_grant"`
	BlastRadiusBonus int `yaml:"blast_radius_bonus"`
}
