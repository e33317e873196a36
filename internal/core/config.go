package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Scores    []int // Cumulative score per player slot
	Round     int   // Current round, 1-based
	MaxRounds int
	GameOver  bool // Whether the match has ended
	Paused    bool // Whether the game is paused
}

// Leader returns the slot with the highest score, or -1 on a tie or empty table.
func (s GameState) Leader() int {
	best, leader := -1, -1
	for i, sc := range s.Scores {
		switch {
		case sc > best:
			best, leader = sc, i
		case sc == best:
			leader = -1
		}
	}
	return leader
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []string // Human-readable notifications raised during the tick
}
