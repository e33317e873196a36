package sim

import "github.com/vovakirdan/tui-bomber/internal/core"

// Event is a notification raised during a tick and handed to the host
// after the tick completes.
type Event interface {
	event()
}

// Outcome says how a round was decided.
type Outcome int

const (
	// OutcomeClearWin: one player left standing and every monster dead.
	OutcomeClearWin Outcome = iota
	// OutcomeLastStanding: one player alive when the grace period ran out.
	OutcomeLastStanding
	// OutcomeDraw: the round advanced without credit.
	OutcomeDraw
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeClearWin:
		return "clear"
	case OutcomeLastStanding:
		return "last standing"
	case OutcomeDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// NoWinner marks a round without credit.
const NoWinner = -1

type (
	// RoundEnded is raised when a round is judged, before the next one loads.
	RoundEnded struct {
		Round   int
		Winner  int // slot index or NoWinner
		Outcome Outcome
	}
	// GameOver is raised once after the last round.
	GameOver struct {
		Scores []int
		Rounds int
	}
	// PlayerDied is raised when a player is removed from the round.
	PlayerDied struct {
		Slot  core.PlayerID
		Round int
	}
	// PowerUpRevealed is raised when a blast uncovers a power-up.
	PowerUpRevealed struct {
		Kind PowerUpKind
		Tile Tile
	}
	// PowerUpCollected is raised when a player picks up a power-up.
	PowerUpCollected struct {
		Slot core.PlayerID
		Kind PowerUpKind
	}
	// BombExploded is raised when a bomb goes off.
	BombExploded struct {
		Tile  Tile
		Cells []Tile
	}
	// MapRejected is raised when the next map failed to load and the
	// previous layout was reused.
	MapRejected struct {
		Err error
	}
)

func (RoundEnded) event()       {}
func (GameOver) event()         {}
func (PlayerDied) event()       {}
func (PowerUpRevealed) event()  {}
func (PowerUpCollected) event() {}
func (BombExploded) event()     {}
func (MapRejected) event()      {}
