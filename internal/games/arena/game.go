// Package arena hosts the bomb arena simulation as a registry game: it loads
// the configuration and the map pool, feeds per-player intents to the match
// and draws the match snapshot into a character screen.
package arena

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/arena/maps"
	"github.com/vovakirdan/tui-bomber/internal/games/arena/sim"
	"github.com/vovakirdan/tui-bomber/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset = config.DifficultyNormal

// mapPool is shared by every game created after SetMapPool; nil means the
// built-in maps.
var mapPool *maps.Pool

var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back to normal.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficulty(preset)
	if err != nil {
		p = config.DifficultyNormal
	}
	difficultyPreset = p
}

// SetMapPool sets the maps new games draw their rounds from.
func SetMapPool(p *maps.Pool) {
	mapPool = p
}

// SetLogger sets the logger handed to new matches.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

func init() {
	for n := 1; n <= core.MaxPlayers; n++ {
		registry.Register(gameID(n), func() registry.Game {
			return New(n)
		})
	}
}

func gameID(players int) string {
	if players == 1 {
		return "arena"
	}
	return fmt.Sprintf("arena%d", players)
}

// Game adapts a sim.Match to the registry.Game interface.
type Game struct {
	players int
	runtime core.RuntimeConfig
	cfg     config.ArenaConfig
	match   *sim.Match
	err     error // setup failure shown instead of the arena
}

// New creates an arena game for the given number of hot-seat players.
func New(players int) *Game {
	return &Game{players: core.Clamp(players, 1, core.MaxPlayers)}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return gameID(g.players)
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.players == 1 {
		return "Bomb Arena"
	}
	return fmt.Sprintf("Bomb Arena (%dP)", g.players)
}

// Players returns the number of player slots.
func (g *Game) Players() int {
	return g.players
}

// Reset loads the configuration and builds a new match on the title screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.err = nil

	cfg, err := config.LoadArena(configPath)
	if err != nil {
		logger.Warn("arena config rejected, using defaults", "path", configPath, "err", err)
		cfg = config.DefaultArenaConfig()
	}
	config.ApplyArenaPreset(&cfg, difficultyPreset)
	g.cfg = cfg

	params := cfg.ToParams()
	if runtime.TickRate > 0 && runtime.TickRate != params.TickRate {
		cfg.Timing.TickRate = runtime.TickRate
		params = cfg.ToParams()
	}

	source, err := g.mapSource(maps.Size{Cols: params.Cols, Rows: params.Rows})
	if err != nil {
		g.fail(err)
		return
	}

	m, err := sim.NewMatch(params, g.players, source, runtime.Seed, sim.WithLogger(logger))
	if err != nil {
		g.fail(err)
		return
	}
	g.match = m
}

func (g *Game) mapSource(size maps.Size) (sim.MapSource, error) {
	if mapPool != nil {
		return mapPool, nil
	}
	builtin, err := maps.Builtin(size)
	if err != nil && len(builtin) == 0 {
		return nil, err
	}
	return maps.NewPool(builtin)
}

func (g *Game) fail(err error) {
	logger.Error("arena setup failed", "err", err)
	g.err = err
	g.match = nil
}

// Step advances the game by one tick.
func (g *Game) Step(in core.MultiInputFrame) core.StepResult {
	if g.match == nil {
		return core.StepResult{State: g.State()}
	}

	var notes []string
	switch g.match.Context().Phase {
	case sim.PhaseTitle:
		if in.Any(core.ActionConfirm) {
			if err := g.match.Start(); err != nil {
				g.fail(err)
				return core.StepResult{State: g.State()}
			}
			notes = append(notes, fmt.Sprintf("Round 1/%d", g.match.Context().MaxRounds))
		}
		return core.StepResult{State: g.State(), Events: notes}
	case sim.PhaseGameOver:
		if in.Any(core.ActionRestart) || in.Any(core.ActionConfirm) {
			g.match.Reset()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Any(core.ActionPause) {
		g.match.TogglePause()
	}

	intents := make([]sim.Intent, g.players)
	for i := range intents {
		intents[i] = sim.IntentFromFrame(in.Player(core.PlayerID(i)))
	}
	for _, ev := range g.match.Tick(intents) {
		if note := describe(ev); note != "" {
			notes = append(notes, note)
		}
	}
	return core.StepResult{State: g.State(), Events: notes}
}

// describe turns a simulation event into a status line. Frequent events
// such as explosions return "".
func describe(ev sim.Event) string {
	switch e := ev.(type) {
	case sim.RoundEnded:
		if e.Winner == sim.NoWinner {
			return fmt.Sprintf("Round %d: draw", e.Round)
		}
		return fmt.Sprintf("Round %d: %s wins (%s)", e.Round, core.PlayerID(e.Winner), e.Outcome)
	case sim.GameOver:
		return fmt.Sprintf("Game over after %d rounds", e.Rounds)
	case sim.PlayerDied:
		return fmt.Sprintf("%s is out", e.Slot)
	case sim.PowerUpCollected:
		return fmt.Sprintf("%s picked up %s", e.Slot, e.Kind)
	case sim.MapRejected:
		return fmt.Sprintf("Map rejected, replaying the last one: %v", e.Err)
	default:
		return ""
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.match == nil {
		return core.GameState{GameOver: g.err != nil}
	}
	ctx := g.match.Context()
	return core.GameState{
		Scores:    append([]int(nil), ctx.Scores...),
		Round:     ctx.Round,
		MaxRounds: ctx.MaxRounds,
		GameOver:  ctx.Phase == sim.PhaseGameOver,
		Paused:    ctx.Phase == sim.PhasePause,
	}
}

// Snapshot returns a copy of the match state, or a zero snapshot when the
// match could not be created.
func (g *Game) Snapshot() sim.Snapshot {
	if g.match == nil {
		return sim.Snapshot{}
	}
	return g.match.Snapshot()
}

// Phase returns the match phase.
func (g *Game) Phase() sim.Phase {
	if g.match == nil {
		return sim.PhaseGameOver
	}
	return g.match.Context().Phase
}

// Err returns the setup error, if any.
func (g *Game) Err() error {
	return g.err
}
