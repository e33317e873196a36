package sim

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// Phase is the top-level state of a match.
type Phase int

const (
	PhaseTitle Phase = iota
	PhasePlay
	PhasePause
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseTitle:
		return "title"
	case PhasePlay:
		return "play"
	case PhasePause:
		return "pause"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidSlot is returned when a score update names a slot that does not exist.
	ErrInvalidSlot = errors.New("sim: invalid player slot")
	// ErrPhase is returned when a transition is requested from the wrong phase.
	ErrPhase = errors.New("sim: transition not allowed in this phase")
	// ErrDimensions is returned for a layout whose size differs from the arena.
	ErrDimensions = errors.New("sim: layout dimensions do not match the arena")
)

// MapSource hands out the layout of the next round.
type MapSource interface {
	Next(rng *rand.Rand) (Layout, error)
}

// MatchContext is the round and score state of a match. The match owns
// it; the world only reads it or asks for a grace period.
type MatchContext struct {
	Phase     Phase
	Round     int
	MaxRounds int
	Scores    []int
	Tick      uint64

	GracePending  bool
	GraceDeadline uint64
}

// Award adds one point to a slot.
func (c *MatchContext) Award(slot int) error {
	if slot < 0 || slot >= len(c.Scores) {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	c.Scores[slot]++
	return nil
}

// StartGrace schedules round judgment graceTicks from now unless a grace
// period is already running.
func (c *MatchContext) StartGrace(graceTicks int) {
	if c.GracePending {
		return
	}
	c.GracePending = true
	c.GraceDeadline = c.Tick + uint64(max(graceTicks, 0))
}

// graceElapsed reports whether a pending grace period has run out.
func (c *MatchContext) graceElapsed() bool {
	return c.GracePending && c.Tick >= c.GraceDeadline
}

func (c *MatchContext) clearGrace() {
	c.GracePending = false
	c.GraceDeadline = 0
}

// Option configures a Match.
type Option func(*Match)

// WithLogger routes match logging to l.
func WithLogger(l *log.Logger) Option {
	return func(m *Match) {
		if l != nil {
			m.logger = l
		}
	}
}

// Match runs rounds of the arena until the round limit is reached.
type Match struct {
	ctx    MatchContext
	params Params
	world  *World
	maps   MapSource
	rng    *rand.Rand
	logger *log.Logger

	lastLayout *Layout
}

// NewMatch prepares a match in the Title phase. The same seed, map source
// and intents always produce the same match.
func NewMatch(params Params, players int, maps MapSource, seed int64, opts ...Option) (*Match, error) {
	if players < 1 || players > core.MaxPlayers {
		return nil, fmt.Errorf("sim: %d players, want 1..%d", players, core.MaxPlayers)
	}
	if maps == nil {
		return nil, errors.New("sim: nil map source")
	}
	if params.TileSize <= 0 || params.MaxRounds <= 0 {
		return nil, fmt.Errorf("sim: invalid params: tile size %d, rounds %d", params.TileSize, params.MaxRounds)
	}

	m := &Match{
		params: params,
		maps:   maps,
		rng:    rand.New(rand.NewSource(seed)),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.ctx = MatchContext{
		Phase:     PhaseTitle,
		MaxRounds: params.MaxRounds,
		Scores:    make([]int, players),
	}
	m.world = NewWorld(params, players, m.rng, m.logger)
	return m, nil
}

// Context returns the match state. Callers must treat it as read-only.
func (m *Match) Context() *MatchContext { return &m.ctx }

// World returns the world of the current round.
func (m *Match) World() *World { return m.world }

// Params returns the tuning the match runs with.
func (m *Match) Params() Params { return m.params }

// Start leaves the title screen and loads the first round.
func (m *Match) Start() error {
	if m.ctx.Phase != PhaseTitle {
		return fmt.Errorf("%w: start from %s", ErrPhase, m.ctx.Phase)
	}
	m.ctx.Round = 1
	m.ctx.Tick = 0
	m.ctx.clearGrace()
	for i := range m.ctx.Scores {
		m.ctx.Scores[i] = 0
	}
	if err := m.loadRound(); err != nil {
		return err
	}
	m.ctx.Phase = PhasePlay
	m.logger.Info("match started", "players", len(m.ctx.Scores), "rounds", m.ctx.MaxRounds)
	return nil
}

// TogglePause switches between Play and Pause. Other phases are left alone.
func (m *Match) TogglePause() bool {
	switch m.ctx.Phase {
	case PhasePlay:
		m.ctx.Phase = PhasePause
		return true
	case PhasePause:
		m.ctx.Phase = PhasePlay
		return true
	default:
		return false
	}
}

// Reset returns to the title screen with all scores zeroed.
func (m *Match) Reset() {
	m.ctx.Phase = PhaseTitle
	m.ctx.Round = 0
	m.ctx.Tick = 0
	m.ctx.clearGrace()
	for i := range m.ctx.Scores {
		m.ctx.Scores[i] = 0
	}
	m.world.drainEvents()
}

// Tick advances the match by one frame. Intents are indexed by player slot;
// missing entries mean no input. Outside the Play phase nothing happens.
func (m *Match) Tick(intents []Intent) []Event {
	if m.ctx.Phase != PhasePlay {
		return nil
	}
	m.ctx.Tick++

	alive := m.world.update(&m.ctx, intents)
	m.judge(alive)
	return m.world.drainEvents()
}

// judge decides whether the round is over.
func (m *Match) judge(alive []*Player) {
	monsters := len(m.world.monsters)

	if m.ctx.GracePending {
		if !m.ctx.graceElapsed() {
			return
		}
		m.ctx.clearGrace()
		switch {
		case len(alive) == 1:
			m.advance(int(alive[0].Slot), OutcomeLastStanding)
		case len(alive) == 0 || monsters == 0:
			m.advance(NoWinner, OutcomeDraw)
		}
		return
	}

	if len(alive) == 1 && monsters == 0 {
		m.advance(int(alive[0].Slot), OutcomeClearWin)
	}
}

// advance credits the winner and moves on to the next round or to GameOver.
func (m *Match) advance(winner int, outcome Outcome) {
	if winner != NoWinner {
		if err := m.ctx.Award(winner); err != nil {
			m.logger.Warn("score not credited", "winner", winner, "err", err)
		}
	}
	m.world.emit(RoundEnded{Round: m.ctx.Round, Winner: winner, Outcome: outcome})
	m.logger.Info("round ended", "round", m.ctx.Round, "winner", winner, "outcome", outcome)

	if m.ctx.Round >= m.ctx.MaxRounds {
		m.ctx.Phase = PhaseGameOver
		scores := append([]int(nil), m.ctx.Scores...)
		m.world.emit(GameOver{Scores: scores, Rounds: m.ctx.Round})
		m.logger.Info("match over", "scores", scores)
		return
	}

	m.ctx.Round++
	if err := m.loadRound(); err != nil {
		// Only reachable when no round ever loaded.
		m.logger.Error("round not loaded", "round", m.ctx.Round, "err", err)
		m.ctx.Phase = PhaseGameOver
	}
}

// loadRound builds a fresh grid from the next map. A map that fails to load
// is rejected whole and the previous layout is played again.
func (m *Match) loadRound() error {
	layout, grid, err := m.nextLayout()
	if err != nil {
		if m.lastLayout == nil {
			return fmt.Errorf("sim: load round %d: %w", m.ctx.Round, err)
		}
		m.logger.Warn("map rejected, keeping previous layout", "err", err)
		m.world.emit(MapRejected{Err: err})
		layout = *m.lastLayout
		if grid, err = NewGrid(layout.Tiles); err != nil {
			return fmt.Errorf("sim: reload previous layout: %w", err)
		}
	}

	m.world.Reset(grid, layout)
	m.lastLayout = &layout
	m.ctx.clearGrace()
	m.logger.Debug("round loaded", "round", m.ctx.Round, "map", layout.ID, "monsters", len(layout.Monsters))
	return nil
}

func (m *Match) nextLayout() (Layout, *Grid, error) {
	layout, err := m.maps.Next(m.rng)
	if err != nil {
		return Layout{}, nil, err
	}
	grid, err := NewGrid(layout.Tiles)
	if err != nil {
		return Layout{}, nil, err
	}
	if grid.Cols() != m.params.Cols || grid.Rows() != m.params.Rows {
		return Layout{}, nil, fmt.Errorf("%w: map %q is %dx%d, arena is %dx%d",
			ErrDimensions, layout.ID, grid.Cols(), grid.Rows(), m.params.Cols, m.params.Rows)
	}
	return layout, grid, nil
}

// update runs one Play tick over the world and returns the players still
// standing afterwards.
func (w *World) update(ctx *MatchContext, intents []Intent) []*Player {
	w.beginTick()

	for i, p := range w.players {
		if !p.Active() {
			continue
		}
		if !p.Alive() {
			p.removed = true
			w.emit(PlayerDied{Slot: p.Slot, Round: ctx.Round})
			w.logger.Debug("player removed", "player", p.Slot, "round", ctx.Round)
			ctx.StartGrace(w.params.GraceTicks)
			continue
		}
		var in Intent
		if i < len(intents) {
			in = intents[i]
		}
		w.updatePlayer(p, in)
	}

	kept := w.monsters[:0]
	for _, m := range w.monsters {
		if m.Alive() {
			kept = append(kept, m)
		}
	}
	w.monsters = kept
	for _, m := range w.monsters {
		w.updateMonster(m)
	}

	w.updateBombs()

	alive := make([]*Player, 0, len(w.players))
	for _, p := range w.players {
		if p.Active() && p.Alive() {
			alive = append(alive, p)
		}
	}
	return alive
}

// updatePlayer applies one intent: timers, actions, movement, pickups and
// monster contact, in that order.
func (w *World) updatePlayer(p *Player, in Intent) {
	p.tickEffects(w.params.PowerUps)

	if in.Bomb {
		if _, err := w.PlaceBomb(p); err != nil {
			w.logger.Debug("bomb rejected", "player", p.Slot, "err", err)
		}
	}
	if in.Detonate {
		if err := w.Detonate(p); err != nil {
			w.logger.Debug("detonate rejected", "player", p.Slot, "err", err)
		}
	}
	if in.Obstacle {
		if _, err := w.PlaceObstacle(p); err != nil {
			w.logger.Debug("obstacle rejected", "player", p.Slot, "err", err)
		}
	}

	if dir, ok := in.Direction(); ok {
		p.Dir = dir
		p.CollisionOn = false
		w.ResolveTileCollision(&p.Entity)
		w.ResolveBombCollision(&p.Entity, p)
		w.ResolveObjectCollision(&p.Entity, p, true)
		w.ResolveEntityCollision(&p.Entity, w.playerEntities())
		if !p.CollisionOn {
			p.step()
		}
		p.animate(w.params.AnimTicks)
		p.trackTile(w.params.TileSize)
	}

	w.collectPowerUps(p)
	w.touchPlayers(p)
}

// playerEntities lists the players in the round as collision candidates.
func (w *World) playerEntities() []*Entity {
	out := make([]*Entity, 0, len(w.players))
	for _, p := range w.players {
		if p.Active() {
			out = append(out, &p.Entity)
		}
	}
	return out
}

// collectPowerUps hands every visible power-up under the player to it.
func (w *World) collectPowerUps(p *Player) {
	ts := w.params.TileSize
	box := p.Bounds()
	kept := w.powerUps[:0]
	for _, pu := range w.powerUps {
		if pu.Visible && box.Intersects(tileRect(pu.Tile, ts)) {
			pu.Kind.Apply(p, w.params)
			pu.Collected = true
			w.emit(PowerUpCollected{Slot: p.Slot, Kind: pu.Kind})
			w.logger.Debug("power-up collected", "player", p.Slot, "kind", pu.Kind)
			continue
		}
		kept = append(kept, pu)
	}
	w.powerUps = kept
}
