package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/registry"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

// noteDuration is how long a status note stays on the bottom line.
const noteDuration = 180

// GameModel is the Bubble Tea model running one game, with hot-seat input,
// a status line and back-to-menu support.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.MultiInputFrame
	latch      *inputLatch
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model

	note      string
	noteTicks int
	ticks     uint64 // simulation ticks of the current match

	quitting    bool
	backToMenu  bool
	resultSaved bool
	lastMatchID string
}

// NewGameModel creates a new game model. store and logger may be nil.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()
	h.Width = cfg.ScreenW

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:      store,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewMultiInputFrame(),
		latch:      &inputLatch{},
		keyMapper:  NewKeyMapper(game.Players()),
		help:       h,
	}
}

// Init initializes the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The arena adapts its layout on every render, so a resize keeps the match.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	id, action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused || m.gameState.Round == 0 {
			// Standalone programs exit here; a session swaps back to its menu.
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil
	case action == core.ActionNone:
		return m, nil
	}

	m.inputFrame.Set(id, action)
	m.latch.press(id, action)
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	wasOver := m.gameState.GameOver
	if !m.gameState.Paused {
		m.latch.apply(&m.inputFrame)
	} else {
		m.latch.release()
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if s := m.gameState; s.Round > 0 && !s.Paused && !s.GameOver {
		m.ticks++
	}
	if s := m.gameState; s.Round == 0 && !s.GameOver {
		// Back on the title screen: the next match starts fresh.
		m.ticks = 0
		m.resultSaved = false
	}

	for _, ev := range result.Events {
		m.logger.Debug("game event", "game", m.game.ID(), "event", ev)
		m.note, m.noteTicks = ev, noteDuration
	}
	if m.noteTicks > 0 {
		m.noteTicks--
		if m.noteTicks == 0 {
			m.note = ""
		}
	}

	if m.gameState.GameOver && !wasOver && !m.resultSaved {
		m.saveResult()
	}

	return m, tickCmd(m.config.TickRate)
}

// saveResult stores the finished match. Best effort: a failing store is
// logged and the game continues.
func (m *GameModel) saveResult() {
	m.resultSaved = true
	if m.store == nil {
		return
	}
	s := m.gameState
	id, err := m.store.SaveMatch(storage.MatchResult{
		GameID:        m.game.ID(),
		Players:       m.game.Players(),
		Rounds:        s.MaxRounds,
		Winner:        s.Leader(),
		EndReason:     storage.EndCompleted,
		DurationTicks: m.ticks,
		Scores:        s.Scores,
	})
	if err != nil {
		m.logger.Error("could not save match", "game", m.game.ID(), "err", err)
		return
	}
	m.lastMatchID = id
	m.logger.Info("match saved", "game", m.game.ID(), "match", id, "winner", s.Leader())
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".bomber", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "err", err)
		return
	}
	m.note, m.noteTicks = "Saved "+path, noteDuration
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	status := m.help.View(m.keyMapper.Keys())
	if m.note != "" {
		status = renderStatus(m.note, m.screen.Width())
	}
	return RenderScreen(m.screen) + "\n" + status
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// LastMatchID returns the ID of the last stored match, if any.
func (m GameModel) LastMatchID() string {
	return m.lastMatchID
}

// Run starts the Bubble Tea program with the given game. back reports
// whether the player asked to return to the menu rather than quit.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (back bool, err error) {
	model := NewGameModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(GameModel)
	return ok && m.BackToMenu(), nil
}
