package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// holdTicks is how long a movement key keeps its player walking. Terminals
// report key repeats, not releases, so a held key is a stream of presses
// and the latch bridges the gaps between them.
const holdTicks = 10

// PlayerKeys are the bindings of one hot-seat player.
type PlayerKeys struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Bomb     key.Binding
	Detonate key.Binding
	Obstacle key.Binding
}

// KeyMap holds the bindings of every player plus the shared controls.
type KeyMap struct {
	Players [core.MaxPlayers]PlayerKeys

	Confirm key.Binding
	Pause   key.Binding
	Restart key.Binding
	Back    key.Binding
	Quit    key.Binding
}

func playerKeys(up, down, left, right, bomb, detonate, obstacle, label string) PlayerKeys {
	return PlayerKeys{
		Up:       key.NewBinding(key.WithKeys(up)),
		Down:     key.NewBinding(key.WithKeys(down)),
		Left:     key.NewBinding(key.WithKeys(left), key.WithHelp(label, "move")),
		Right:    key.NewBinding(key.WithKeys(right)),
		Bomb:     key.NewBinding(key.WithKeys(bomb), key.WithHelp(bombHelp(bomb), "bomb")),
		Detonate: key.NewBinding(key.WithKeys(detonate), key.WithHelp(detonate, "detonate")),
		Obstacle: key.NewBinding(key.WithKeys(obstacle), key.WithHelp(obstacle, "obstacle")),
	}
}

func bombHelp(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

// DefaultKeyMap returns the default bindings: P1 on WASD, P2 on the arrow
// keys, P3 on IJKL.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Players: [core.MaxPlayers]PlayerKeys{
			playerKeys("w", "s", "a", "d", " ", "e", "x", "wasd"),
			playerKeys("up", "down", "left", "right", "/", ".", ",", "arrows"),
			playerKeys("i", "k", "j", "l", "o", "u", "m", "ijkl"),
		},
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "title")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "menu")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	p1 := k.Players[0]
	return []key.Binding{p1.Left, p1.Bomb, k.Confirm, k.Pause, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	cols := [][]key.Binding{{k.Confirm, k.Pause, k.Restart, k.Back, k.Quit}}
	for _, p := range k.Players {
		cols = append(cols, []key.Binding{p.Left, p.Bomb, p.Detonate, p.Obstacle})
	}
	return cols
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys    KeyMap
	players int
}

// NewKeyMapper creates a key mapper for the given number of players.
func NewKeyMapper(players int) *KeyMapper {
	return &KeyMapper{keys: DefaultKeyMap(), players: core.Clamp(players, 1, core.MaxPlayers)}
}

// Keys returns the bindings in use.
func (km *KeyMapper) Keys() KeyMap {
	return km.keys
}

// MapKey translates a key message to a player action. Shared controls are
// reported for Player1. isQuit is set for quit keys.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (id core.PlayerID, action core.Action, isQuit bool) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.Player1, core.ActionQuit, true
	case key.Matches(msg, k.Confirm):
		return core.Player1, core.ActionConfirm, false
	case key.Matches(msg, k.Pause):
		return core.Player1, core.ActionPause, false
	case key.Matches(msg, k.Restart):
		return core.Player1, core.ActionRestart, false
	case key.Matches(msg, k.Back):
		return core.Player1, core.ActionBack, false
	}

	for i := 0; i < km.players; i++ {
		pk := k.Players[i]
		id := core.PlayerID(i)
		switch {
		case key.Matches(msg, pk.Up):
			return id, core.ActionUp, false
		case key.Matches(msg, pk.Down):
			return id, core.ActionDown, false
		case key.Matches(msg, pk.Left):
			return id, core.ActionLeft, false
		case key.Matches(msg, pk.Right):
			return id, core.ActionRight, false
		case key.Matches(msg, pk.Bomb):
			return id, core.ActionBomb, false
		case key.Matches(msg, pk.Detonate):
			return id, core.ActionDetonate, false
		case key.Matches(msg, pk.Obstacle):
			return id, core.ActionObstacle, false
		}
	}
	return core.Player1, core.ActionNone, false
}

// MapKeyToMultiFrame updates a multi-input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToMultiFrame(msg tea.KeyMsg, frame *core.MultiInputFrame) bool {
	id, action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(id, action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}

func isMove(a core.Action) bool {
	return a == core.ActionUp || a == core.ActionDown || a == core.ActionLeft || a == core.ActionRight
}

// inputLatch keeps the last movement of each player alive for holdTicks.
type inputLatch struct {
	dir  [core.MaxPlayers]core.Action
	left [core.MaxPlayers]int
}

// press records a movement key. Other actions are ignored.
func (l *inputLatch) press(id core.PlayerID, a core.Action) {
	if !isMove(a) || int(id) < 0 || int(id) >= core.MaxPlayers {
		return
	}
	l.dir[id] = a
	l.left[id] = holdTicks
}

// apply adds every held movement to frame and ages the latch by one tick.
func (l *inputLatch) apply(frame *core.MultiInputFrame) {
	for i := range l.dir {
		if l.left[i] == 0 {
			continue
		}
		id := core.PlayerID(i)
		if !frame.Player(id).Has(l.dir[i]) {
			frame.Set(id, l.dir[i])
		}
		l.left[i]--
	}
}

// release drops all held movement.
func (l *inputLatch) release() {
	*l = inputLatch{}
}
