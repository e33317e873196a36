package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/registry"
	"github.com/vovakirdan/tui-bomber/internal/storage"
)

func init() {
	registry.Register("scripted", func() registry.Game { return &scriptedGame{length: 1000} })
}

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func TestSessionMenuGameMenu(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
	m := NewSessionModel(store, cfg, "alice", nil)

	if !strings.Contains(m.View(), "Scripted") {
		t.Fatalf("menu does not list the registered game:\n%s", m.View())
	}

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.inGame || m.game == nil || m.game.ID() != "scripted" {
		t.Fatalf("enter should start the selected game")
	}

	// Esc on the title screen returns to a fresh menu.
	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.inGame {
		t.Fatal("esc on the title screen should return to the menu")
	}
	if m.menu.Selected() != nil {
		t.Error("menu kept the old selection")
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := NewSessionModel(nil, core.RuntimeConfig{ScreenW: 100, ScreenH: 30}, "bob", nil)

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.inScoreboard {
		t.Fatal("tab should open the match history")
	}
	if !strings.Contains(m.View(), "MATCH HISTORY") {
		t.Errorf("scoreboard view:\n%s", m.View())
	}

	m = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.inScoreboard {
		t.Error("esc should go back to the menu")
	}
}
