package arena

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-bomber/internal/config"
	"github.com/vovakirdan/tui-bomber/internal/core"
	"github.com/vovakirdan/tui-bomber/internal/games/arena/sim"
	"github.com/vovakirdan/tui-bomber/internal/registry"
)

func newTestGame(t *testing.T, players int, seed int64) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	g := New(players)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	if g.Err() != nil {
		t.Fatalf("Reset: %v", g.Err())
	}
	return g
}

func press(id core.PlayerID, actions ...core.Action) core.MultiInputFrame {
	in := core.NewMultiInputFrame()
	for _, a := range actions {
		in.Set(id, a)
	}
	return in
}

func TestRegisteredModes(t *testing.T) {
	for n := 1; n <= core.MaxPlayers; n++ {
		id := gameID(n)
		if !registry.Exists(id) {
			t.Fatalf("%s is not registered", id)
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%s): %v", id, err)
		}
		if g.Players() != n || g.ID() != id {
			t.Errorf("%s: Players() = %d, ID() = %q", id, g.Players(), g.ID())
		}
	}
}

func TestStartAndPause(t *testing.T) {
	g := newTestGame(t, 2, 1)
	if g.Phase() != sim.PhaseTitle {
		t.Fatalf("phase = %s, want title", g.Phase())
	}

	g.Step(core.NewMultiInputFrame())
	if g.Phase() != sim.PhaseTitle {
		t.Fatal("match started without confirm")
	}

	res := g.Step(press(core.Player1, core.ActionConfirm))
	if g.Phase() != sim.PhasePlay || res.State.Round != 1 || res.State.MaxRounds != 4 {
		t.Fatalf("after confirm: phase %s state %+v", g.Phase(), res.State)
	}
	if len(res.State.Scores) != 2 {
		t.Errorf("scores = %v, want 2 slots", res.State.Scores)
	}

	res = g.Step(press(core.Player2, core.ActionPause))
	if !res.State.Paused {
		t.Fatal("pause from player 2 was ignored")
	}
	tick := g.Snapshot().Tick
	g.Step(core.NewMultiInputFrame())
	if g.Snapshot().Tick != tick {
		t.Error("paused match advanced")
	}
	if res = g.Step(press(core.Player1, core.ActionPause)); res.State.Paused {
		t.Error("second pause did not resume")
	}
}

func TestIntentsReachPlayers(t *testing.T) {
	g := newTestGame(t, 2, 3)
	g.Step(press(core.Player1, core.ActionConfirm))

	g.Step(press(core.Player2, core.ActionBomb))
	s := g.Snapshot()
	if len(s.Bombs) != 1 {
		t.Fatalf("bombs = %d, want 1", len(s.Bombs))
	}
	p2, ok := playerView(s, 1)
	if !ok || p2.Bombs != 1 {
		t.Errorf("player 2 view = %+v", p2)
	}
	if p1, _ := playerView(s, 0); p1.Bombs != 0 {
		t.Errorf("player 1 should not have placed a bomb: %+v", p1)
	}
}

func TestDeterministicGames(t *testing.T) {
	run := func() sim.Snapshot {
		g := newTestGame(t, 3, 99)
		g.Step(press(core.Player1, core.ActionConfirm))
		for i := 0; i < 600; i++ {
			in := core.NewMultiInputFrame()
			switch i % 90 {
			case 0:
				in.Set(core.Player1, core.ActionBomb)
			case 10, 11, 12, 13:
				in.Set(core.Player2, core.ActionRight)
			case 40:
				in.Set(core.Player3, core.ActionDown)
			}
			g.Step(in)
		}
		return g.Snapshot()
	}
	if a, b := run(), run(); !reflect.DeepEqual(a, b) {
		t.Error("same seed and inputs produced different snapshots")
	}
}

func TestRenderPhases(t *testing.T) {
	g := newTestGame(t, 2, 5)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	if out := screen.String(); !strings.Contains(out, "Press Enter to start") {
		t.Errorf("title screen missing prompt:\n%s", out)
	}

	g.Step(press(core.Player1, core.ActionConfirm))
	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"Bomb Arena (2P)", "Round 1/4", "█", "1", "2"} {
		if !strings.Contains(out, want) {
			t.Errorf("arena render missing %q:\n%s", want, out)
		}
	}

	g.Step(press(core.Player1, core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "Paused") {
		t.Error("pause overlay missing")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, 1, 5)
	g.Step(press(core.Player1, core.ActionConfirm))

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected a too-small message:\n%s", screen.String())
	}
}

func TestNewLayoutScales(t *testing.T) {
	s := sim.Snapshot{Cols: 16, Rows: 12, TileSize: 48}
	tests := []struct {
		w, h         int
		ok           bool
		cellW, cellH int
	}{
		{80, 24, true, 2, 1},
		{64, 26, true, 4, 2},
		{31, 20, false, 2, 1},
		{40, 13, false, 2, 1},
	}
	for _, tt := range tests {
		l, ok := newLayout(s, tt.w, tt.h)
		if ok != tt.ok || l.cellW != tt.cellW || l.cellH != tt.cellH {
			t.Errorf("newLayout(%dx%d) = %+v %v", tt.w, tt.h, l, ok)
		}
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		ev   sim.Event
		want string
	}{
		{sim.RoundEnded{Round: 2, Winner: 1, Outcome: sim.OutcomeClearWin}, "Round 2: P2 wins (clear)"},
		{sim.RoundEnded{Round: 3, Winner: sim.NoWinner, Outcome: sim.OutcomeDraw}, "Round 3: draw"},
		{sim.PlayerDied{Slot: core.Player3}, "P3 is out"},
		{sim.PowerUpCollected{Slot: core.Player1, Kind: sim.GhostMode}, "P1 picked up ghost"},
		{sim.GameOver{Rounds: 4}, "Game over after 4 rounds"},
		{sim.MapRejected{Err: errors.New("bad")}, "Map rejected, replaying the last one: bad"},
		{sim.BombExploded{}, ""},
	}
	for _, tt := range tests {
		if got := describe(tt.ev); got != tt.want {
			t.Errorf("describe(%T) = %q, want %q", tt.ev, got, tt.want)
		}
	}
}

func TestFuseSeconds(t *testing.T) {
	tests := []struct{ ticks, rate, want int }{
		{180, 60, 3},
		{121, 60, 3},
		{1, 60, 1},
		{0, 60, 0},
		{6000, 60, 9},
		{10, 0, -1},
	}
	for _, tt := range tests {
		if got := fuseSeconds(tt.ticks, tt.rate); got != tt.want {
			t.Errorf("fuseSeconds(%d, %d) = %d, want %d", tt.ticks, tt.rate, got, tt.want)
		}
	}
}

func TestSetDifficultyPreset(t *testing.T) {
	defer SetDifficultyPreset("normal")

	SetDifficultyPreset("hard")
	if difficultyPreset != config.DifficultyHard {
		t.Errorf("preset = %q, want hard", difficultyPreset)
	}
	SetDifficultyPreset("impossible")
	if difficultyPreset != config.DifficultyNormal {
		t.Errorf("unknown preset gave %q, want normal", difficultyPreset)
	}
}

func TestResultLine(t *testing.T) {
	if got := resultLine([]int{1, 3, 0}); got != "P2 wins the match" {
		t.Errorf("resultLine = %q", got)
	}
	if got := resultLine([]int{2, 2}); got != "Draw" {
		t.Errorf("resultLine = %q", got)
	}
}
