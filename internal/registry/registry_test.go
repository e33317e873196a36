package registry

import (
	"testing"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                                { return g.id }
func (g *stubGame) Title() string                             { return "Stub " + g.id }
func (g *stubGame) Players() int                              { return 2 }
func (g *stubGame) Reset(core.RuntimeConfig)                  {}
func (g *stubGame) Step(core.MultiInputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                       {}
func (g *stubGame) State() core.GameState                     { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_b", func() Game { return &stubGame{id: "stub_b"} })
	Register("stub_a", func() Game { return &stubGame{id: "stub_a"} })

	if !Exists("stub_a") {
		t.Fatal("stub_a should exist")
	}

	g, err := Create("stub_b")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "stub_b" {
		t.Errorf("ID() = %q", g.ID())
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create() of unknown id should fail")
	}

	list := List()
	var ids []string
	for _, info := range list {
		ids = append(ids, info.ID)
		if info.ID == "stub_a" && (info.Players != 2 || info.Title != "Stub stub_a") {
			t.Errorf("info = %+v", info)
		}
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("List() not sorted: %v", ids)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
}
