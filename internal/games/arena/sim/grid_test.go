package sim

import (
	"errors"
	"testing"
)

func TestNewGridValidation(t *testing.T) {
	if _, err := NewGrid(nil); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("expected ErrEmptyGrid, got %v", err)
	}
	ragged := [][]TileKind{{Open, Open}, {Open}}
	if _, err := NewGrid(ragged); err == nil {
		t.Error("expected error for ragged rows")
	}
	bad := [][]TileKind{{Open, TileKind(9)}}
	if _, err := NewGrid(bad); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestGridQueries(t *testing.T) {
	kinds := arenaKinds(5, 4)
	kinds[1][2] = Destructible
	g, err := NewGrid(kinds)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}

	tests := []struct {
		name     string
		col, row int
		kind     TileKind
		solid    bool
		edge     bool
	}{
		{"corner wall", 0, 0, Wall, true, true},
		{"open interior", 1, 1, Open, false, false},
		{"box", 2, 1, Destructible, true, false},
		{"right ring", 4, 2, Wall, true, true},
		{"left of grid", -1, 1, Wall, true, true},
		{"below grid", 1, 4, Wall, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.KindAt(tt.col, tt.row); got != tt.kind {
				t.Errorf("KindAt = %v, want %v", got, tt.kind)
			}
			if got := g.IsSolid(tt.col, tt.row); got != tt.solid {
				t.Errorf("IsSolid = %v, want %v", got, tt.solid)
			}
			if got := g.IsEdge(tt.col, tt.row); got != tt.edge {
				t.Errorf("IsEdge = %v, want %v", got, tt.edge)
			}
		})
	}
}

func TestGridSetOpen(t *testing.T) {
	kinds := arenaKinds(5, 4)
	kinds[1][2] = Destructible
	g, _ := NewGrid(kinds)

	if len(g.Boxes()) != 1 {
		t.Fatalf("Boxes = %v, want one box", g.Boxes())
	}
	if !g.SetOpen(2, 1) {
		t.Error("SetOpen on a box should succeed")
	}
	if g.KindAt(2, 1) != Open {
		t.Errorf("box not opened, kind = %v", g.KindAt(2, 1))
	}
	// A second blast on the same cell is a no-op.
	if g.SetOpen(2, 1) {
		t.Error("SetOpen on an open tile should report false")
	}
	if g.SetOpen(0, 0) {
		t.Error("SetOpen must never open a wall")
	}
	if g.KindAt(0, 0) != Wall {
		t.Error("wall changed")
	}
	if len(g.Boxes()) != 0 {
		t.Errorf("Boxes after open = %v", g.Boxes())
	}
}

func TestTileKindFromCode(t *testing.T) {
	tests := []struct {
		code int
		kind TileKind
		ok   bool
	}{
		{0, Open, true},
		{1, Wall, true},
		{2, Destructible, true},
		{3, Open, false},
		{-1, Open, false},
	}
	for _, tt := range tests {
		kind, ok := TileKindFromCode(tt.code)
		if ok != tt.ok || (ok && kind != tt.kind) {
			t.Errorf("TileKindFromCode(%d) = %v, %v; want %v, %v", tt.code, kind, ok, tt.kind, tt.ok)
		}
	}
}

func TestTicksFromMillis(t *testing.T) {
	if got := TicksFromMillis(2000, 60); got != 120 {
		t.Errorf("TicksFromMillis(2000, 60) = %d, want 120", got)
	}
	if got := TicksFromMillis(3000, 60); got != 180 {
		t.Errorf("TicksFromMillis(3000, 60) = %d, want 180", got)
	}
	if got := TicksFromMillis(-5, 60); got != 0 {
		t.Errorf("negative duration = %d, want 0", got)
	}
}
