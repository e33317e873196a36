package sim

import (
	"errors"
	"testing"
)

func containsTile(tiles []Tile, t Tile) bool {
	for _, c := range tiles {
		if c == t {
			return true
		}
	}
	return false
}

func TestPlaceBombRespectsLimit(t *testing.T) {
	w := newTestWorld(t, arenaKinds(16, 12), 1)
	p := w.Players()[0]
	standOn(w, p, Tile{3, 3})

	if _, err := w.PlaceBomb(p); err != nil {
		t.Fatalf("first PlaceBomb: %v", err)
	}
	if p.BombCount != 1 {
		t.Fatalf("BombCount = %d, want 1", p.BombCount)
	}

	standOn(w, p, Tile{5, 3})
	if _, err := w.PlaceBomb(p); !errors.Is(err, ErrBombLimit) {
		t.Errorf("second PlaceBomb error = %v, want ErrBombLimit", err)
	}
	if p.BombCount != 1 || len(w.Bombs()) != 1 {
		t.Errorf("rejected placement changed state: count %d, bombs %d", p.BombCount, len(w.Bombs()))
	}
}

func TestPlaceBombRejections(t *testing.T) {
	w := newTestWorld(t, arenaKinds(16, 12), 1)
	p := w.Players()[0]
	p.BombLimit = 3
	standOn(w, p, Tile{3, 3})

	b, err := w.PlaceBomb(p)
	if err != nil {
		t.Fatalf("PlaceBomb: %v", err)
	}
	if b.Tile != (Tile{3, 3}) || b.Radius != 2 || b.State != Armed {
		t.Errorf("bomb = %+v", b)
	}
	if _, err := w.PlaceBomb(p); !errors.Is(err, ErrTileBlocked) {
		t.Errorf("second bomb on the same tile: %v, want ErrTileBlocked", err)
	}

	w.obstacles = append(w.obstacles, &Obstacle{Tile: Tile{6, 6}})
	standOn(w, p, Tile{6, 6})
	if _, err := w.PlaceBomb(p); !errors.Is(err, ErrTileBlocked) {
		t.Errorf("bomb on an obstacle: %v, want ErrTileBlocked", err)
	}

	p.removed = true
	if _, err := w.PlaceBomb(p); !errors.Is(err, ErrNotAlive) {
		t.Errorf("removed player: %v, want ErrNotAlive", err)
	}
}

func TestBlastOpensFirstBoxAndStops(t *testing.T) {
	kinds := arenaKinds(16, 12)
	kinds[4][3] = Destructible
	w := newTestWorld(t, kinds, 1)
	p := w.Players()[0]
	standOn(w, p, Tile{3, 3})

	b, err := w.PlaceBomb(p)
	if err != nil {
		t.Fatalf("PlaceBomb: %v", err)
	}
	standOn(w, p, Tile{10, 8})

	if !w.Explode(b) {
		t.Fatal("Explode returned false for an armed bomb")
	}
	if got := w.Grid().KindAt(3, 4); got != Open {
		t.Errorf("tile (3,4) = %v, want open", got)
	}
	if !containsTile(b.Cells, Tile{3, 4}) {
		t.Error("blast should cover the box it opened")
	}
	if containsTile(b.Cells, Tile{3, 5}) {
		t.Error("blast continued past the box")
	}
	for _, want := range []Tile{{3, 3}, {3, 2}, {3, 1}, {2, 3}, {1, 3}, {4, 3}, {5, 3}} {
		if !containsTile(b.Cells, want) {
			t.Errorf("blast missing %v", want)
		}
	}

	pu := w.PowerUps()[0]
	if pu.Tile != (Tile{3, 4}) || !pu.Visible {
		t.Errorf("power-up = %+v, want visible on (3,4)", pu)
	}
}

func TestBlastStopsAtWall(t *testing.T) {
	kinds := arenaKinds(16, 12)
	kinds[3][5] = Wall
	w := newTestWorld(t, kinds, 2)
	victim := w.Players()[1]
	standOn(w, victim, Tile{6, 3})

	b := &Bomb{Tile: Tile{3, 3}, Radius: 3, State: Armed}
	w.bombs = append(w.bombs, b)
	w.Explode(b)

	if containsTile(b.Cells, Tile{5, 3}) || containsTile(b.Cells, Tile{6, 3}) {
		t.Errorf("blast reached the wall or beyond: %v", b.Cells)
	}
	if victim.Life != 3 {
		t.Errorf("player behind the wall lost life: %d", victim.Life)
	}
	// Edge tiles stop the blast as well.
	if containsTile(b.Cells, Tile{3, 0}) {
		t.Error("blast entered the edge ring")
	}
}

func TestExplodeIsIdempotent(t *testing.T) {
	w := newTestWorld(t, arenaKinds(16, 12), 2)
	victim := w.Players()[1]
	standOn(w, victim, Tile{4, 3})

	b := &Bomb{Tile: Tile{3, 3}, Radius: 2, State: Armed}
	w.bombs = append(w.bombs, b)

	if !w.Explode(b) {
		t.Fatal("first Explode should succeed")
	}
	if w.Explode(b) {
		t.Error("second Explode should be a no-op")
	}
	if victim.Life != 2 {
		t.Errorf("Life = %d, want 2", victim.Life)
	}
}

func TestOneHitPerTick(t *testing.T) {
	w := newTestWorld(t, arenaKinds(16, 12), 2)
	victim := w.Players()[1]
	standOn(w, victim, Tile{4, 3})

	a := &Bomb{Tile: Tile{3, 3}, Radius: 2, State: Armed}
	w.bombs = append(w.bombs, a)

	w.Explode(a)
	// Force a second blast over the same tile in the same tick.
	w.applyBlast([]Tile{{4, 3}})
	if victim.Life != 2 {
		t.Errorf("Life = %d after two blasts in one tick, want 2", victim.Life)
	}

	w.beginTick()
	w.applyBlast([]Tile{{4, 3}})
	if victim.Life != 1 {
		t.Errorf("Life = %d after next tick's blast, want 1", victim.Life)
	}
}

func TestInvinciblePlayerIgnoresBlast(t *testing.T) {
	w := newTestWorld(t, arenaKinds(16, 12), 1)
	p := w.Players()[0]
	standOn(w, p, Tile{3, 3})
	p.InvincibleTicks = 10

	w.applyBlast([]Tile{{3, 3}})
	if p.Life != 3 || p.HitThisTick {
		t.Errorf("invincible player hit: life %d, flag %v", p.Life, p.HitThisTick)
	}
}

func TestChainReaction(t *testing.T) {
	tests := []struct {
		name      string
		timer     int
		wantDelay int
	}{
		{"fresh bomb waits the chain delay", 0, 30},
		{"nearly burnt fuse keeps its rest", 170, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, arenaKinds(16, 12), 1)
			a := &Bomb{Tile: Tile{3, 3}, Radius: 2, State: Armed}
			b := &Bomb{Tile: Tile{5, 3}, Radius: 2, State: Armed, Timer: tt.timer}
			far := &Bomb{Tile: Tile{10, 8}, Radius: 2, State: Armed}
			w.bombs = append(w.bombs, a, b, far)

			w.Explode(a)
			if !b.ChainScheduled() {
				t.Fatal("bomb inside the blast was not chain-triggered")
			}
			if far.ChainScheduled() {
				t.Error("bomb outside the blast was chain-triggered")
			}
			if got := b.FuseLeft(w.params.FuseTicks); got != tt.wantDelay {
				t.Errorf("FuseLeft = %d, want %d", got, tt.wantDelay)
			}

			for i := 0; i < tt.wantDelay-1; i++ {
				w.updateBombs()
			}
			if b.State != Armed {
				t.Fatalf("chained bomb exploded early, state %v", b.State)
			}
			w.updateBombs()
			if b.State != Exploding {
				t.Errorf("chained bomb state = %v, want exploding", b.State)
			}
		})
	}
}

func TestChainDelayIgnoresBombOrder(t *testing.T) {
	tests := []struct {
		name        string
		sourceFirst bool
	}{
		{"source before chained bomb", true},
		{"source after chained bomb", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, arenaKinds(16, 12), 1)
			src := &Bomb{Tile: Tile{3, 3}, Radius: 2, State: Armed, Timer: w.params.FuseTicks - 1}
			chained := &Bomb{Tile: Tile{5, 3}, Radius: 2, State: Armed}
			if tt.sourceFirst {
				w.bombs = append(w.bombs, src, chained)
			} else {
				w.bombs = append(w.bombs, chained, src)
			}

			w.updateBombs()
			if src.State != Exploding || !chained.ChainScheduled() {
				t.Fatalf("source state %v, chained scheduled %v", src.State, chained.ChainScheduled())
			}

			ticks := 0
			for chained.State == Armed && ticks < 100 {
				w.updateBombs()
				ticks++
			}
			if ticks != w.params.ChainDelayTicks {
				t.Errorf("chained bomb exploded %d ticks later, want %d", ticks, w.params.ChainDelayTicks)
			}
		})
	}
}

func TestChainSkipsScheduledBomb(t *testing.T) {
	w := newTestWorld(t, arenaKinds(16, 12), 1)
	a := &Bomb{Tile: Tile{3, 3}, Radius: 2, State: Armed}
	b := &Bomb{Tile: Tile{5, 3}, Radius: 2, State: Armed, chainTicks: 5}
	w.bombs = append(w.bombs, a, b)

	w.Explode(a)
	if b.chainTicks != 5 {
		t.Errorf("scheduled bomb re-triggered, chainTicks = %d", b.chainTicks)
	}
}

func TestBombLifecycle(t *testing.T) {
	w := newTestWorld(t, arenaKinds(16, 12), 1)
	p := w.Players()[0]
	standOn(w, p, Tile{3, 3})
	b, err := w.PlaceBomb(p)
	if err != nil {
		t.Fatalf("PlaceBomb: %v", err)
	}
	standOn(w, p, Tile{10, 8})

	params := w.params
	for i := 0; i < params.FuseTicks-1; i++ {
		w.updateBombs()
	}
	if b.State != Armed {
		t.Fatalf("state after %d ticks = %v, want armed", params.FuseTicks-1, b.State)
	}
	w.updateBombs()
	if b.State != Exploding {
		t.Fatalf("state after fuse = %v, want exploding", b.State)
	}

	for i := 0; i < params.FireTicks; i++ {
		w.updateBombs()
	}
	if b.State != Expired || len(w.Bombs()) != 0 {
		t.Errorf("state = %v, bombs on field = %d", b.State, len(w.Bombs()))
	}
	if p.BombCount != 0 || len(p.Bombs) != 0 {
		t.Errorf("owner not credited back: count %d, list %d", p.BombCount, len(p.Bombs))
	}
}

func TestBombOutlivesRemovedOwner(t *testing.T) {
	w := newTestWorld(t, arenaKinds(16, 12), 1)
	p := w.Players()[0]
	standOn(w, p, Tile{3, 3})
	p.Detonator = true
	b, err := w.PlaceBomb(p)
	if err != nil {
		t.Fatalf("PlaceBomb: %v", err)
	}
	p.removed = true

	// With the owner gone the detonator no longer holds the fuse.
	for i := 0; i < w.params.FuseTicks+w.params.FireTicks; i++ {
		w.updateBombs()
	}
	if b.State != Expired {
		t.Errorf("state = %v, want expired", b.State)
	}
	if p.BombCount != 1 {
		t.Errorf("removed owner's BombCount = %d, want 1 (decrement skipped)", p.BombCount)
	}
}

func TestDetonator(t *testing.T) {
	w := newTestWorld(t, arenaKinds(16, 12), 1)
	p := w.Players()[0]

	if err := w.Detonate(p); !errors.Is(err, ErrNoDetonator) {
		t.Errorf("Detonate without grant: %v, want ErrNoDetonator", err)
	}

	p.Detonator = true
	p.BombLimit = 2
	standOn(w, p, Tile{3, 3})
	first, _ := w.PlaceBomb(p)
	standOn(w, p, Tile{8, 8})
	second, _ := w.PlaceBomb(p)
	standOn(w, p, Tile{12, 5})

	for i := 0; i < w.params.FuseTicks*2; i++ {
		w.updateBombs()
	}
	if first.State != Armed || second.State != Armed {
		t.Fatalf("fuses burnt while the detonator was held: %v %v", first.State, second.State)
	}

	if err := w.Detonate(p); err != nil {
		t.Fatalf("Detonate: %v", err)
	}
	if first.State != Exploding || second.State != Exploding {
		t.Errorf("states after detonate = %v %v", first.State, second.State)
	}
	if p.Detonator {
		t.Error("detonator grant not consumed")
	}
}

func TestPlaceObstacle(t *testing.T) {
	w := newTestWorld(t, arenaKinds(16, 12), 2)
	p, other := w.Players()[0], w.Players()[1]
	standOn(w, p, Tile{4, 4})
	p.lastTile = Tile{3, 4}

	if _, err := w.PlaceObstacle(p); !errors.Is(err, ErrNoObstacles) {
		t.Errorf("without allowance: %v, want ErrNoObstacles", err)
	}

	p.ObstacleAllowance = 3
	o, err := w.PlaceObstacle(p)
	if err != nil {
		t.Fatalf("PlaceObstacle: %v", err)
	}
	if o.Tile != (Tile{3, 4}) || p.ObstaclesPlaced != 1 {
		t.Errorf("obstacle on %v, placed %d", o.Tile, p.ObstaclesPlaced)
	}

	tests := []struct {
		name string
		last Tile
	}{
		{"same tile again", Tile{3, 4}},
		{"wall tile", Tile{0, 4}},
		{"under another player", Tile{7, 7}},
	}
	standOn(w, other, Tile{7, 7})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.lastTile = tt.last
			if _, err := w.PlaceObstacle(p); !errors.Is(err, ErrTileBlocked) {
				t.Errorf("err = %v, want ErrTileBlocked", err)
			}
		})
	}
	if p.ObstaclesPlaced != 1 {
		t.Errorf("rejections consumed allowance: placed %d", p.ObstaclesPlaced)
	}
}

func TestBlastRemovesObstacle(t *testing.T) {
	w := newTestWorld(t, arenaKinds(16, 12), 1)
	w.obstacles = append(w.obstacles, &Obstacle{Tile: Tile{3, 4}})
	b := &Bomb{Tile: Tile{5, 4}, Radius: 3, State: Armed}
	w.bombs = append(w.bombs, b)

	w.Explode(b)
	if len(w.Obstacles()) != 0 {
		t.Error("obstacle survived the blast")
	}
	if !containsTile(b.Cells, Tile{3, 4}) || containsTile(b.Cells, Tile{2, 4}) {
		t.Errorf("blast cells = %v, want stop at the obstacle", b.Cells)
	}
}
