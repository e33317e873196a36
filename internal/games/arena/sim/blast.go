package sim

// PlaceBomb arms a bomb on the tile under the player's hitbox center.
func (w *World) PlaceBomb(p *Player) (*Bomb, error) {
	if !p.Active() || !p.Alive() {
		return nil, ErrNotAlive
	}
	if p.BombCount >= p.BombLimit {
		return nil, ErrBombLimit
	}
	t := p.TileAt(w.params.TileSize)
	if w.grid.KindAt(t.Col, t.Row) != Open || w.bombAt(t) != nil || w.obstacleAt(t) >= 0 {
		return nil, ErrTileBlocked
	}

	b := &Bomb{
		Tile:        t,
		Owner:       p,
		Radius:      p.BlastRadius,
		State:       Armed,
		ignoreOwner: true,
	}
	w.bombs = append(w.bombs, b)
	p.Bombs = append(p.Bombs, b)
	p.BombCount++
	return b, nil
}

// Detonate explodes every armed bomb of a detonator holder and consumes the grant.
func (w *World) Detonate(p *Player) error {
	if !p.Active() || !p.Alive() {
		return ErrNotAlive
	}
	if !p.Detonator {
		return ErrNoDetonator
	}
	for _, b := range append([]*Bomb(nil), p.Bombs...) {
		w.Explode(b)
	}
	p.Detonator = false
	return nil
}

// PlaceObstacle drops a solid block on the tile the player left last.
// The tile must be open, free of bombs and obstacles, and not under another player.
func (w *World) PlaceObstacle(p *Player) (*Obstacle, error) {
	if !p.Active() || !p.Alive() {
		return nil, ErrNotAlive
	}
	if p.ObstaclesPlaced >= p.ObstacleAllowance {
		return nil, ErrNoObstacles
	}
	t := p.PreviousTile()
	if w.grid.KindAt(t.Col, t.Row) != Open || w.bombAt(t) != nil || w.obstacleAt(t) >= 0 || w.TileOccupied(t, p) {
		return nil, ErrTileBlocked
	}

	o := &Obstacle{Tile: t, Owner: p, ignoreOwner: true}
	w.obstacles = append(w.obstacles, o)
	p.ObstaclesPlaced++
	return o, nil
}

// Explode sets off an armed bomb. Calling it on a bomb that already
// exploded does nothing and returns false.
func (w *World) Explode(b *Bomb) bool {
	if b.State != Armed {
		return false
	}
	b.State = Exploding
	b.chainTicks = 0
	b.fireTicks = 0
	b.Cells = w.blastCells(b)
	w.emit(BombExploded{Tile: b.Tile, Cells: b.Cells})

	w.applyBlast(b.Cells)
	w.chainTrigger(b)
	return true
}

// blastCells walks the blast outward and applies tile side effects. A ray
// stops before walls and the arena edge, and stops after the first box or
// obstacle it destroys.
func (w *World) blastCells(b *Bomb) []Tile {
	cells := []Tile{b.Tile}
	for _, dir := range Directions {
		for i := 1; i <= b.Radius; i++ {
			t := b.Tile.Step(dir, i)
			if w.grid.IsEdge(t.Col, t.Row) || w.grid.KindAt(t.Col, t.Row) == Wall {
				break
			}
			if w.grid.KindAt(t.Col, t.Row) == Destructible {
				w.grid.SetOpen(t.Col, t.Row)
				w.revealPowerUp(t)
				cells = append(cells, t)
				break
			}
			if idx := w.obstacleAt(t); idx >= 0 {
				w.obstacles = append(w.obstacles[:idx], w.obstacles[idx+1:]...)
				cells = append(cells, t)
				break
			}
			cells = append(cells, t)
		}
	}
	return cells
}

func (w *World) revealPowerUp(t Tile) {
	for _, pu := range w.powerUps {
		if pu.Tile == t && !pu.Visible {
			pu.Visible = true
			w.emit(PowerUpRevealed{Kind: pu.Kind, Tile: t})
		}
	}
}

// applyBlast takes one life from every entity touching a blast cell, at most
// once per tick and never from an invincible player.
func (w *World) applyBlast(cells []Tile) {
	ts := w.params.TileSize
	touches := func(e *Entity) bool {
		box := e.Bounds()
		for _, c := range cells {
			if box.Intersects(tileRect(c, ts)) {
				return true
			}
		}
		return false
	}

	for _, p := range w.players {
		if !p.Active() || !p.Alive() || p.HitThisTick || p.Invincible() {
			continue
		}
		if touches(&p.Entity) {
			p.Life--
			p.HitThisTick = true
			w.logger.Debug("player hit", "player", p.Slot, "life", p.Life)
		}
	}
	for _, m := range w.monsters {
		if !m.Alive() || m.HitThisTick {
			continue
		}
		if touches(&m.Entity) {
			m.Life--
			m.HitThisTick = true
		}
	}
}

// chainTrigger queues every other armed bomb inside the blast.
func (w *World) chainTrigger(src *Bomb) {
	for _, b := range w.bombs {
		if b == src || b.State != Armed || b.ChainScheduled() || !src.covers(b.Tile) {
			continue
		}
		delay := min(w.params.ChainDelayTicks, max(w.params.FuseTicks-b.Timer, 1))
		if delay <= 0 {
			w.Explode(b)
			continue
		}
		b.chainTicks = delay
		b.chainPass = w.bombPass
	}
}

// updateBombs advances fuses and fire, then drops expired bombs.
func (w *World) updateBombs() {
	w.releaseOwners()
	w.bombPass++

	for i := 0; i < len(w.bombs); i++ {
		b := w.bombs[i]
		switch b.State {
		case Armed:
			if b.chainTicks > 0 {
				// A chain queued earlier in this pass starts counting next tick.
				if b.chainPass == w.bombPass {
					continue
				}
				b.chainTicks--
				if b.chainTicks == 0 {
					w.Explode(b)
				}
				continue
			}
			if b.ownerHoldsFuse() {
				continue
			}
			b.Timer++
			if b.Timer >= w.params.FuseTicks {
				w.Explode(b)
			}
		case Exploding:
			b.fireTicks++
			if b.fireTicks >= w.params.FireTicks {
				w.expire(b)
			}
		}
	}

	kept := w.bombs[:0]
	for _, b := range w.bombs {
		if b.State != Expired {
			kept = append(kept, b)
		}
	}
	w.bombs = kept
}

// expire retires a bomb and returns the slot to its owner if the owner is
// still in play.
func (w *World) expire(b *Bomb) {
	b.State = Expired
	if b.Owner == nil {
		return
	}
	b.Owner.forgetBomb(b)
	if b.Owner.Active() && b.Owner.BombCount > 0 {
		b.Owner.BombCount--
	}
}
