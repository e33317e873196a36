package sim

// The collision queries below are pure reads of the world. Each Resolve call
// only ever raises CollisionOn; the caller resets it before a movement
// attempt. Every probe looks ahead by the entity's current speed, so a
// boosted or re-rolled speed changes how far ahead it sees.

// ResolveTileCollision probes the two tiles under the leading edge of the
// entity's hitbox one step ahead. Ghosts pass through solid tiles except
// those on the arena edge. Heavy bodies skip tiles and are held back only by
// bombs and the arena bounds.
func (w *World) ResolveTileCollision(e *Entity) {
	if e.Body == BodyHeavy {
		w.resolveHeavyCollision(e)
		return
	}

	box := e.Bounds()
	ts := w.params.TileSize
	left := floorDiv(box.X, ts)
	right := floorDiv(box.Right()-1, ts)
	top := floorDiv(box.Y, ts)
	bottom := floorDiv(box.Bottom()-1, ts)

	var probes [2]Tile
	switch e.Dir {
	case DirUp:
		row := floorDiv(box.Y-e.Speed, ts)
		probes = [2]Tile{{left, row}, {right, row}}
	case DirDown:
		row := floorDiv(box.Bottom()-1+e.Speed, ts)
		probes = [2]Tile{{left, row}, {right, row}}
	case DirLeft:
		col := floorDiv(box.X-e.Speed, ts)
		probes = [2]Tile{{col, top}, {col, bottom}}
	case DirRight:
		col := floorDiv(box.Right()-1+e.Speed, ts)
		probes = [2]Tile{{col, top}, {col, bottom}}
	default:
		return
	}

	for _, t := range probes {
		if w.tileBlocks(e, t) {
			e.CollisionOn = true
		}
	}
}

// tileBlocks applies the ghost exception to a single probed tile.
func (w *World) tileBlocks(e *Entity, t Tile) bool {
	if !w.grid.IsSolid(t.Col, t.Row) {
		return false
	}
	if e.Ghost && w.grid.InBounds(t.Col, t.Row) && !w.grid.IsEdge(t.Col, t.Row) {
		return false
	}
	return true
}

// resolveHeavyCollision stops heavy bodies at bombs and at the arena bounds.
func (w *World) resolveHeavyCollision(e *Entity) {
	next := e.Projected(e.Dir)
	arena := w.arenaRect()
	if next.X < arena.X || next.Y < arena.Y || next.Right() > arena.Right() || next.Bottom() > arena.Bottom() {
		e.CollisionOn = true
		return
	}
	if w.BombOnPath(e, e.Dir) {
		e.CollisionOn = true
	}
}

// ResolveEntityCollision tests the projected hitbox against the current
// hitboxes of the candidates. Candidates that already overlap the entity are
// skipped so that two stacked entities can walk apart. Returns the index of
// the first hit or NoCollision.
func (w *World) ResolveEntityCollision(e *Entity, candidates []*Entity) int {
	next := e.Projected(e.Dir)
	cur := e.Bounds()
	for i, c := range candidates {
		if c == nil || c == e || !c.Alive() {
			continue
		}
		other := c.Bounds()
		if cur.Intersects(other) {
			continue
		}
		if next.Intersects(other) {
			e.CollisionOn = true
			return i
		}
	}
	return NoCollision
}

// ResolveObjectCollision tests the projected hitbox against player-placed
// obstacles. An obstacle lets its owner through until the owner has stepped
// off it once; ghosts pass all obstacles. Only player queries get the index
// back; monsters just have CollisionOn raised.
func (w *World) ResolveObjectCollision(e *Entity, owner *Player, isPlayer bool) int {
	if e.Ghost {
		return NoCollision
	}
	next := e.Projected(e.Dir)
	for i, o := range w.obstacles {
		if o.ignoreOwner && owner != nil && o.Owner == owner {
			continue
		}
		if next.Intersects(tileRect(o.Tile, w.params.TileSize)) {
			e.CollisionOn = true
			if isPlayer {
				return i
			}
			return NoCollision
		}
	}
	return NoCollision
}

// ResolveBombCollision tests the projected hitbox against bombs on the
// field. A fresh bomb is not solid for its owner until the owner has left its
// tile; ghosts pass all bombs.
func (w *World) ResolveBombCollision(e *Entity, owner *Player) int {
	if e.Ghost {
		return NoCollision
	}
	next := e.Projected(e.Dir)
	for i, b := range w.bombs {
		if b.State == Expired {
			continue
		}
		if b.ignoreOwner && owner != nil && b.Owner == owner {
			continue
		}
		if next.Intersects(tileRect(b.Tile, w.params.TileSize)) {
			e.CollisionOn = true
			return i
		}
	}
	return NoCollision
}

// BombOnPath reports whether one step in dir would touch a bomb.
func (w *World) BombOnPath(e *Entity, dir Direction) bool {
	next := e.Projected(dir)
	for _, b := range w.bombs {
		if b.State != Expired && next.Intersects(tileRect(b.Tile, w.params.TileSize)) {
			return true
		}
	}
	return false
}

// CanStep is a tile-only feasibility probe: after one step in dir the whole
// hitbox must stay inside the arena with all four corners on open tiles.
func (w *World) CanStep(e *Entity, dir Direction) bool {
	dx, dy := dir.Delta()
	next := e.Bounds().Offset(dx*e.Speed, dy*e.Speed)
	if !w.arenaRect().Contains(next.X, next.Y) || !w.arenaRect().Contains(next.Right()-1, next.Bottom()-1) {
		return false
	}

	ts := w.params.TileSize
	corners := [4][2]int{
		{next.X, next.Y},
		{next.Right() - 1, next.Y},
		{next.X, next.Bottom() - 1},
		{next.Right() - 1, next.Bottom() - 1},
	}
	for _, c := range corners {
		if w.grid.KindAt(floorDiv(c[0], ts), floorDiv(c[1], ts)) != Open {
			return false
		}
	}
	return true
}

// releaseOwners makes bombs and obstacles solid for their owners once the
// owner no longer overlaps them.
func (w *World) releaseOwners() {
	ts := w.params.TileSize
	for _, b := range w.bombs {
		if b.ignoreOwner && (!b.Owner.Active() || !b.Owner.Bounds().Intersects(tileRect(b.Tile, ts))) {
			b.ignoreOwner = false
		}
	}
	for _, o := range w.obstacles {
		if o.ignoreOwner && (!o.Owner.Active() || !o.Owner.Bounds().Intersects(tileRect(o.Tile, ts))) {
			o.ignoreOwner = false
		}
	}
}
