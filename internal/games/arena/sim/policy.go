package sim

import (
	"math"
	"math/rand"
	"sort"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// Policy decides where a monster heads on this tick. The bool reports
// whether the monster tries to move at all.
type Policy interface {
	ChooseDirection(m *Monster, w WorldView) (Direction, bool)
}

// wanderer re-rolls a weighted direction and a speed at random intervals.
type wanderer struct {
	minTicks    int
	jitterTicks int
	weights     [4]int
	minSpeed    int
	maxSpeed    int
}

func (p wanderer) ChooseDirection(m *Monster, w WorldView) (Direction, bool) {
	rng := w.Rand()
	if m.nextDecision == 0 {
		m.nextDecision = p.minTicks + intn(rng, p.jitterTicks)
	}
	m.counter++
	if m.counter < m.nextDecision {
		return m.Dir, true
	}

	m.counter = 0
	m.nextDecision = p.minTicks + intn(rng, p.jitterTicks)
	if proposed := weightedDirection(rng, p.weights); w.CanStep(&m.Entity, proposed) {
		m.Dir = proposed
	}
	m.Speed = p.minSpeed + intn(rng, p.maxSpeed-p.minSpeed+1)
	return m.Dir, true
}

// weightedDirection draws up/down/left/right with the given relative weights.
func weightedDirection(rng *rand.Rand, weights [4]int) Direction {
	total := 0
	for _, wt := range weights {
		total += max(wt, 0)
	}
	if total == 0 {
		return Directions[rng.Intn(len(Directions))]
	}
	roll := rng.Intn(total)
	for i, wt := range weights {
		roll -= max(wt, 0)
		if roll < 0 {
			return Directions[i]
		}
	}
	return Directions[len(Directions)-1]
}

// edgeAvoider walks straight until the way ahead is useless or unsafe.
type edgeAvoider struct{}

func (edgeAvoider) ChooseDirection(m *Monster, w WorldView) (Direction, bool) {
	if !noOpenAhead(m, w, m.Dir) && !pathBlocked(m, w, m.Dir) && !stepsOntoEdge(m, w, m.Dir) {
		return m.Dir, true
	}

	rng := w.Rand()
	order := rng.Perm(len(Directions))
	safe := make([]Direction, 0, len(Directions))
	for _, i := range order {
		d := Directions[i]
		if noOpenAhead(m, w, d) || pathBlocked(m, w, d) || stepsOntoEdge(m, w, d) {
			continue
		}
		safe = append(safe, d)
	}
	if len(safe) > 0 {
		return safe[rng.Intn(len(safe))], true
	}
	return Directions[order[0]], true
}

// noOpenAhead scans from the tile beyond the monster to the grid border and
// reports whether no open tile lies in that direction.
func noOpenAhead(m *Monster, w WorldView, d Direction) bool {
	g := w.Grid()
	t := m.TileAt(w.TileSize()).Step(d, 1)
	for g.InBounds(t.Col, t.Row) {
		if g.KindAt(t.Col, t.Row) == Open {
			return false
		}
		t = t.Step(d, 1)
	}
	return true
}

// pathBlocked reports a bomb in the way or a step past the arena bounds.
func pathBlocked(m *Monster, w WorldView, d Direction) bool {
	if w.BombOnPath(&m.Entity, d) {
		return true
	}
	ts := w.TileSize()
	next := m.Projected(d)
	return next.X < 0 || next.Y < 0 || next.Right() > w.Grid().Cols()*ts || next.Bottom() > w.Grid().Rows()*ts
}

// stepsOntoEdge reports whether one step would put the hitbox on the
// outer ring of the arena.
func stepsOntoEdge(m *Monster, w WorldView, d Direction) bool {
	ts := w.TileSize()
	g := w.Grid()
	next := m.Projected(d)
	left := floorDiv(next.X, ts)
	right := floorDiv(next.Right()-1, ts)
	top := floorDiv(next.Y, ts)
	bottom := floorDiv(next.Bottom()-1, ts)
	return left < 1 || top < 1 || right >= g.Cols()-1 || bottom >= g.Rows()-1
}

// ambushBand is measured in tiles between the monster and its target:
// lateral offset below near, longitudinal offset strictly between min and far.
type ambushBand struct {
	near, min, far int
}

func newAmbushBand(mp MonsterParams) ambushBand {
	return ambushBand{near: mp.AmbushNearTiles, min: mp.AmbushMinimumTiles, far: mp.AmbushFarTiles}
}

func (b ambushBand) holds(dx, dy, tileSize int) bool {
	dx, dy = core.Abs(dx), core.Abs(dy)
	return dx < b.near*tileSize && dy > b.min*tileSize && dy < b.far*tileSize
}

// pursuer closes in on the nearest player once per decision interval.
// A positive errorRate turns it into the faulty variant.
type pursuer struct {
	interval  int
	ambush    ambushBand
	errorRate float64
}

func (p pursuer) ChooseDirection(m *Monster, w WorldView) (Direction, bool) {
	if m.hold > 0 {
		m.hold--
		return m.Dir, false
	}
	if m.counter > 0 {
		m.counter--
		return m.Dir, w.CanStep(&m.Entity, m.Dir)
	}
	m.counter = max(p.interval-1, 0)

	mx, my := m.Center()
	target, ok := w.NearestPlayer(mx, my)
	if !ok {
		return m.Dir, w.CanStep(&m.Entity, m.Dir)
	}
	tx, ty := target.Center()
	if p.ambush.holds(tx-mx, ty-my, w.TileSize()) {
		m.hold = max(p.interval-1, 0)
		m.counter = 0
		return m.Dir, false
	}

	rng := w.Rand()
	if p.errorRate > 0 && rng.Float64() < p.errorRate {
		if d, ok := randomFeasible(m, w); ok {
			return d, true
		}
		return m.Dir, false
	}

	for _, d := range rankTowards(m, tx, ty) {
		if w.CanStep(&m.Entity, d) {
			return d, true
		}
	}
	if d, ok := randomFeasible(m, w); ok {
		return d, true
	}
	return m.Dir, false
}

// rankTowards orders the directions by the distance to (tx, ty) left after
// one step, closest first.
func rankTowards(m *Monster, tx, ty int) []Direction {
	mx, my := m.Center()
	dist := func(d Direction) float64 {
		dx, dy := d.Delta()
		return math.Hypot(float64(mx+dx*m.Speed-tx), float64(my+dy*m.Speed-ty))
	}
	ranked := append([]Direction(nil), Directions[:]...)
	sort.SliceStable(ranked, func(i, j int) bool { return dist(ranked[i]) < dist(ranked[j]) })
	return ranked
}

// randomFeasible picks uniformly among the directions CanStep allows.
func randomFeasible(m *Monster, w WorldView) (Direction, bool) {
	allowed := make([]Direction, 0, len(Directions))
	for _, d := range Directions {
		if w.CanStep(&m.Entity, d) {
			allowed = append(allowed, d)
		}
	}
	if len(allowed) == 0 {
		return m.Dir, false
	}
	return allowed[w.Rand().Intn(len(allowed))], true
}

func intn(rng *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return rng.Intn(n)
}
