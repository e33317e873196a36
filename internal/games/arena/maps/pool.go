package maps

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/vovakirdan/tui-bomber/internal/games/arena/sim"
)

// Pool is the set of maps a match draws from, one at random per round.
// It is safe for concurrent use so a watcher can swap its contents while a
// match is running.
type Pool struct {
	mu   sync.RWMutex
	maps []Map
}

// NewPool creates a pool. It fails when maps is empty.
func NewPool(maps []Map) (*Pool, error) {
	p := &Pool{}
	if err := p.Replace(maps); err != nil {
		return nil, err
	}
	return p, nil
}

// Load builds the pool of the built-in maps plus, if dir is set, the maps
// found there. A directory map replaces a built-in one with the same ID.
func Load(dir string, size Size) (*Pool, []error, error) {
	merged, rejected, err := collect(dir, size)
	if err != nil {
		return nil, rejected, err
	}
	p, err := NewPool(merged)
	return p, rejected, err
}

// Reload re-reads dir into the pool. If any file is rejected the pool keeps
// its current maps and the rejections are returned joined.
func (p *Pool) Reload(dir string, size Size) error {
	merged, rejected, err := collect(dir, size)
	if err != nil {
		return err
	}
	if len(rejected) > 0 {
		return errors.Join(rejected...)
	}
	return p.Replace(merged)
}

func collect(dir string, size Size) ([]Map, []error, error) {
	builtin, err := Builtin(size)
	if err != nil {
		return nil, nil, fmt.Errorf("maps: built-in maps: %w", err)
	}
	if dir == "" {
		return builtin, nil, nil
	}

	extra, err := NewLoader(dir, size).LoadAll()
	var rejected []error
	if err != nil {
		var joined interface{ Unwrap() []error }
		if !errors.As(err, &joined) {
			return nil, nil, err
		}
		rejected = joined.Unwrap()
	}

	byID := make(map[string]int, len(builtin))
	merged := append([]Map(nil), builtin...)
	for i, m := range merged {
		byID[m.ID] = i
	}
	for _, m := range extra {
		if i, ok := byID[m.ID]; ok {
			merged[i] = m
			continue
		}
		byID[m.ID] = len(merged)
		merged = append(merged, m)
	}
	return merged, rejected, nil
}

// Replace swaps the pool contents.
func (p *Pool) Replace(maps []Map) error {
	if len(maps) == 0 {
		return errors.New("maps: empty map pool")
	}
	p.mu.Lock()
	p.maps = append([]Map(nil), maps...)
	p.mu.Unlock()
	return nil
}

// Maps returns a copy of the pool contents.
func (p *Pool) Maps() []Map {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]Map(nil), p.maps...)
}

// Get returns the map with the given ID.
func (p *Pool) Get(id string) (Map, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, m := range p.maps {
		if m.ID == id {
			return m, nil
		}
	}
	return Map{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Next draws the layout of the next round.
func (p *Pool) Next(rng *rand.Rand) (sim.Layout, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.maps) == 0 {
		return sim.Layout{}, errors.New("maps: empty map pool")
	}
	return p.maps[rng.Intn(len(p.maps))].Layout, nil
}

// Fixed always hands out the same layout.
type Fixed struct {
	Map Map
}

// Next implements sim.MapSource.
func (f Fixed) Next(*rand.Rand) (sim.Layout, error) {
	return f.Map.Layout, nil
}
