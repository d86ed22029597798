package game

import (
	"errors"
	"testing"

	"github.com/geocoin/geocoin/internal/world"
)

type memStore struct {
	blob    string
	saved   bool
	saves   int
	failing bool
}

func (m *memStore) Load() (string, bool, error) {
	if m.failing {
		return "", false, errors.New("disk on fire")
	}
	return m.blob, m.saved, nil
}

func (m *memStore) Save(blob string) error {
	if m.failing {
		return errors.New("disk on fire")
	}
	m.blob, m.saved = blob, true
	m.saves++
	return nil
}

func (m *memStore) Clear() error {
	m.blob, m.saved = "", false
	return nil
}

type fakeTracker struct {
	watchers []func(world.LatLng)
	stopped  int
	err      error
}

func (f *fakeTracker) Watch(fn func(world.LatLng)) (func(), error) {
	if f.err != nil {
		return nil, f.err
	}
	f.watchers = append(f.watchers, fn)
	return func() { f.stopped++ }, nil
}

func (f *fakeTracker) emit(p world.LatLng) {
	for _, fn := range f.watchers {
		fn(p)
	}
}

// spawningCell finds a cell that holds a cache with at least minCoins coins.
func spawningCell(t *testing.T, r *Registry, b *world.Board, minCoins int) world.CellID {
	t.Helper()
	for row := 0; row < 200; row++ {
		for col := 0; col < 200; col++ {
			id := b.Intern(world.Cell{Row: row, Col: col})
			if r.ShouldSpawn(id) && r.InitialCount(id) >= minCoins {
				return id
			}
		}
	}
	t.Fatal("no spawning cell found")
	return world.NoCell
}

// barrenCell finds a cell that never spawns a cache.
func barrenCell(t *testing.T, r *Registry, b *world.Board) world.CellID {
	t.Helper()
	for row := 0; row < 200; row++ {
		id := b.Intern(world.Cell{Row: row, Col: -row})
		if !r.ShouldSpawn(id) {
			return id
		}
	}
	t.Fatal("no barren cell found")
	return world.NoCell
}
