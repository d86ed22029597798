package game

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/geocoin/geocoin/internal/world"
)

// Luck tags. Changing either reshuffles the world.
const (
	spawnTag        = "spawn"
	initialCountTag = "initial-count"
)

// ErrNoCache is returned when materializing a cell that never spawns a cache.
var ErrNoCache = errors.New("cell has no cache")

// Registry decides which cells hold caches and tracks each cache's state.
//
// A cell's cache is created the first time the cell is materialized and its
// memento is kept in the table from then on. Live caches exist only while
// their cell is in view; Release drops the live copy and the table becomes
// the source of truth until the next Materialize.
type Registry struct {
	board       *world.Board
	spawnChance float64
	maxCoins    int

	table map[world.CellID]string
	live  map[world.CellID]*Cache
}

// NewRegistry creates a registry over board. spawnChance is the probability a
// cell holds a cache; maxCoins bounds the initial coin count (exclusive).
func NewRegistry(board *world.Board, spawnChance float64, maxCoins int) *Registry {
	return &Registry{
		board:       board,
		spawnChance: spawnChance,
		maxCoins:    maxCoins,
		table:       make(map[world.CellID]string),
		live:        make(map[world.CellID]*Cache),
	}
}

// ShouldSpawn reports whether the cell holds a cache. It depends only on
// the cell's coordinates.
func (r *Registry) ShouldSpawn(id world.CellID) bool {
	c := r.board.MustCell(id)
	return world.Luck(c.Row, c.Col, spawnTag) < r.spawnChance
}

// InitialCount returns how many coins the cell's cache starts with.
func (r *Registry) InitialCount(id world.CellID) int {
	c := r.board.MustCell(id)
	return int(math.Floor(world.Luck(c.Row, c.Col, initialCountTag) * float64(r.maxCoins)))
}

// Materialize returns the live cache for the cell, restoring it from its
// memento or minting its initial coins on first visit.
func (r *Registry) Materialize(id world.CellID) (*Cache, error) {
	if cache, ok := r.live[id]; ok {
		return cache, nil
	}
	if !r.ShouldSpawn(id) {
		return nil, fmt.Errorf("materialize %v: %w", r.board.MustCell(id), ErrNoCache)
	}

	if memento, ok := r.table[id]; ok {
		cache, err := restoreCache(id, memento)
		if err != nil {
			return nil, fmt.Errorf("materialize %v: %w", r.board.MustCell(id), err)
		}
		r.live[id] = cache
		return cache, nil
	}

	cache := &Cache{Cell: id, Coins: mintCoins(r.board.MustCell(id), r.InitialCount(id))}
	r.live[id] = cache
	if err := r.Commit(id); err != nil {
		return nil, err
	}
	return cache, nil
}

// Commit writes the live cache's memento into the table.
func (r *Registry) Commit(id world.CellID) error {
	cache, ok := r.live[id]
	if !ok {
		return fmt.Errorf("commit %d: cache not live", id)
	}
	memento, err := cache.memento()
	if err != nil {
		return fmt.Errorf("commit %v: %w", r.board.MustCell(id), err)
	}
	r.table[id] = memento
	return nil
}

// Release drops the live cache without touching the table.
func (r *Registry) Release(id world.CellID) {
	delete(r.live, id)
}

// ReleaseAll drops every live cache.
func (r *Registry) ReleaseAll() {
	clear(r.live)
}

// Live returns the cache for a cell currently in view.
func (r *Registry) Live(id world.CellID) (*Cache, bool) {
	cache, ok := r.live[id]
	return cache, ok
}

// LiveCells returns the handles of all live caches in ascending order.
func (r *Registry) LiveCells() []world.CellID {
	ids := make([]world.CellID, 0, len(r.live))
	for id := range r.live {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Known reports whether the cell has a saved memento.
func (r *Registry) Known(id world.CellID) bool {
	_, ok := r.table[id]
	return ok
}

// Mementos returns the saved table keyed by cell coordinates, sorted
// row-major for stable output.
func (r *Registry) Mementos() []CacheRecord {
	records := make([]CacheRecord, 0, len(r.table))
	for id, memento := range r.table {
		c := r.board.MustCell(id)
		records = append(records, CacheRecord{Row: c.Row, Col: c.Col, Coins: memento})
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Row != records[j].Row {
			return records[i].Row < records[j].Row
		}
		return records[i].Col < records[j].Col
	})
	return records
}

// Restore loads saved mementos into the table. Live caches for restored
// cells are dropped so the next Materialize reads the restored state.
func (r *Registry) Restore(records []CacheRecord) {
	for _, rec := range records {
		id := r.board.Intern(world.Cell{Row: rec.Row, Col: rec.Col})
		r.table[id] = rec.Coins
		delete(r.live, id)
	}
}
