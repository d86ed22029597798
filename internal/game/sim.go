package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/geocoin/geocoin/internal/world"
	"github.com/mlange-42/ark/ecs"
	"github.com/zyedidia/generic/mapset"
)

// Rules are the fixed parameters of a world.
type Rules struct {
	TileSize        float64      // tile width in degrees
	Radius          int          // viewport half-width in tiles
	SpawnChance     float64      // probability a cell holds a cache
	MaxInitialCoins int          // initial coin count is in [0, MaxInitialCoins)
	Home            world.LatLng // start and reset position
}

// DefaultRules returns the stock world: 1e-4 degree tiles around the Oakes
// College classroom.
func DefaultRules() Rules {
	return Rules{
		TileSize:        1e-4,
		Radius:          8,
		SpawnChance:     0.1,
		MaxInitialCoins: 100,
		Home:            world.LatLng{Lat: 36.98949379578401, Lng: -122.06277128548504},
	}
}

// Store persists the serialized game state as an opaque blob.
type Store interface {
	// Load returns the saved blob; ok is false when nothing was saved.
	Load() (blob string, ok bool, err error)
	Save(blob string) error
	Clear() error
}

// Tracker delivers device positions until the returned stop func is called.
type Tracker interface {
	Watch(fn func(world.LatLng)) (stop func(), err error)
}

// Position is the player's location: an anchor point plus whole-tile steps.
// Keeping steps as integers makes a move and its reverse cancel exactly.
type Position struct {
	Anchor world.LatLng
	Rows   int
	Cols   int
}

// PlayerControlled tags the player entity.
type PlayerControlled struct{}

var errNoTracker = errors.New("start tracking: no tracker")

// fix is a position delivered by the tracker, stamped with the tracking
// generation that was live when it was requested.
type fix struct {
	gen uint64
	at  world.LatLng
}

// Sim is the game controller. It owns the board, the cache registry, and
// all player state, and is driven one handler at a time by the frontend.
type Sim struct {
	Rules     Rules
	Board     *world.Board
	Caches    *Registry
	Inventory Inventory
	Path      []world.LatLng
	Log       *MessageLog

	ECS     *ecs.World
	player  ecs.Entity
	posMap  *ecs.Map[Position]
	store   Store
	tracker Tracker
	visible []world.CellID

	tracking  bool
	trackGen  uint64
	stopTrack func()
	fixes     chan fix
}

// NewSim creates a fresh game at the home position. Call Load to resume a
// saved game.
func NewSim(rules Rules, store Store, tracker Tracker) *Sim {
	w := ecs.NewWorld(16)
	posMap := ecs.NewMap[Position](w)
	player := ecs.NewMap2[Position, PlayerControlled](w).NewEntity(
		&Position{Anchor: rules.Home},
		&PlayerControlled{},
	)

	board := world.NewBoard(rules.TileSize)
	s := &Sim{
		Rules:   rules,
		Board:   board,
		Caches:  NewRegistry(board, rules.SpawnChance, rules.MaxInitialCoins),
		Log:     NewMessageLog(50, 55),
		ECS:     w,
		player:  player,
		posMap:  posMap,
		store:   store,
		tracker: tracker,
		fixes:   make(chan fix, 16),
	}
	s.Refresh()
	return s
}

// PlayerPos returns the player's current location.
func (s *Sim) PlayerPos() world.LatLng {
	pos := s.posMap.Get(s.player)
	return pos.Anchor.Add(float64(pos.Rows)*s.Rules.TileSize, float64(pos.Cols)*s.Rules.TileSize)
}

// PlayerCell returns the cell under the player.
func (s *Sim) PlayerCell() world.CellID {
	return s.Board.CellAt(s.PlayerPos())
}

// Visible returns the spawned cells in the current viewport, row-major.
func (s *Sim) Visible() []world.CellID {
	return s.visible
}

// Move steps the player one tile in d, then refreshes and saves.
func (s *Sim) Move(d Direction) {
	dRow, dCol := d.Step()
	pos := s.posMap.Get(s.player)
	pos.Rows += dRow
	pos.Cols += dCol
	s.moved()
}

// MoveTo places the player at p, then refreshes and saves.
func (s *Sim) MoveTo(p world.LatLng) {
	s.placeAt(p)
	s.moved()
}

func (s *Sim) placeAt(p world.LatLng) {
	pos := s.posMap.Get(s.player)
	*pos = Position{Anchor: p}
}

func (s *Sim) moved() {
	s.Path = append(s.Path, s.PlayerPos())
	s.Refresh()
	s.Save()
}

// Refresh rebuilds the viewport around the player: caches entering view are
// materialized, caches leaving view are released.
func (s *Sim) Refresh() {
	cells := s.Board.NearbyCells(s.PlayerPos(), s.Rules.Radius)
	inView := mapset.New[world.CellID]()
	for _, id := range cells {
		inView.Put(id)
	}
	for _, id := range s.Caches.LiveCells() {
		if !inView.Has(id) {
			s.Caches.Release(id)
		}
	}

	visible := make([]world.CellID, 0, len(s.visible))
	for _, id := range cells {
		if !s.Caches.ShouldSpawn(id) {
			continue
		}
		if _, err := s.Caches.Materialize(id); err != nil {
			log.Printf("game: %v", err)
			continue
		}
		visible = append(visible, id)
	}
	s.visible = visible
}

// Collect takes the front coin of a visible cache into the inventory.
func (s *Sim) Collect(cell world.CellID) bool {
	cache, ok := s.Caches.Live(cell)
	if !ok || !s.Inventory.Collect(cache) {
		return false
	}
	coin, _ := s.Inventory.Last()
	s.afterTransfer(cell, fmt.Sprintf("Collected coin %s.", coin), MsgDiscovery)
	return true
}

// Deposit puts the most recent inventory coin at the front of a visible cache.
func (s *Sim) Deposit(cell world.CellID) bool {
	cache, ok := s.Caches.Live(cell)
	if !ok || !s.Inventory.Deposit(cache) {
		return false
	}
	s.afterTransfer(cell, fmt.Sprintf("Deposited coin %s at %v.", cache.Coins[0], s.Board.MustCell(cell)), MsgInfo)
	return true
}

func (s *Sim) afterTransfer(cell world.CellID, text string, priority MsgPriority) {
	if err := s.Caches.Commit(cell); err != nil {
		log.Printf("game: %v", err)
		s.Log.Add("Cache state could not be recorded.", MsgCritical)
	}
	s.Log.Add(text, priority)
	s.Save()
}

// CacheView is what the frontend needs to draw one cache.
type CacheView struct {
	ID     world.CellID
	Cell   world.Cell
	Bounds world.Bounds
	Coins  []Coin
}

// CacheView returns the state of a visible cache.
func (s *Sim) CacheView(cell world.CellID) (CacheView, bool) {
	cache, ok := s.Caches.Live(cell)
	if !ok {
		return CacheView{}, false
	}
	return CacheView{
		ID:     cell,
		Cell:   s.Board.MustCell(cell),
		Bounds: s.Board.Bounds(cell),
		Coins:  cache.Coins,
	}, true
}

// Reset clears all player state and the saved blob, returning the player
// home. Saved caches are kept. Callers confirm with the user first.
func (s *Sim) Reset() {
	s.SetTracking(false)
	if s.store != nil {
		if err := s.store.Clear(); err != nil {
			log.Printf("game: clear save: %v", err)
		}
	}
	s.placeAt(s.Rules.Home)
	s.Path = nil
	s.Inventory.Clear()
	s.Refresh()
	s.Log.Add("Game reset. Back at home.", MsgWarning)
	s.Save()
}

// Snapshot captures the persisted state.
func (s *Sim) Snapshot() Snapshot {
	return Snapshot{
		Player: s.PlayerPos(),
		Path:   append([]world.LatLng(nil), s.Path...),
		Coins:  append([]Coin(nil), s.Inventory.Coins...),
		Caches: s.Caches.Mementos(),
	}
}

// Save writes the current state to the store. Failures are logged and
// reported; play continues.
func (s *Sim) Save() error {
	if s.store == nil {
		return nil
	}
	blob, err := EncodeSnapshot(s.Snapshot())
	if err == nil {
		err = s.store.Save(blob)
	}
	if err != nil {
		log.Printf("game: save: %v", err)
		s.Log.Add("Could not save progress.", MsgCritical)
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// Load restores the saved game. A missing save starts fresh; an unreadable
// or malformed one is logged and also starts fresh.
func (s *Sim) Load() {
	if s.store == nil {
		return
	}
	blob, ok, err := s.store.Load()
	if err != nil {
		log.Printf("game: load: %v", err)
		s.Log.Add("Saved game unavailable. Starting fresh.", MsgWarning)
		s.startFresh()
		return
	}
	if !ok {
		s.startFresh()
		s.Log.Add("New game. Find caches and collect coins.", MsgInfo)
		return
	}
	snap, err := DecodeSnapshot(blob)
	if err != nil {
		log.Printf("game: discarding saved game: %v", err)
		s.Log.Add("Saved game was corrupt. Starting fresh.", MsgWarning)
		s.startFresh()
		return
	}
	s.apply(snap)
	s.Log.Add(fmt.Sprintf("Welcome back. Holding %d coins.", s.Inventory.Len()), MsgInfo)
}

func (s *Sim) startFresh() {
	s.placeAt(s.Rules.Home)
	s.Path = nil
	s.Inventory.Clear()
	s.Refresh()
}

func (s *Sim) apply(snap Snapshot) {
	s.Caches.Restore(snap.Caches)
	s.placeAt(snap.Player)
	s.Path = append([]world.LatLng(nil), snap.Path...)
	s.Inventory = NewInventory(snap.Coins...)
	s.Refresh()
}

// Tracking reports whether geolocation tracking is on.
func (s *Sim) Tracking() bool { return s.tracking }

// SetTracking turns geolocation tracking on or off. Once off, positions
// from the previous session are ignored even if they are still in flight.
func (s *Sim) SetTracking(on bool) error {
	if on == s.tracking {
		return nil
	}
	s.trackGen++
	if !on {
		s.tracking = false
		if s.stopTrack != nil {
			s.stopTrack()
			s.stopTrack = nil
		}
		s.Log.Add("Geolocation off.", MsgInfo)
		return nil
	}

	if s.tracker == nil {
		s.Log.Add("Geolocation is not supported here.", MsgWarning)
		return errNoTracker
	}
	gen := s.trackGen
	fixes := s.fixes
	stop, err := s.tracker.Watch(func(p world.LatLng) {
		select {
		case fixes <- fix{gen: gen, at: p}:
		default:
		}
	})
	if err != nil {
		log.Printf("game: start tracking: %v", err)
		s.Log.Add("Geolocation is not supported here.", MsgWarning)
		return fmt.Errorf("start tracking: %w", err)
	}
	s.tracking = true
	s.stopTrack = stop
	s.Log.Add("Geolocation on. Following your device.", MsgInfo)
	return nil
}

// Pump applies queued geolocation fixes. The frontend calls it once per
// frame so fixes are handled between other input, never during it.
func (s *Sim) Pump() {
	for {
		select {
		case f := <-s.fixes:
			if !s.tracking || f.gen != s.trackGen {
				continue
			}
			s.MoveTo(f.at)
		default:
			return
		}
	}
}
