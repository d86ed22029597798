package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/geocoin/geocoin/internal/world"
)

// snapshotVersion is written into every blob. Blobs without a version
// predate the field and read as version 1; newer versions are rejected.
const snapshotVersion = 1

// ErrMalformedSnapshot marks a saved blob that cannot be decoded.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// Snapshot is the persisted game state.
type Snapshot struct {
	Player world.LatLng
	Path   []world.LatLng
	Coins  []Coin
	Caches []CacheRecord
}

// CacheRecord is one saved cache: its cell and its memento.
type CacheRecord struct {
	Row   int
	Col   int
	Coins string
}

type snapshotWire struct {
	Version        int               `json:"version"`
	PlayerPosition *world.LatLng     `json:"playerPosition"`
	Path           [][2]float64      `json:"path"`
	CollectedCoins []Coin            `json:"collectedCoins"`
	Caches         []cacheRecordWire `json:"caches,omitempty"`
}

type cacheRecordWire struct {
	Row   int             `json:"row"`
	Col   int             `json:"col"`
	Coins json.RawMessage `json:"coins"`
}

// EncodeSnapshot serializes a snapshot to its blob form.
func EncodeSnapshot(s Snapshot) (string, error) {
	player := s.Player
	w := snapshotWire{
		Version:        snapshotVersion,
		PlayerPosition: &player,
		Path:           make([][2]float64, len(s.Path)),
		CollectedCoins: s.Coins,
	}
	if w.CollectedCoins == nil {
		w.CollectedCoins = []Coin{}
	}
	for i, p := range s.Path {
		w.Path[i] = [2]float64{p.Lat, p.Lng}
	}
	for _, rec := range s.Caches {
		coins := rec.Coins
		if strings.TrimSpace(coins) == "" {
			coins = "[]"
		}
		w.Caches = append(w.Caches, cacheRecordWire{
			Row:   rec.Row,
			Col:   rec.Col,
			Coins: json.RawMessage(coins),
		})
	}

	data, err := json.Marshal(w)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(data), nil
}

// DecodeSnapshot parses a blob written by EncodeSnapshot. Any structural
// problem is reported as ErrMalformedSnapshot.
func DecodeSnapshot(blob string) (Snapshot, error) {
	if strings.TrimSpace(blob) == "" {
		return Snapshot{}, fmt.Errorf("%w: empty blob", ErrMalformedSnapshot)
	}

	var w snapshotWire
	if err := json.Unmarshal([]byte(blob), &w); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if w.Version == 0 {
		w.Version = snapshotVersion
	}
	if w.Version != snapshotVersion {
		return Snapshot{}, fmt.Errorf("%w: unsupported version %d", ErrMalformedSnapshot, w.Version)
	}
	if w.PlayerPosition == nil {
		return Snapshot{}, fmt.Errorf("%w: missing player position", ErrMalformedSnapshot)
	}
	if !finite(w.PlayerPosition.Lat) || !finite(w.PlayerPosition.Lng) {
		return Snapshot{}, fmt.Errorf("%w: player position out of range", ErrMalformedSnapshot)
	}

	s := Snapshot{Player: *w.PlayerPosition}
	if len(w.CollectedCoins) > 0 {
		s.Coins = w.CollectedCoins
	}
	for _, p := range w.Path {
		s.Path = append(s.Path, world.LatLng{Lat: p[0], Lng: p[1]})
	}
	for _, rec := range w.Caches {
		var coins []Coin
		if err := json.Unmarshal(rec.Coins, &coins); err != nil {
			return Snapshot{}, fmt.Errorf("%w: cache %d:%d: %v", ErrMalformedSnapshot, rec.Row, rec.Col, err)
		}
		s.Caches = append(s.Caches, CacheRecord{Row: rec.Row, Col: rec.Col, Coins: string(rec.Coins)})
	}
	return s, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
