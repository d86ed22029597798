package world

import (
	"fmt"
	"math"

	"github.com/zyedidia/generic/mapset"
)

// Cell is the discrete grid coordinate of a tile.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string {
	return fmt.Sprintf("%d:%d", c.Row, c.Col)
}

// CellID is the canonical handle for an interned Cell. Two lookups that land
// on the same (row, col) always return the same CellID.
type CellID uint32

// NoCell is the zero handle; it never names an interned cell.
const NoCell CellID = 0

// snapEpsilon is how close (in tile units) a quotient must be to an integer
// to be treated as exactly on that grid line.
const snapEpsilon = 1e-9

// Board maps geographic points onto a square grid of tiles and interns the
// resulting cells. The board exclusively owns the interning table.
type Board struct {
	tileSize float64
	cells    []Cell // indexed by CellID; slot 0 is reserved for NoCell
	index    map[Cell]CellID
}

// NewBoard creates a board whose tiles are tileSize degrees on a side.
func NewBoard(tileSize float64) *Board {
	if tileSize <= 0 || math.IsNaN(tileSize) || math.IsInf(tileSize, 0) {
		panic(fmt.Sprintf("world: invalid tile size %v", tileSize))
	}
	return &Board{
		tileSize: tileSize,
		cells:    make([]Cell, 1, 256),
		index:    make(map[Cell]CellID, 256),
	}
}

// TileSize returns the tile width in degrees.
func (b *Board) TileSize() float64 { return b.tileSize }

// Len returns the number of interned cells.
func (b *Board) Len() int { return len(b.cells) - 1 }

// CellAt returns the canonical cell containing p.
func (b *Board) CellAt(p LatLng) CellID {
	return b.Intern(Cell{Row: b.tileIndex(p.Lat), Col: b.tileIndex(p.Lng)})
}

// Intern returns the handle for c, allocating one on first use.
func (b *Board) Intern(c Cell) CellID {
	if id, ok := b.index[c]; ok {
		return id
	}
	id := CellID(len(b.cells))
	b.cells = append(b.cells, c)
	b.index[c] = id
	return id
}

// Lookup returns the handle for c without interning it.
func (b *Board) Lookup(c Cell) (CellID, bool) {
	id, ok := b.index[c]
	return id, ok
}

// Cell returns the coordinates behind a handle. Unknown handles yield the
// zero cell and false.
func (b *Board) Cell(id CellID) (Cell, bool) {
	if id == NoCell || int(id) >= len(b.cells) {
		return Cell{}, false
	}
	return b.cells[id], true
}

// MustCell is Cell for handles the caller obtained from this board.
func (b *Board) MustCell(id CellID) Cell {
	c, ok := b.Cell(id)
	if !ok {
		panic(fmt.Sprintf("world: unknown cell handle %d", id))
	}
	return c
}

// Bounds returns the rectangle covered by the cell.
func (b *Board) Bounds(id CellID) Bounds {
	c := b.MustCell(id)
	return b.BoundsOf(c)
}

// BoundsOf returns the rectangle covered by raw coordinates.
func (b *Board) BoundsOf(c Cell) Bounds {
	return Bounds{
		South: float64(c.Row) * b.tileSize,
		West:  float64(c.Col) * b.tileSize,
		North: float64(c.Row+1) * b.tileSize,
		East:  float64(c.Col+1) * b.tileSize,
	}
}

// NearbyCells returns every cell within radius tiles of p, in row-major
// order starting from the south-west corner. Sample points are taken at
// whole-tile offsets from p and mapped through CellAt; duplicates caused by
// boundary rounding are dropped.
func (b *Board) NearbyCells(p LatLng, radius int) []CellID {
	if radius < 0 {
		radius = 0
	}
	side := 2*radius + 1
	seen := mapset.New[CellID]()
	out := make([]CellID, 0, side*side)
	for i := -radius; i <= radius; i++ {
		for j := -radius; j <= radius; j++ {
			id := b.CellAt(p.Add(float64(i)*b.tileSize, float64(j)*b.tileSize))
			if seen.Has(id) {
				continue
			}
			seen.Put(id)
			out = append(out, id)
		}
	}
	return out
}

// tileIndex floor-divides a coordinate by the tile size. Quotients within
// snapEpsilon of an integer snap to it first, so a point sitting on a grid
// line belongs to the tile whose lower edge is that line even when the
// division lands a hair below.
func (b *Board) tileIndex(v float64) int {
	q := v / b.tileSize
	if r := math.Round(q); math.Abs(q-r) < snapEpsilon {
		q = r
	}
	return int(math.Floor(q))
}
