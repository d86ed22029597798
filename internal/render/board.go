package render

import (
	"github.com/geocoin/geocoin/internal/game"
	"github.com/geocoin/geocoin/internal/world"
)

// Marker is a cache drawn on the map.
type Marker struct {
	ID    world.CellID
	Cell  world.Cell
	Coins int
}

// Scene is everything the map panel shows for one frame, in board cells.
type Scene struct {
	Player   world.Cell
	Caches   []Marker
	Trail    []world.Cell
	Selected world.CellID
}

// BuildScene reads the visible state out of the sim. selected may be
// world.NoCell.
func BuildScene(s *game.Sim, selected world.CellID) Scene {
	sc := Scene{
		Player:   s.Board.MustCell(s.PlayerCell()),
		Selected: selected,
	}
	for _, id := range s.Visible() {
		view, ok := s.CacheView(id)
		if !ok {
			continue
		}
		sc.Caches = append(sc.Caches, Marker{ID: id, Cell: view.Cell, Coins: len(view.Coins)})
	}
	var last world.Cell
	for i, p := range s.Path {
		c := s.Board.MustCell(s.Board.CellAt(p))
		if i > 0 && c == last {
			continue
		}
		sc.Trail = append(sc.Trail, c)
		last = c
	}
	return sc
}

// MapView places a square window of board cells, centered on the player,
// at (X, Y) in the cell buffer. North is up.
type MapView struct {
	X, Y   int
	Radius int
}

// Size is the side length of the window in buffer cells.
func (v MapView) Size() int { return 2*v.Radius + 1 }

// ToScreen returns the buffer position of board cell c when the window is
// centered on center.
func (v MapView) ToScreen(center, c world.Cell) (x, y int, ok bool) {
	dr, dc := c.Row-center.Row, c.Col-center.Col
	if dr < -v.Radius || dr > v.Radius || dc < -v.Radius || dc > v.Radius {
		return 0, 0, false
	}
	return v.X + v.Radius + dc, v.Y + v.Radius - dr, true
}

// FromScreen is the inverse of ToScreen.
func (v MapView) FromScreen(center world.Cell, x, y int) (world.Cell, bool) {
	dc, dr := x-v.X-v.Radius, v.Y+v.Radius-y
	if dr < -v.Radius || dr > v.Radius || dc < -v.Radius || dc > v.Radius {
		return world.Cell{}, false
	}
	return world.Cell{Row: center.Row + dr, Col: center.Col + dc}, true
}

// Draw paints ground, trail, caches and the player, in that order.
func (v MapView) Draw(buf *CellBuffer, sc Scene) {
	n := v.Size()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			buf.Set(v.X+x, v.Y+y, glyphLightShade, ColorDarkGray, ColorBlack)
		}
	}
	for _, c := range sc.Trail {
		if x, y, ok := v.ToScreen(sc.Player, c); ok {
			buf.Set(x, y, glyphTrail, ColorLightMagenta, ColorBlack)
		}
	}
	for _, m := range sc.Caches {
		x, y, ok := v.ToScreen(sc.Player, m.Cell)
		if !ok {
			continue
		}
		glyph := glyphCache
		if m.Coins == 0 {
			glyph = glyphEmptyCache
		}
		bg := uint8(ColorBlack)
		if m.ID == sc.Selected {
			bg = ColorBlue
		}
		buf.Set(x, y, glyph, CacheColor(m.Coins), bg)
	}
	x, y, _ := v.ToScreen(sc.Player, sc.Player)
	buf.Set(x, y, '@', ColorWhite, buf.Get(x, y).BG)
}

// Selectable returns the visible caches that fall inside the window, in
// the sim's order. The sim may see further than the window draws.
func (v MapView) Selectable(s *game.Sim) []world.CellID {
	center := s.Board.MustCell(s.PlayerCell())
	var out []world.CellID
	for _, id := range s.Visible() {
		if _, _, ok := v.ToScreen(center, s.Board.MustCell(id)); ok {
			out = append(out, id)
		}
	}
	return out
}

// Shows reports whether id is a cache drawn in the window.
func (v MapView) Shows(s *game.Sim, id world.CellID) bool {
	if _, ok := s.CacheView(id); !ok {
		return false
	}
	_, _, ok := v.ToScreen(s.Board.MustCell(s.PlayerCell()), s.Board.MustCell(id))
	return ok
}
