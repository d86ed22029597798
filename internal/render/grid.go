package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Cell is one character position on screen.
type Cell struct {
	Glyph byte  // CP437 code
	FG    uint8 // palette index
	BG    uint8 // palette index
}

var blank = Cell{Glyph: ' ', FG: ColorWhite, BG: ColorBlack}

// CellBuffer is the off-screen character grid the game draws into each
// frame. Writes outside the grid are dropped.
type CellBuffer struct {
	Cols  int
	Rows  int
	Cells []Cell
}

// NewCellBuffer creates a blank buffer.
func NewCellBuffer(cols, rows int) *CellBuffer {
	b := &CellBuffer{Cols: cols, Rows: rows, Cells: make([]Cell, cols*rows)}
	b.Clear()
	return b
}

func (b *CellBuffer) inside(x, y int) bool {
	return x >= 0 && x < b.Cols && y >= 0 && y < b.Rows
}

// Set writes one cell.
func (b *CellBuffer) Set(x, y int, glyph byte, fg, bg uint8) {
	if b.inside(x, y) {
		b.Cells[y*b.Cols+x] = Cell{Glyph: glyph, FG: fg, BG: bg}
	}
}

// SetBG recolors the background of a cell, keeping its glyph.
func (b *CellBuffer) SetBG(x, y int, bg uint8) {
	if b.inside(x, y) {
		b.Cells[y*b.Cols+x].BG = bg
	}
}

// Get returns the cell at (x, y), or the zero Cell outside the grid.
func (b *CellBuffer) Get(x, y int) Cell {
	if !b.inside(x, y) {
		return Cell{}
	}
	return b.Cells[y*b.Cols+x]
}

// Clear blanks the whole buffer.
func (b *CellBuffer) Clear() {
	for i := range b.Cells {
		b.Cells[i] = blank
	}
}

// Text returns the glyphs of row y from x for n cells as a string. Handy
// for tests and hover text.
func (b *CellBuffer) Text(x, y, n int) string {
	out := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		g := b.Get(x+i, y).Glyph
		if g == 0 {
			g = ' '
		}
		out = append(out, g)
	}
	return string(out)
}

// WriteString writes s from (x, y). Runes outside CP437's single-byte
// range print as '?'. Returns the x just past the last cell written.
func (b *CellBuffer) WriteString(x, y int, s string, fg, bg uint8) int {
	for _, ch := range s {
		g := byte('?')
		if ch < 256 {
			g = byte(ch)
		}
		b.Set(x, y, g, fg, bg)
		x++
	}
	return x
}

// Box draws a single-line frame with an optional title on the top edge.
func (b *CellBuffer) Box(x, y, w, h int, title string, fg uint8) {
	if w < 2 || h < 2 {
		return
	}
	right, bottom := x+w-1, y+h-1
	for i := x + 1; i < right; i++ {
		b.Set(i, y, glyphHLine, fg, ColorBlack)
		b.Set(i, bottom, glyphHLine, fg, ColorBlack)
	}
	for j := y + 1; j < bottom; j++ {
		b.Set(x, j, glyphVLine, fg, ColorBlack)
		b.Set(right, j, glyphVLine, fg, ColorBlack)
	}
	b.Set(x, y, glyphTopLeft, fg, ColorBlack)
	b.Set(right, y, glyphTopRight, fg, ColorBlack)
	b.Set(x, bottom, glyphBottomLeft, fg, ColorBlack)
	b.Set(right, bottom, glyphBottomRight, fg, ColorBlack)
	if title != "" {
		b.WriteString(x+2, y, " "+title+" ", ColorLightCyan, ColorBlack)
	}
}

// GridRenderer draws a CellBuffer to an Ebitengine screen.
type GridRenderer struct {
	Atlas   *FontAtlas
	CellW   int
	CellH   int
	bgPixel *ebiten.Image
}

// NewGridRenderer creates a renderer drawing cellW x cellH pixel cells.
func NewGridRenderer(atlas *FontAtlas, cellW, cellH int) *GridRenderer {
	px := ebiten.NewImage(1, 1)
	px.Fill(color.White)
	return &GridRenderer{Atlas: atlas, CellW: cellW, CellH: cellH, bgPixel: px}
}

// CellAt converts a screen pixel to grid coordinates.
func (r *GridRenderer) CellAt(px, py int) (x, y int) {
	return px / r.CellW, py / r.CellH
}

// Draw renders buf onto screen.
func (r *GridRenderer) Draw(screen *ebiten.Image, buf *CellBuffer) {
	sx := float64(r.CellW) / GlyphWidth
	sy := float64(r.CellH) / GlyphHeight

	for y := 0; y < buf.Rows; y++ {
		for x := 0; x < buf.Cols; x++ {
			c := buf.Cells[y*buf.Cols+x]
			px, py := float64(x*r.CellW), float64(y*r.CellH)

			if c.BG != ColorBlack {
				var op ebiten.DrawImageOptions
				op.GeoM.Scale(float64(r.CellW), float64(r.CellH))
				op.GeoM.Translate(px, py)
				op.ColorScale.ScaleWithColor(Palette[c.BG&15])
				screen.DrawImage(r.bgPixel, &op)
			}
			if c.Glyph == ' ' || c.Glyph == 0 {
				continue
			}
			var op ebiten.DrawImageOptions
			op.GeoM.Scale(sx, sy)
			op.GeoM.Translate(px, py)
			op.ColorScale.ScaleWithColor(Palette[c.FG&15])
			screen.DrawImage(r.Atlas.Glyph(c.Glyph), &op)
		}
	}
}
