package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	GlyphWidth  = 16
	GlyphHeight = 16
	atlasCols   = 16
)

// CP437 codes with hand-drawn shapes.
const (
	glyphCoin        byte = 7   // •
	glyphEmptyCache  byte = 9   // ○
	glyphVLine       byte = 179 // │
	glyphTopRight    byte = 191 // ┐
	glyphBottomLeft  byte = 192 // └
	glyphHLine       byte = 196 // ─
	glyphBottomRight byte = 217 // ┘
	glyphTopLeft     byte = 218 // ┌
	glyphLightShade  byte = 176 // ░
	glyphFullBlock   byte = 219 // █
	glyphTrail       byte = 250 // ·
	glyphCache       byte = 254 // ■
)

// FontAtlas holds one 16x16 sub-image per CP437 code.
type FontAtlas struct {
	glyphs [256]*ebiten.Image
}

type painter func(img *image.NRGBA, x0, y0 int)

var shapes = map[byte]painter{
	glyphCoin:        disc(3, true),
	glyphEmptyCache:  disc(5, false),
	glyphVLine:       lines(false, false, true, true),
	glyphTopRight:    lines(true, false, false, true),
	glyphBottomLeft:  lines(false, true, true, false),
	glyphHLine:       lines(true, true, false, false),
	glyphBottomRight: lines(true, false, true, false),
	glyphTopLeft:     lines(false, true, false, true),
	glyphLightShade:  fill(func(x, y int) bool { return (x+y)%4 == 0 }),
	glyphFullBlock:   fill(func(x, y int) bool { return true }),
	glyphTrail:       fill(func(x, y int) bool { return x >= 7 && x <= 8 && y >= 7 && y <= 8 }),
	glyphCache:       fill(func(x, y int) bool { return x >= 3 && x < 13 && y >= 3 && y < 13 }),
}

// NewFontAtlas builds the atlas. Printable ASCII comes from
// basicfont.Face7x13; the few graphic codes the game uses are drawn here.
func NewFontAtlas() *FontAtlas {
	img := image.NewNRGBA(image.Rect(0, 0, atlasCols*GlyphWidth, 256/atlasCols*GlyphHeight))
	face := basicfont.Face7x13

	for code := 0; code < 256; code++ {
		x0, y0 := glyphOrigin(byte(code))
		switch {
		case code >= 32 && code <= 126:
			drawText(img, face, x0, y0, rune(code))
		case shapes[byte(code)] != nil:
			shapes[byte(code)](img, x0, y0)
		}
	}

	sheet := ebiten.NewImageFromImage(img)
	a := &FontAtlas{}
	for code := 0; code < 256; code++ {
		x0, y0 := glyphOrigin(byte(code))
		a.glyphs[code] = sheet.SubImage(image.Rect(x0, y0, x0+GlyphWidth, y0+GlyphHeight)).(*ebiten.Image)
	}
	return a
}

// Glyph returns the image for a CP437 code.
func (a *FontAtlas) Glyph(code byte) *ebiten.Image {
	return a.glyphs[code]
}

func glyphOrigin(code byte) (x, y int) {
	return int(code) % atlasCols * GlyphWidth, int(code) / atlasCols * GlyphHeight
}

// drawText centers a 7x13 glyph in the 16x16 cell.
func drawText(img *image.NRGBA, face font.Face, x0, y0 int, r rune) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(x0+4, y0+13),
	}
	d.DrawString(string(r))
}

var white = color.NRGBA{255, 255, 255, 255}

func fill(on func(x, y int) bool) painter {
	return func(img *image.NRGBA, x0, y0 int) {
		for y := 0; y < GlyphHeight; y++ {
			for x := 0; x < GlyphWidth; x++ {
				if on(x, y) {
					img.SetNRGBA(x0+x, y0+y, white)
				}
			}
		}
	}
}

// disc draws a circle of radius r about the cell center, solid or as a ring.
func disc(r int, solid bool) painter {
	return fill(func(x, y int) bool {
		dx, dy := 2*x-15, 2*y-15
		d := dx*dx + dy*dy
		outer := 4 * r * r
		if solid {
			return d <= outer
		}
		inner := 4 * (r - 1) * (r - 1)
		return d <= outer && d > inner
	})
}

// lines draws 2px box-drawing strokes from the center toward each edge set.
func lines(left, right, top, bottom bool) painter {
	const c = 7
	return fill(func(x, y int) bool {
		horiz := y == c || y == c+1
		vert := x == c || x == c+1
		return (left && horiz && x <= c+1) ||
			(right && horiz && x >= c) ||
			(top && vert && y <= c+1) ||
			(bottom && vert && y >= c)
	})
}
