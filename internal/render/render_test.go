package render

import (
	"slices"
	"testing"

	"github.com/geocoin/geocoin/internal/game"
	"github.com/geocoin/geocoin/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestCellBufferClipsWrites(t *testing.T) {
	buf := NewCellBuffer(4, 2)
	buf.Set(-1, 0, 'x', ColorRed, ColorBlack)
	buf.Set(4, 1, 'x', ColorRed, ColorBlack)
	end := buf.WriteString(2, 1, "abc", ColorWhite, ColorBlack)

	assert.Equal(t, 5, end)
	assert.Equal(t, "  ab", buf.Text(0, 1, 4))
	assert.Equal(t, "    ", buf.Text(0, 0, 4))
	assert.Equal(t, Cell{}, buf.Get(9, 9))
}

func TestCellBufferNonLatinRunes(t *testing.T) {
	buf := NewCellBuffer(3, 1)
	buf.WriteString(0, 0, "a→b", ColorWhite, ColorBlack)
	assert.Equal(t, "a?b", buf.Text(0, 0, 3))
}

func TestBox(t *testing.T) {
	buf := NewCellBuffer(6, 3)
	buf.Box(0, 0, 6, 3, "", ColorWhite)
	assert.Equal(t, glyphTopLeft, buf.Get(0, 0).Glyph)
	assert.Equal(t, glyphHLine, buf.Get(3, 0).Glyph)
	assert.Equal(t, glyphVLine, buf.Get(5, 1).Glyph)
	assert.Equal(t, glyphBottomRight, buf.Get(5, 2).Glyph)
	assert.Equal(t, byte(' '), buf.Get(2, 1).Glyph)
}

func TestMapViewRoundTrip(t *testing.T) {
	v := MapView{X: 3, Y: 2, Radius: 4}
	center := world.Cell{Row: 100, Col: -50}

	x, y, ok := v.ToScreen(center, center)
	require.True(t, ok)
	assert.Equal(t, 7, x)
	assert.Equal(t, 6, y)

	north := world.Cell{Row: 101, Col: -50}
	_, ny, _ := v.ToScreen(center, north)
	assert.Equal(t, y-1, ny, "north is up")

	for dr := -4; dr <= 4; dr++ {
		for dc := -4; dc <= 4; dc++ {
			c := world.Cell{Row: center.Row + dr, Col: center.Col + dc}
			x, y, ok := v.ToScreen(center, c)
			require.True(t, ok)
			back, ok := v.FromScreen(center, x, y)
			require.True(t, ok)
			assert.Equal(t, c, back)
		}
	}

	_, _, ok = v.ToScreen(center, world.Cell{Row: 105, Col: -50})
	assert.False(t, ok)
	_, ok = v.FromScreen(center, 2, 6)
	assert.False(t, ok)
}

func TestMapViewDraw(t *testing.T) {
	v := MapView{Radius: 2}
	buf := NewCellBuffer(v.Size(), v.Size())
	player := world.Cell{Row: 10, Col: 10}
	v.Draw(buf, Scene{
		Player: player,
		Caches: []Marker{
			{ID: 1, Cell: world.Cell{Row: 11, Col: 10}, Coins: 3},
			{ID: 2, Cell: world.Cell{Row: 10, Col: 12}, Coins: 0},
			{ID: 3, Cell: world.Cell{Row: 30, Col: 30}, Coins: 5},
		},
		Trail:    []world.Cell{{Row: 9, Col: 10}, {Row: 10, Col: 10}},
		Selected: 1,
	})

	assert.Equal(t, byte('@'), buf.Get(2, 2).Glyph)
	assert.Equal(t, Cell{Glyph: glyphCache, FG: ColorBrown, BG: ColorBlue}, buf.Get(2, 1))
	assert.Equal(t, glyphEmptyCache, buf.Get(4, 2).Glyph)
	assert.Equal(t, glyphTrail, buf.Get(2, 3).Glyph)
	assert.Equal(t, glyphLightShade, buf.Get(0, 0).Glyph)
}

func TestBuildSceneMatchesSim(t *testing.T) {
	s := game.NewSim(game.DefaultRules(), nil, nil)
	s.Move(game.North)
	s.Move(game.North)

	sc := BuildScene(s, world.NoCell)
	assert.Equal(t, s.Board.MustCell(s.PlayerCell()), sc.Player)
	assert.Len(t, sc.Caches, len(s.Visible()))
	require.Len(t, sc.Trail, 2)
	assert.Equal(t, sc.Player, sc.Trail[1])
	for _, m := range sc.Caches {
		view, ok := s.CacheView(m.ID)
		require.True(t, ok)
		assert.Equal(t, len(view.Coins), m.Coins)
	}
}

func TestHUDGroupsDigits(t *testing.T) {
	h := NewHUD(language.English)
	assert.Equal(t, "1,234", h.Count(1234))
	assert.Equal(t, "7", h.Count(7))
}

func TestHUDStatusLine(t *testing.T) {
	s := game.NewSim(game.DefaultRules(), nil, nil)
	line := NewHUD(language.English).StatusLine(s)
	assert.Contains(t, line, "Coins: 0")
	assert.Contains(t, line, "36.98949")
	assert.Contains(t, line, s.Board.MustCell(s.PlayerCell()).String())
}

func TestCoinListTruncates(t *testing.T) {
	h := NewHUD(language.English)
	buf := NewCellBuffer(30, 4)
	coins := make([]game.Coin, 10)
	for i := range coins {
		coins[i] = game.Coin{Row: 1, Col: 2, Serial: i}
	}
	h.coinList(buf, 0, 0, 3, coins)
	assert.Equal(t, "1:2#0", buf.Text(2, 0, 5))
	assert.Equal(t, "1:2#1", buf.Text(2, 1, 5))
	assert.Equal(t, "... 8 more", buf.Text(2, 2, 10))
}

func TestDrawLogColorsByPriority(t *testing.T) {
	log := game.NewMessageLog(5, 0)
	log.Add("ok", game.MsgInfo)
	log.Add("bad", game.MsgCritical)
	buf := NewCellBuffer(10, 2)
	DrawLog(buf, 0, 0, 2, log)
	assert.Equal(t, uint8(ColorCyan), buf.Get(0, 0).FG)
	assert.Equal(t, uint8(ColorLightRed), buf.Get(0, 1).FG)
	assert.Equal(t, "bad", buf.Text(0, 1, 3))
}

func TestSelectableStaysInsideWindow(t *testing.T) {
	rules := game.DefaultRules()
	rules.Radius = 12
	s := game.NewSim(rules, nil, nil)
	v := MapView{Radius: 3}
	center := s.Board.MustCell(s.PlayerCell())

	got := v.Selectable(s)
	var outside world.CellID
	for _, id := range s.Visible() {
		c := s.Board.MustCell(id)
		inside := abs(c.Row-center.Row) <= 3 && abs(c.Col-center.Col) <= 3
		assert.Equal(t, inside, slices.Contains(got, id), "cell %v", c)
		assert.Equal(t, inside, v.Shows(s, id))
		if !inside {
			outside = id
		}
	}
	require.NotEqual(t, world.NoCell, outside, "sim should see past the window")
	assert.False(t, v.Shows(s, world.NoCell))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
