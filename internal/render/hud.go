package render

import (
	"fmt"

	"github.com/geocoin/geocoin/internal/game"
	"github.com/geocoin/geocoin/internal/world"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// HUD draws the text panels around the map. Counts are formatted for the
// player's locale.
type HUD struct {
	p *message.Printer
}

// NewHUD creates a HUD formatting numbers for tag.
func NewHUD(tag language.Tag) *HUD {
	return &HUD{p: message.NewPrinter(tag)}
}

// Count formats a coin count with locale digit grouping.
func (h *HUD) Count(n int) string {
	return h.p.Sprintf("%d", n)
}

// StatusLine summarizes the player: coins held, position and cell.
func (h *HUD) StatusLine(s *game.Sim) string {
	pos := s.PlayerPos()
	return fmt.Sprintf("Coins: %s  At %.5f, %.5f  Cell %v",
		h.Count(s.Inventory.Len()), pos.Lat, pos.Lng, s.Board.MustCell(s.PlayerCell()))
}

// DrawStatus writes the status line and the geolocation indicator.
func (h *HUD) DrawStatus(buf *CellBuffer, x, y int, s *game.Sim) {
	end := buf.WriteString(x, y, h.StatusLine(s), ColorWhite, ColorBlack)
	if s.Tracking() {
		buf.WriteString(end+2, y, "GPS ON", ColorLightGreen, ColorBlack)
	} else {
		buf.WriteString(end+2, y, "GPS off", ColorDarkGray, ColorBlack)
	}
}

// DrawCache fills a panel with the selected cache's coins, front first.
// Lines that do not fit are summarized.
func (h *HUD) DrawCache(buf *CellBuffer, x, y, w, rows int, view game.CacheView, ok bool) {
	buf.Box(x, y, w, rows, "Cache", ColorLightGray)
	if !ok {
		buf.WriteString(x+2, y+1, "No cache selected.", ColorDarkGray, ColorBlack)
		buf.WriteString(x+2, y+2, "Tab or click to pick one.", ColorDarkGray, ColorBlack)
		return
	}
	buf.WriteString(x+2, y+1, fmt.Sprintf("Cell %v", view.Cell), ColorYellow, ColorBlack)
	buf.WriteString(x+2, y+2, h.p.Sprintf("%d coins", len(view.Coins)), CacheColor(len(view.Coins)), ColorBlack)
	h.coinList(buf, x+2, y+3, rows-4, view.Coins)
}

// DrawInventory lists the player's coins, newest first.
func (h *HUD) DrawInventory(buf *CellBuffer, x, y, w, rows int, inv *game.Inventory) {
	buf.Box(x, y, w, rows, "Inventory", ColorLightGray)
	if inv.Empty() {
		buf.WriteString(x+2, y+1, "Empty.", ColorDarkGray, ColorBlack)
		return
	}
	newest := make([]game.Coin, len(inv.Coins))
	for i, c := range inv.Coins {
		newest[len(newest)-1-i] = c
	}
	h.coinList(buf, x+2, y+1, rows-2, newest)
}

func (h *HUD) coinList(buf *CellBuffer, x, y, rows int, coins []game.Coin) {
	if rows <= 0 {
		return
	}
	shown := coins
	if len(shown) > rows {
		shown = coins[:rows-1]
	}
	for i, c := range shown {
		buf.Set(x, y+i, glyphCoin, ColorYellow, ColorBlack)
		buf.WriteString(x+2, y+i, c.String(), ColorLightGray, ColorBlack)
	}
	if len(coins) > len(shown) {
		buf.WriteString(x+2, y+len(shown), h.p.Sprintf("... %d more", len(coins)-len(shown)), ColorDarkGray, ColorBlack)
	}
}

// DrawLog writes the most recent messages, oldest at the top.
func DrawLog(buf *CellBuffer, x, y, rows int, log *game.MessageLog) {
	for i, msg := range log.Recent(rows) {
		buf.WriteString(x, y+i, msg.Text, MessageColor(msg.Priority), ColorBlack)
	}
}

// DescribeCell is the hover text for a board cell.
func DescribeCell(s *game.Sim, c world.Cell) string {
	if id, ok := s.Board.Lookup(c); ok {
		if id == s.PlayerCell() {
			return fmt.Sprintf("@ You  [%v]", c)
		}
		if view, ok := s.CacheView(id); ok {
			return fmt.Sprintf("Cache with %d coins  [%v]", len(view.Coins), c)
		}
	}
	b := s.Board.BoundsOf(c)
	return fmt.Sprintf("Open ground  [%v]  %.5f, %.5f", c, b.South, b.West)
}
