package game

import (
	"fmt"

	"github.com/geocoin/geocoin/internal/world"
)

// Coin is a collectible token. Its origin cell and serial are fixed when the
// coin is minted and never change as it moves between caches and players.
type Coin struct {
	Row    int `json:"originRow"`
	Col    int `json:"originCol"`
	Serial int `json:"serial"`
}

// Origin returns the cell that minted the coin.
func (c Coin) Origin() world.Cell {
	return world.Cell{Row: c.Row, Col: c.Col}
}

// String renders the coin as "row:col#serial".
func (c Coin) String() string {
	return fmt.Sprintf("%d:%d#%d", c.Row, c.Col, c.Serial)
}

// mintCoins creates count coins for a cell, serials 0..count-1.
func mintCoins(cell world.Cell, count int) []Coin {
	coins := make([]Coin, count)
	for i := range coins {
		coins[i] = Coin{Row: cell.Row, Col: cell.Col, Serial: i}
	}
	return coins
}
