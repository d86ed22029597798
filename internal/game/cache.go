package game

import (
	"encoding/json"
	"fmt"

	"github.com/geocoin/geocoin/internal/world"
)

// Cache is the live coin collection of a spawned cell. Coins[0] is the front
// of the sequence: the next coin a collect takes.
type Cache struct {
	Cell  world.CellID
	Coins []Coin
}

// Len returns the number of coins in the cache.
func (c *Cache) Len() int { return len(c.Coins) }

// Empty reports whether the cache holds no coins.
func (c *Cache) Empty() bool { return len(c.Coins) == 0 }

// popFront removes and returns the first coin.
func (c *Cache) popFront() (Coin, bool) {
	if len(c.Coins) == 0 {
		return Coin{}, false
	}
	coin := c.Coins[0]
	c.Coins = c.Coins[1:]
	return coin, true
}

// pushFront inserts a coin ahead of every other coin.
func (c *Cache) pushFront(coin Coin) {
	c.Coins = append(c.Coins, Coin{})
	copy(c.Coins[1:], c.Coins)
	c.Coins[0] = coin
}

// memento serializes the coin sequence, order preserved.
func (c *Cache) memento() (string, error) {
	coins := c.Coins
	if coins == nil {
		coins = []Coin{}
	}
	data, err := json.Marshal(coins)
	if err != nil {
		return "", fmt.Errorf("encode cache memento: %w", err)
	}
	return string(data), nil
}

// restoreCache rebuilds a cache from a memento written by memento.
func restoreCache(cell world.CellID, memento string) (*Cache, error) {
	var coins []Coin
	if err := json.Unmarshal([]byte(memento), &coins); err != nil {
		return nil, fmt.Errorf("decode cache memento: %w", err)
	}
	if coins == nil {
		coins = []Coin{}
	}
	return &Cache{Cell: cell, Coins: coins}, nil
}
