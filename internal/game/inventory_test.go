package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	coinA = Coin{Row: 1, Col: 2, Serial: 0}
	coinB = Coin{Row: 1, Col: 2, Serial: 1}
	coinC = Coin{Row: 1, Col: 2, Serial: 2}
)

func TestCollectThenDepositRestoresOrder(t *testing.T) {
	cache := &Cache{Coins: []Coin{coinA, coinB, coinC}}
	var inv Inventory

	assert.True(t, inv.Collect(cache))
	assert.Equal(t, []Coin{coinA}, inv.Coins)
	assert.Equal(t, []Coin{coinB, coinC}, cache.Coins)

	assert.True(t, inv.Deposit(cache))
	assert.Empty(t, inv.Coins)
	assert.Equal(t, []Coin{coinA, coinB, coinC}, cache.Coins)
}

func TestCollectDrainsOldestFirst(t *testing.T) {
	cache := &Cache{Coins: []Coin{coinA, coinB, coinC}}
	var inv Inventory

	for inv.Collect(cache) {
	}
	assert.Equal(t, []Coin{coinA, coinB, coinC}, inv.Coins)
	assert.True(t, cache.Empty())
}

func TestDepositReturnsNewestFirst(t *testing.T) {
	inv := NewInventory(coinA, coinB, coinC)
	cache := &Cache{}

	for inv.Deposit(cache) {
	}
	assert.Equal(t, []Coin{coinA, coinB, coinC}, cache.Coins)
	assert.True(t, inv.Empty())
}

func TestTransfersOnEmptyAreNoOps(t *testing.T) {
	var inv Inventory
	cache := &Cache{}

	assert.False(t, inv.Collect(cache))
	assert.False(t, inv.Deposit(cache))
	assert.Empty(t, inv.Coins)
	assert.Empty(t, cache.Coins)

	full := &Cache{Coins: []Coin{coinA}}
	assert.False(t, inv.Deposit(full))
	assert.Equal(t, []Coin{coinA}, full.Coins)
}

func TestDepositIntoOtherCache(t *testing.T) {
	src := &Cache{Coins: []Coin{coinA, coinB}}
	dst := &Cache{Coins: []Coin{coinC}}
	var inv Inventory

	assert.True(t, inv.Collect(src))
	assert.True(t, inv.Deposit(dst))
	assert.Equal(t, []Coin{coinA, coinC}, dst.Coins)
	assert.Equal(t, []Coin{coinB}, src.Coins)
	assert.Equal(t, coinA.Origin(), dst.Coins[0].Origin())
}

func TestInventoryLastAndClear(t *testing.T) {
	inv := NewInventory(coinA, coinB)
	last, ok := inv.Last()
	assert.True(t, ok)
	assert.Equal(t, coinB, last)
	assert.Equal(t, 2, inv.Len())

	inv.Clear()
	_, ok = inv.Last()
	assert.False(t, ok)
}

func TestCoinString(t *testing.T) {
	assert.Equal(t, "369894:-1220628#7", Coin{Row: 369894, Col: -1220628, Serial: 7}.String())
}
