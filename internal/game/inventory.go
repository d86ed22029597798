package game

// Inventory is the player's coin purse. The last coin is the most recently
// acquired.
type Inventory struct {
	Coins []Coin
}

// NewInventory creates an inventory holding the given coins in order.
func NewInventory(coins ...Coin) Inventory {
	if len(coins) == 0 {
		return Inventory{}
	}
	return Inventory{Coins: append([]Coin(nil), coins...)}
}

// Len returns the number of coins held.
func (inv *Inventory) Len() int { return len(inv.Coins) }

// Empty reports whether the player holds no coins.
func (inv *Inventory) Empty() bool { return len(inv.Coins) == 0 }

// Last returns the coin a deposit would hand over next.
func (inv *Inventory) Last() (Coin, bool) {
	if len(inv.Coins) == 0 {
		return Coin{}, false
	}
	return inv.Coins[len(inv.Coins)-1], true
}

// Collect moves the front coin of the cache to the end of the inventory.
// Returns false and changes nothing if the cache is empty.
func (inv *Inventory) Collect(cache *Cache) bool {
	coin, ok := cache.popFront()
	if !ok {
		return false
	}
	inv.Coins = append(inv.Coins, coin)
	return true
}

// Deposit moves the last inventory coin to the front of the cache.
// Returns false and changes nothing if the inventory is empty.
func (inv *Inventory) Deposit(cache *Cache) bool {
	n := len(inv.Coins)
	if n == 0 {
		return false
	}
	coin := inv.Coins[n-1]
	inv.Coins = inv.Coins[:n-1]
	cache.pushFront(coin)
	return true
}

// Clear empties the inventory.
func (inv *Inventory) Clear() {
	inv.Coins = nil
}
