// Package allowance decides whether a spender contract holds sufficient
// ERC20 allowance, caching reads per session and driving approval
// transactions through the transaction queue when short.
package allowance

import (
	"math/big"
	"strings"
	"sync"
)

// Cache stores last-known allowances keyed by (owner, token, spender). It is
// a local optimization, never a source of truth: entries are refreshed after
// every approval mined under the same key, and a miss always triggers an
// on-chain read before any decision.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*big.Int
}

// NewCache creates an empty allowance cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]*big.Int),
	}
}

// Key generates a cache key. Addresses are case-folded so checksum and
// lowercase spellings of the same address share an entry.
func Key(owner, tokenAddress, spender string) string {
	return strings.ToLower(owner) + ":" + strings.ToLower(tokenAddress) + ":" + strings.ToLower(spender)
}

// Get retrieves a cached allowance.
func (c *Cache) Get(owner, tokenAddress, spender string) (*big.Int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.entries[Key(owner, tokenAddress, spender)]
	if !ok {
		return nil, false
	}
	return new(big.Int).Set(v), true
}

// Set stores an allowance.
func (c *Cache) Set(owner, tokenAddress, spender string, value *big.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[Key(owner, tokenAddress, spender)] = new(big.Int).Set(value)
}

// Delete removes a cache entry.
func (c *Cache) Delete(owner, tokenAddress, spender string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, Key(owner, tokenAddress, spender))
}

// Clear removes all cache entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*big.Int)
}

// Size returns the number of cache entries.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
