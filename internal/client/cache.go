// Package client is a Go consumer of the registry API. Its cache applies
// contributions optimistically so callers see the new total before the
// server answers, and rolls back to a snapshot when the request fails.
// Server truth always wins: after any contribution settles, the cache is
// refreshed or invalidated.
package client

import (
	"sync"
	"time"

	"github.com/rfeldman/wedsite/internal/models"
)

// Cache holds the last known registry collection. The zero value is an
// empty, invalid cache ready for use.
type Cache struct {
	mu    sync.Mutex
	items []models.RegistryItem
	valid bool
}

// Snapshot returns a deep copy of the cached items for later Restore.
// The copy is deep so a rolled-back cache shows no trace of optimistic
// contributor entries.
func (c *Cache) Snapshot() []models.RegistryItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyItems(c.items)
}

// Restore replaces the cache contents with a previously taken snapshot.
func (c *Cache) Restore(items []models.RegistryItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = copyItems(items)
	c.valid = true
}

// Set replaces the cache with fresh server data and marks it valid.
func (c *Cache) Set(items []models.RegistryItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = copyItems(items)
	c.valid = true
}

// Items returns a copy of the cached collection and whether the cache is
// currently valid.
func (c *Cache) Items() ([]models.RegistryItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyItems(c.items), c.valid
}

// Invalidate marks the cache stale so the next read refetches.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
}

// ApplyContribution updates the cached item as the server is expected to:
// group gifts accumulate the amount (clamped at price) and gain a local
// contributor entry stamped with the client clock; non-group items flip to
// purchased with the contributor as purchaser. Unknown IDs are a no-op.
func (c *Cache) ApplyContribution(itemID, name string, amount float64, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		item := &c.items[i]
		if item.ID != itemID {
			continue
		}
		if item.IsGroupGift {
			newAmount := item.AmountContributed + amount
			if newAmount > item.Price {
				newAmount = item.Price
			}
			item.AmountContributed = newAmount
			item.Purchased = newAmount >= item.Price
			item.Contributors = append(item.Contributors, models.Contributor{
				Name:   name,
				Amount: amount,
				Date:   now,
			})
		} else {
			item.Purchased = true
			item.PurchaserName = name
			item.AmountContributed = item.Price
		}
		return
	}
}

func copyItems(items []models.RegistryItem) []models.RegistryItem {
	out := make([]models.RegistryItem, len(items))
	for i, item := range items {
		out[i] = item
		out[i].Contributors = append([]models.Contributor(nil), item.Contributors...)
	}
	return out
}
