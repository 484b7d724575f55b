package memory

import (
	"sync"

	"github.com/bnema/review-queue/internal/domain"
	"github.com/bnema/review-queue/internal/ports"
)

// PoolCache keeps the last candidate batch in memory for the life of the
// process. Reads and writes copy, so no two callers ever share a slice.
type PoolCache struct {
	mu    sync.RWMutex
	items []domain.Item
}

var _ ports.PoolCache = (*PoolCache)(nil)

func NewPoolCache() *PoolCache {
	return &PoolCache{}
}

func (c *PoolCache) Get() []domain.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return domain.CloneItems(c.items)
}

func (c *PoolCache) Set(items []domain.Item) {
	var cloned []domain.Item
	if items != nil {
		cloned = domain.CloneItems(items)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = cloned
}

func (c *PoolCache) Clear() {
	c.Set(nil)
}

func (c *PoolCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}
