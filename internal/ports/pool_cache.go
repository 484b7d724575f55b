package ports

import "github.com/bnema/review-queue/internal/domain"

// PoolCache holds the last fetched candidate batch. Get returns a copy the
// caller owns; Set stores a copy and clears the cache when items is nil.
type PoolCache interface {
	Get() []domain.Item
	Set(items []domain.Item)
	Clear()
}
