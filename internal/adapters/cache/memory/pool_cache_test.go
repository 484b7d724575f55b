package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/bnema/review-queue/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolCacheEmptyByDefault(t *testing.T) {
	t.Parallel()

	cache := NewPoolCache()
	got := cache.Get()
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPoolCacheGetReturnsIndependentCopies(t *testing.T) {
	t.Parallel()

	cache := NewPoolCache()
	cache.Set([]domain.Item{{OwnerID: "B", ID: "i1"}, {OwnerID: "B", ID: "i2"}})

	first := cache.Get()
	first[0].InteractedLocally = true
	first = append(first, domain.Item{ID: "i3"})

	second := cache.Get()
	assert.Len(t, second, 2)
	assert.False(t, second[0].InteractedLocally)
	assert.Len(t, first, 3)
}

func TestPoolCacheSetCopiesInput(t *testing.T) {
	t.Parallel()

	items := []domain.Item{{OwnerID: "B", ID: "i1", EvaluationCount: 1}}
	cache := NewPoolCache()
	cache.Set(items)

	items[0].EvaluationCount = 99
	assert.Equal(t, 1, cache.Get()[0].EvaluationCount)
}

func TestPoolCacheSetNilAndClear(t *testing.T) {
	t.Parallel()

	cache := NewPoolCache()
	cache.Set([]domain.Item{{ID: "i1"}})
	cache.Set(nil)
	assert.Equal(t, 0, cache.Len())

	cache.Set([]domain.Item{{ID: "i1"}})
	cache.Clear()
	assert.Empty(t, cache.Get())
}

func TestPoolCacheLastWriteWins(t *testing.T) {
	t.Parallel()

	cache := NewPoolCache()
	cache.Set([]domain.Item{{ID: "old"}})
	cache.Set([]domain.Item{{ID: "new-1"}, {ID: "new-2"}})

	got := cache.Get()
	require.Len(t, got, 2)
	assert.Equal(t, domain.ItemID("new-1"), got[0].ID)
}

func TestPoolCacheConcurrentAccess(t *testing.T) {
	t.Parallel()

	cache := NewPoolCache()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				batch := []domain.Item{
					{ID: domain.ItemID(fmt.Sprintf("w%d-a", w))},
					{ID: domain.ItemID(fmt.Sprintf("w%d-b", w))},
				}
				cache.Set(batch)
				got := cache.Get()
				if len(got) > 0 {
					got[0].InteractedLocally = true
				}
			}
		}(w)
	}
	wg.Wait()

	got := cache.Get()
	require.Len(t, got, 2)
	for _, item := range got {
		assert.False(t, item.InteractedLocally)
	}
}
