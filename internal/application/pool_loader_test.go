package application

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/review-queue/internal/adapters/cache/memory"
	"github.com/bnema/review-queue/internal/domain"
	"github.com/bnema/review-queue/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func loaderPool() []domain.Item {
	return []domain.Item{
		{OwnerID: "u2", ID: "i1", PayloadRef: "img/1", EvaluationCount: 3},
		{OwnerID: "u3", ID: "i2", PayloadRef: "img/2"},
	}
}

func TestPoolLoaderLoadServesCacheWithoutFetching(t *testing.T) {
	store := mocks.NewMockItemStore(t)
	cache := memory.NewPoolCache()
	cache.Set(loaderPool())
	loader := NewPoolLoader(store, cache, zaptest.NewLogger(t))

	items, fromCache, err := loader.Load(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Equal(t, loaderPool(), items)
}

func TestPoolLoaderLoadFetchesAndCachesOnMiss(t *testing.T) {
	store := mocks.NewMockItemStore(t)
	cache := memory.NewPoolCache()
	loader := NewPoolLoader(store, cache, zaptest.NewLogger(t))

	store.EXPECT().FetchCandidatePool(mockAnyContext(), domain.UserID("u1")).Return(loaderPool(), nil).Once()

	items, fromCache, err := loader.Load(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, loaderPool(), items)
	assert.Equal(t, loaderPool(), cache.Get())

	items, fromCache, err = loader.Load(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Len(t, items, 2)
}

func TestPoolLoaderDoesNotCacheEmptyBatch(t *testing.T) {
	store := mocks.NewMockItemStore(t)
	cache := memory.NewPoolCache()
	loader := NewPoolLoader(store, cache, nil)

	store.EXPECT().FetchCandidatePool(mockAnyContext(), domain.UserID("u1")).Return(nil, nil).Once()

	items, fromCache, err := loader.Load(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Empty(t, items)
	assert.Empty(t, cache.Get())
}

func TestPoolLoaderWrapsFetchFailure(t *testing.T) {
	store := mocks.NewMockItemStore(t)
	loader := NewPoolLoader(store, memory.NewPoolCache(), zaptest.NewLogger(t))

	cause := errors.New("connection reset")
	store.EXPECT().FetchCandidatePool(mockAnyContext(), domain.UserID("u1")).Return(nil, cause).Once()

	_, _, err := loader.Load(context.Background(), "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteFetchFailed)
	assert.ErrorIs(t, err, cause)
}

func TestPoolLoaderWarmReplacesCache(t *testing.T) {
	store := mocks.NewMockItemStore(t)
	cache := memory.NewPoolCache()
	cache.Set([]domain.Item{{OwnerID: "u9", ID: "old", PayloadRef: "img/old"}})
	loader := NewPoolLoader(store, cache, zaptest.NewLogger(t))

	store.EXPECT().FetchCandidatePool(mockAnyContext(), domain.UserID("u1")).Return(loaderPool(), nil).Once()

	items, err := loader.Warm(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, loaderPool(), items)
	assert.Equal(t, loaderPool(), cache.Get())
}

func TestPoolLoaderWarmSharesConcurrentFetches(t *testing.T) {
	store := mocks.NewMockItemStore(t)
	loader := NewPoolLoader(store, memory.NewPoolCache(), zaptest.NewLogger(t))

	var calls atomic.Int32
	release := make(chan struct{})
	store.EXPECT().FetchCandidatePool(mockAnyContext(), domain.UserID("u1")).
		RunAndReturn(func(context.Context, domain.UserID) ([]domain.Item, error) {
			calls.Add(1)
			<-release
			return loaderPool(), nil
		})

	const callers = 5
	var started, finished sync.WaitGroup
	results := make([][]domain.Item, callers)
	errs := make([]error, callers)
	started.Add(callers)
	finished.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer finished.Done()
			started.Done()
			results[i], errs[i] = loader.Warm(context.Background(), "u1")
		}(i)
	}

	started.Wait()
	time.Sleep(50 * time.Millisecond)
	close(release)
	finished.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, loaderPool(), results[i])
	}

	results[0][0].EvaluationCount = 99
	assert.Equal(t, 3, results[1][0].EvaluationCount)
}
