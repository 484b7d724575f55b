package application

import (
	"context"
	"fmt"

	"github.com/bnema/review-queue/internal/domain"
	"github.com/bnema/review-queue/internal/ports"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// PoolLoader serves candidate pools from the shared cache and falls back to
// the store. Concurrent fetches for the same user share one store call.
type PoolLoader struct {
	store  ports.ItemStore
	cache  ports.PoolCache
	logger *zap.Logger
	group  singleflight.Group
}

func NewPoolLoader(store ports.ItemStore, cache ports.PoolCache, logger *zap.Logger) *PoolLoader {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &PoolLoader{store: store, cache: cache, logger: logger}
}

// Load returns the cached batch when there is one, otherwise fetches it.
// The boolean reports a cache hit.
func (l *PoolLoader) Load(ctx context.Context, user domain.UserID) ([]domain.Item, bool, error) {
	if cached := l.cache.Get(); len(cached) > 0 {
		l.logger.Debug("candidate pool served from cache", zap.Int("items", len(cached)))
		return cached, true, nil
	}

	items, err := l.Warm(ctx, user)
	return items, false, err
}

// Warm always asks the store and replaces the cache with a non-empty result.
func (l *PoolLoader) Warm(ctx context.Context, user domain.UserID) ([]domain.Item, error) {
	value, err, shared := l.group.Do(string(user), func() (any, error) {
		items, err := l.store.FetchCandidatePool(ctx, user)
		if err != nil {
			return nil, err
		}
		if len(items) > 0 {
			l.cache.Set(items)
		}
		return items, nil
	})
	if err != nil {
		l.logger.Warn("candidate pool fetch failed", zap.String("user", string(user)), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrRemoteFetchFailed, err)
	}

	items := value.([]domain.Item)
	l.logger.Debug("candidate pool fetched",
		zap.String("user", string(user)),
		zap.Int("items", len(items)),
		zap.Bool("shared", shared))

	return domain.CloneItems(items), nil
}
