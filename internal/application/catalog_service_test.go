package application

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	tomlrepo "github.com/bnema/review-queue/internal/adapters/repo/toml"
	"github.com/bnema/review-queue/internal/domain"
	"github.com/bnema/review-queue/internal/ports/mocks"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogServiceAddItemSavesWithGeneratedID(t *testing.T) {
	store := mocks.NewMockItemStore(t)
	clock := mocks.NewMockClock(t)
	service := NewCatalogService(store, clock)
	service.newID = func() string { return "7d1c5c1e-0000-4000-8000-000000000001" }

	now := time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC)
	clock.EXPECT().Now().Return(now).Once()
	expected := domain.Item{
		OwnerID:    "u1",
		ID:         "7d1c5c1e-0000-4000-8000-000000000001",
		PayloadRef: "img/sunset.jpg",
		CreatedAt:  now,
	}
	store.EXPECT().SaveItem(mockAnyContext(), expected).Return(nil).Once()

	item, err := service.AddItem(context.Background(), " u1 ", " img/sunset.jpg ")
	require.NoError(t, err)
	assert.Equal(t, expected, item)
}

func TestCatalogServiceAddItemRejectsMissingFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		owner      domain.UserID
		payloadRef string
	}{
		{name: "missing owner", owner: " ", payloadRef: "img/1"},
		{name: "missing payload", owner: "u1", payloadRef: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			service := NewCatalogService(mocks.NewMockItemStore(t), nil)
			_, err := service.AddItem(context.Background(), tc.owner, tc.payloadRef)
			assert.ErrorIs(t, err, domain.ErrInvalidRecord)
		})
	}
}

func TestCatalogServiceAddItemWrapsStoreError(t *testing.T) {
	store := mocks.NewMockItemStore(t)
	service := NewCatalogService(store, nil)

	cause := errors.New("disk full")
	store.EXPECT().SaveItem(mockAnyContext(), mockAnyContext()).Return(cause).Once()

	_, err := service.AddItem(context.Background(), "u1", "img/1")
	assert.ErrorIs(t, err, cause)
}

func TestCatalogServiceListOwnedNewestFirst(t *testing.T) {
	store := mocks.NewMockItemStore(t)
	service := NewCatalogService(store, nil)

	older := domain.ItemStats{Item: domain.Item{OwnerID: "u1", ID: "a", CreatedAt: time.Unix(100, 0).UTC()}}
	newer := domain.ItemStats{Item: domain.Item{OwnerID: "u1", ID: "b", CreatedAt: time.Unix(200, 0).UTC()}}
	store.EXPECT().ItemStats(mockAnyContext(), domain.UserID("u1")).Return([]domain.ItemStats{older, newer}, nil).Once()

	stats, err := service.ListOwned(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, domain.ItemID("b"), stats[0].Item.ID)
	assert.Equal(t, domain.ItemID("a"), stats[1].Item.ID)
}

func TestCatalogServiceRoundTripWithTOMLStore(t *testing.T) {
	cfg := viper.New()
	cfg.Set("items.path", filepath.Join(t.TempDir(), "items.toml"))
	store, err := tomlrepo.NewItemStore(cfg)
	require.NoError(t, err)
	service := NewCatalogService(store, nil)
	ctx := context.Background()

	item, err := service.AddItem(ctx, "u1", "img/1")
	require.NoError(t, err)
	assert.Len(t, string(item.ID), 36)
	assert.NotEmpty(t, item.ID)

	require.NoError(t, store.RecordEvaluation(ctx, domain.NewReviewEvaluation(item, "u2", 4, "sharp")))
	require.NoError(t, store.RecordEvaluation(ctx, domain.NewReactionEvaluation(item, "u3", domain.ReactionLike)))

	stats, err := service.ListOwned(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 2, stats[0].Item.EvaluationCount)
	assert.Equal(t, 1, stats[0].RatingCount)
	assert.Equal(t, "4.0", stats[0].AverageRatingLabel())
	assert.Equal(t, 1, stats[0].Reactions[domain.ReactionLike])
}
