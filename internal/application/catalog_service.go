package application

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bnema/review-queue/internal/domain"
	"github.com/bnema/review-queue/internal/ports"
	"github.com/google/uuid"
)

// CatalogService manages the items a user has put up for evaluation.
type CatalogService struct {
	store ports.ItemStore
	clock ports.Clock
	newID func() string
}

func NewCatalogService(store ports.ItemStore, clock ports.Clock) *CatalogService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &CatalogService{
		store: store,
		clock: clock,
		newID: uuid.NewString,
	}
}

func (s *CatalogService) AddItem(ctx context.Context, owner domain.UserID, payloadRef string) (domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return domain.Item{}, err
	}

	owner = domain.UserID(strings.TrimSpace(string(owner)))
	payloadRef = strings.TrimSpace(payloadRef)
	if owner == "" {
		return domain.Item{}, fmt.Errorf("%w: owner is required", domain.ErrInvalidRecord)
	}
	if payloadRef == "" {
		return domain.Item{}, fmt.Errorf("%w: payload ref is required", domain.ErrInvalidRecord)
	}

	item := domain.Item{
		OwnerID:    owner,
		ID:         domain.ItemID(s.newID()),
		PayloadRef: payloadRef,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.store.SaveItem(ctx, item); err != nil {
		return domain.Item{}, fmt.Errorf("save item: %w", err)
	}

	return item, nil
}

// ListOwned returns stats for every item owned by owner, newest first.
func (s *CatalogService) ListOwned(ctx context.Context, owner domain.UserID) ([]domain.ItemStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats, err := s.store.ItemStats(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("load item stats: %w", err)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Item.CreatedAt.After(stats[j].Item.CreatedAt)
	})

	return stats, nil
}
