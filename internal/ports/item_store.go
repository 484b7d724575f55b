package ports

import (
	"context"

	"github.com/bnema/review-queue/internal/domain"
)

// ItemStore is the durable source of items and evaluation counts.
//
// FetchCandidatePool leaves out items owned by excluding, items excluding
// already evaluated (skips included) and items without a payload. Each
// returned item carries the number of evaluations recorded for it.
type ItemStore interface {
	FetchCandidatePool(ctx context.Context, excluding domain.UserID) ([]domain.Item, error)
	RecordEvaluation(ctx context.Context, evaluation domain.Evaluation) error
	SaveItem(ctx context.Context, item domain.Item) error
	ItemStats(ctx context.Context, owner domain.UserID) ([]domain.ItemStats, error)
}
