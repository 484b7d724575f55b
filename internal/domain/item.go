package domain

import (
	"fmt"
	"strings"
	"time"
)

type ItemID string
type UserID string

type Item struct {
	OwnerID UserID
	ID      ItemID
	// PayloadRef is opaque to the core, usually a storage URL.
	PayloadRef        string
	EvaluationCount   int
	InteractedLocally bool
	CreatedAt         time.Time
}

// ItemKey is the only identity used for items. Containers and sets key on it
// instead of comparing whole records.
func ItemKey(item Item) ItemID {
	return item.ID
}

func (i Item) Validate() error {
	if strings.TrimSpace(string(i.ID)) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidRecord)
	}
	if i.EvaluationCount < 0 {
		return fmt.Errorf("%w: item %s has negative evaluation count %d", ErrInvalidRecord, i.ID, i.EvaluationCount)
	}

	return nil
}

func (i Item) OwnedBy(user UserID) bool {
	return i.OwnerID == user
}

func CloneItems(items []Item) []Item {
	if len(items) == 0 {
		return []Item{}
	}

	cloned := make([]Item, len(items))
	copy(cloned, items)
	return cloned
}

type ItemStats struct {
	Item          Item
	RatingCount   int
	AverageRating float64
	Reactions     map[Reaction]int
	Skips         int
}

func (s ItemStats) AverageRatingLabel() string {
	if s.RatingCount == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", s.AverageRating)
}

// NewItemStats summarises the evaluations recorded for item. The item's
// evaluation count is set to the number of evaluations.
func NewItemStats(item Item, evaluations []Evaluation) ItemStats {
	stats := ItemStats{Item: item, Reactions: map[Reaction]int{}}
	stats.Item.EvaluationCount = len(evaluations)

	total := 0
	for _, evaluation := range evaluations {
		switch evaluation.Kind {
		case EvaluationReview:
			stats.RatingCount++
			total += evaluation.Rating
		case EvaluationReaction:
			stats.Reactions[evaluation.Reaction]++
		case EvaluationSkip:
			stats.Skips++
		}
	}
	if stats.RatingCount > 0 {
		stats.AverageRating = float64(total) / float64(stats.RatingCount)
	}

	return stats
}
