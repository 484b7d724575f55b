package domain

import (
	"fmt"
	"strings"
	"time"
)

type EvaluationKind string
type Reaction string

const (
	EvaluationReview   EvaluationKind = "review"
	EvaluationReaction EvaluationKind = "reaction"
	EvaluationSkip     EvaluationKind = "skip"

	ReactionHeart Reaction = "heart"
	ReactionSmile Reaction = "smile"
	ReactionLike  Reaction = "like"

	MinRating = 0
	MaxRating = 5
)

func (r Reaction) Valid() bool {
	switch r {
	case ReactionHeart, ReactionSmile, ReactionLike:
		return true
	default:
		return false
	}
}

func Reactions() []Reaction {
	return []Reaction{ReactionHeart, ReactionSmile, ReactionLike}
}

// Evaluation is one user's verdict on one item. A later evaluation by the
// same evaluator replaces the earlier one.
type Evaluation struct {
	OwnerID     UserID
	ItemID      ItemID
	EvaluatorID UserID
	Kind        EvaluationKind
	Rating      int
	Text        string
	Reaction    Reaction
	RecordedAt  time.Time
}

func NewReviewEvaluation(item Item, evaluator UserID, rating int, text string) Evaluation {
	return Evaluation{
		OwnerID:     item.OwnerID,
		ItemID:      item.ID,
		EvaluatorID: evaluator,
		Kind:        EvaluationReview,
		Rating:      rating,
		Text:        text,
	}
}

func NewReactionEvaluation(item Item, evaluator UserID, reaction Reaction) Evaluation {
	return Evaluation{
		OwnerID:     item.OwnerID,
		ItemID:      item.ID,
		EvaluatorID: evaluator,
		Kind:        EvaluationReaction,
		Reaction:    reaction,
	}
}

func NewSkipEvaluation(item Item, evaluator UserID) Evaluation {
	return Evaluation{
		OwnerID:     item.OwnerID,
		ItemID:      item.ID,
		EvaluatorID: evaluator,
		Kind:        EvaluationSkip,
	}
}

func (e Evaluation) Validate() error {
	if strings.TrimSpace(string(e.ItemID)) == "" {
		return fmt.Errorf("%w: item id is required", ErrInvalidEvaluation)
	}
	if strings.TrimSpace(string(e.EvaluatorID)) == "" {
		return fmt.Errorf("%w: evaluator id is required", ErrInvalidEvaluation)
	}
	if e.EvaluatorID == e.OwnerID {
		return ErrSelfEvaluation
	}

	switch e.Kind {
	case EvaluationReview:
		if e.Rating < MinRating || e.Rating > MaxRating {
			return fmt.Errorf("%w: rating %d out of range [%d, %d]", ErrInvalidEvaluation, e.Rating, MinRating, MaxRating)
		}
	case EvaluationReaction:
		if !e.Reaction.Valid() {
			return fmt.Errorf("%w: unknown reaction %q", ErrInvalidEvaluation, e.Reaction)
		}
	case EvaluationSkip:
	default:
		return fmt.Errorf("%w: unsupported kind %q", ErrInvalidEvaluation, e.Kind)
	}

	return nil
}

func (e Evaluation) Skipped() bool {
	return e.Kind == EvaluationSkip
}
