package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemKeyIgnoresOtherFields(t *testing.T) {
	a := Item{OwnerID: "u1", ID: "img-1", EvaluationCount: 3}
	b := Item{OwnerID: "u2", ID: "img-1", PayloadRef: "https://example.test/x.jpg", InteractedLocally: true}

	assert.Equal(t, ItemKey(a), ItemKey(b))
}

func TestCloneItemsReturnsIndependentCopy(t *testing.T) {
	items := []Item{{ID: "a"}, {ID: "b"}}
	cloned := CloneItems(items)
	cloned[0].InteractedLocally = true

	assert.False(t, items[0].InteractedLocally)
	assert.Equal(t, []Item{}, CloneItems(nil))
}

func TestEvaluationValidate(t *testing.T) {
	t.Parallel()

	item := Item{OwnerID: "owner", ID: "img-1"}

	tests := []struct {
		name       string
		evaluation Evaluation
		wantErr    error
	}{
		{name: "review", evaluation: NewReviewEvaluation(item, "u1", 4, "nice light")},
		{name: "zero star review", evaluation: NewReviewEvaluation(item, "u1", 0, "")},
		{name: "reaction", evaluation: NewReactionEvaluation(item, "u1", ReactionSmile)},
		{name: "skip", evaluation: NewSkipEvaluation(item, "u1")},
		{name: "rating too high", evaluation: NewReviewEvaluation(item, "u1", 6, ""), wantErr: ErrInvalidEvaluation},
		{name: "negative rating", evaluation: NewReviewEvaluation(item, "u1", -1, ""), wantErr: ErrInvalidEvaluation},
		{name: "unknown reaction", evaluation: NewReactionEvaluation(item, "u1", "wow"), wantErr: ErrInvalidEvaluation},
		{name: "own item", evaluation: NewSkipEvaluation(item, "owner"), wantErr: ErrSelfEvaluation},
		{name: "missing evaluator", evaluation: NewSkipEvaluation(item, ""), wantErr: ErrInvalidEvaluation},
		{name: "missing item", evaluation: NewSkipEvaluation(Item{OwnerID: "owner"}, "u1"), wantErr: ErrInvalidEvaluation},
		{name: "unknown kind", evaluation: Evaluation{OwnerID: "owner", ItemID: "img-1", EvaluatorID: "u1", Kind: "vote"}, wantErr: ErrInvalidEvaluation},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.evaluation.Validate()
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestItemStatsAverageRatingLabel(t *testing.T) {
	assert.Equal(t, "0.0", ItemStats{}.AverageRatingLabel())
	assert.Equal(t, "3.7", ItemStats{RatingCount: 3, AverageRating: 11.0 / 3}.AverageRatingLabel())
}

func TestNewItemStatsSummarisesEvaluations(t *testing.T) {
	item := Item{OwnerID: "owner", ID: "img-1", EvaluationCount: 99}
	stats := NewItemStats(item, []Evaluation{
		NewReviewEvaluation(item, "u1", 4, "good"),
		NewReviewEvaluation(item, "u2", 3, ""),
		NewReactionEvaluation(item, "u3", ReactionHeart),
		NewReactionEvaluation(item, "u4", ReactionHeart),
		NewSkipEvaluation(item, "u5"),
	})

	assert.Equal(t, 5, stats.Item.EvaluationCount)
	assert.Equal(t, 2, stats.RatingCount)
	assert.InDelta(t, 3.5, stats.AverageRating, 0.0001)
	assert.Equal(t, map[Reaction]int{ReactionHeart: 2}, stats.Reactions)
	assert.Equal(t, 1, stats.Skips)
	assert.Equal(t, 99, item.EvaluationCount)
}
