package learner

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no state row exists for (learner, character).
var ErrNotFound = errors.New("learner: item state not found")

// AnswerResult carries the state before and after one applied answer, for
// telemetry (score_before / score_after) and the caller's feedback.
type AnswerResult struct {
	Before ItemState
	After  ItemState
}

// Repository is the read/write contract for learner item state. ApplyAnswer
// must be atomic: score, stage, and counters move together or not at all.
type Repository interface {
	// Get returns the state row, or ErrNotFound.
	Get(ctx context.Context, learnerID, character string) (*ItemState, error)

	// EnsureSeen creates the initial row on first presentation. Existing
	// rows are left untouched.
	EnsureSeen(ctx context.Context, learnerID, character string, now time.Time) error

	// DueBefore returns rows due at or before now, sorted by score
	// ascending then next_due_at ascending (weakest-understood first). A
	// row with no due timestamp (presented but never answered) counts as
	// due immediately.
	DueBefore(ctx context.Context, learnerID string, now time.Time) ([]*ItemState, error)

	// SeenCharacters returns every character this learner has a row for.
	SeenCharacters(ctx context.Context, learnerID string) (map[string]bool, error)

	// ApplyAnswer atomically applies one answer to the row, creating it
	// first if the presentation write was lost.
	ApplyAnswer(ctx context.Context, learnerID, character string, correct, unknown bool, now time.Time) (*AnswerResult, error)

	// CountWithScoreAtLeast counts this learner's rows at or above the
	// score threshold. Drives candidate-pool expansion.
	CountWithScoreAtLeast(ctx context.Context, learnerID string, minScore int) (int, error)
}
