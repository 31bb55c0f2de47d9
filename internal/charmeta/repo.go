package charmeta

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a character has no metadata record.
var ErrNotFound = errors.New("charmeta: character not found")

// Repository is the read-side contract consumed by the queue builder and
// distractor generator. Implementations must be safe for concurrent readers.
type Repository interface {
	// Lookup returns the metadata for one character, or ErrNotFound.
	Lookup(ctx context.Context, character string) (*CharacterItem, error)

	// RangeByFrequencyRank returns items with frequency rank in [lo, hi],
	// ordered by rank ascending.
	RangeByFrequencyRank(ctx context.Context, lo, hi int) ([]*CharacterItem, error)

	// All returns every item. Used to build the pinyin index at startup.
	All(ctx context.Context) ([]*CharacterItem, error)

	// MaxFrequencyRank returns the highest rank present, bounding how far
	// the new-item window can expand.
	MaxFrequencyRank(ctx context.Context) (int, error)
}
