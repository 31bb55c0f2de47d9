// Package queue assembles the ordered batch of items to present: due
// reviews first (weakest-understood first), topped up with new characters
// sampled deterministically from a frequency-bounded pool.
package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/hanzimem/internal/charmeta"
	"github.com/abhisek/hanzimem/internal/learner"
)

// Defaults for batch construction.
const (
	DefaultBatchSize  = 20
	DefaultPoolWindow = 500

	// maxWindowDoublings bounds pool expansion: 500 -> 1000 -> 2000.
	maxWindowDoublings = 2

	// Pool auto-expansion by mastery: every expandMasteredStep characters
	// at or above expandMinScore widen the window by expandPoolStep, so a
	// progressing learner never runs the bank dry.
	expandMasteredStep = 200
	expandPoolStep     = 500
	expandMinScore     = 10
)

// SelectionReason tags why an item entered the batch.
type SelectionReason string

const (
	ReasonDue SelectionReason = "due"
	ReasonNew SelectionReason = "new"
)

// ItemDescriptor is one selected item with enough context for the debug
// trace to explain the selection.
type ItemDescriptor struct {
	Item   *charmeta.CharacterItem
	Reason SelectionReason
	State  *learner.ItemState // nil for new items
	Window int                // pool window in effect when a new item was sampled
}

// Options tunes one Build call.
type Options struct {
	BatchSize  int
	PoolWindow int
	Exclude    map[string]bool // characters already served this session
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.PoolWindow <= 0 {
		o.PoolWindow = DefaultPoolWindow
	}
	return o
}

// Builder constructs batches from the metadata store and learner state.
type Builder struct {
	chars  charmeta.Repository
	states learner.Repository
	policy OrderingPolicy
	newRNG RNGFactory
}

// NewBuilder wires a Builder. A nil policy defaults to DueFirst; a nil rng
// factory defaults to SeededRNG.
func NewBuilder(chars charmeta.Repository, states learner.Repository, policy OrderingPolicy, newRNG RNGFactory) *Builder {
	if policy == nil {
		policy = DueFirst{}
	}
	if newRNG == nil {
		newRNG = SeededRNG
	}
	return &Builder{chars: chars, states: states, policy: policy, newRNG: newRNG}
}

// Build returns up to BatchSize items for the learner at the given time.
// Returning fewer items, or none, is not an error: it means the due and
// expandable-new supplies are exhausted. Batches are never padded with
// duplicates.
func (b *Builder) Build(ctx context.Context, learnerID string, now time.Time, opts Options) ([]ItemDescriptor, error) {
	opts = opts.withDefaults()

	due, err := b.dueSubset(ctx, learnerID, now, opts)
	if err != nil {
		return nil, err
	}

	var fresh []ItemDescriptor
	if need := opts.BatchSize - len(due); need > 0 {
		fresh, err = b.sampleNew(ctx, learnerID, now, need, opts)
		if err != nil {
			return nil, err
		}
	}

	return b.policy.Order(due, fresh), nil
}

// dueSubset fetches due state rows (already sorted score asc, due asc),
// drops session-served characters, resolves metadata, and caps the count.
func (b *Builder) dueSubset(ctx context.Context, learnerID string, now time.Time, opts Options) ([]ItemDescriptor, error) {
	states, err := b.states.DueBefore(ctx, learnerID, now)
	if err != nil {
		return nil, fmt.Errorf("fetch due items: %w", err)
	}

	var out []ItemDescriptor
	for _, st := range states {
		if len(out) >= opts.BatchSize {
			break
		}
		if opts.Exclude[st.Character] {
			continue
		}
		item, err := b.chars.Lookup(ctx, st.Character)
		if errors.Is(err, charmeta.ErrNotFound) {
			// State rows can outlive a metadata record; skip them.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve due item %q: %w", st.Character, err)
		}
		out = append(out, ItemDescriptor{Item: item, Reason: ReasonDue, State: st})
	}
	return out, nil
}

// sampleNew fills remaining slots with unseen characters, expanding the
// frequency window when the pool runs dry.
func (b *Builder) sampleNew(ctx context.Context, learnerID string, now time.Time, need int, opts Options) ([]ItemDescriptor, error) {
	seen, err := b.states.SeenCharacters(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("fetch seen set: %w", err)
	}

	window, err := b.effectiveWindow(ctx, learnerID, opts.PoolWindow)
	if err != nil {
		return nil, err
	}
	maxRank, err := b.chars.MaxFrequencyRank(ctx)
	if err != nil {
		return nil, fmt.Errorf("max frequency rank: %w", err)
	}

	var pool []*charmeta.CharacterItem
	for expansion := 0; ; expansion++ {
		pool, err = b.candidatePool(ctx, window, seen, opts.Exclude)
		if err != nil {
			return nil, err
		}
		if len(pool) >= need || expansion >= maxWindowDoublings || window >= maxRank {
			break
		}
		window *= 2
	}

	rng := b.newRNG(learnerID, now)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > need {
		pool = pool[:need]
	}

	out := make([]ItemDescriptor, 0, len(pool))
	for _, item := range pool {
		out = append(out, ItemDescriptor{Item: item, Reason: ReasonNew, Window: window})
	}
	return out, nil
}

// candidatePool lists presentable, unseen characters ranked within the
// window, in deterministic rank order.
func (b *Builder) candidatePool(ctx context.Context, window int, seen, exclude map[string]bool) ([]*charmeta.CharacterItem, error) {
	items, err := b.chars.RangeByFrequencyRank(ctx, 1, window)
	if err != nil {
		return nil, fmt.Errorf("fetch candidate pool [1,%d]: %w", window, err)
	}
	var pool []*charmeta.CharacterItem
	for _, item := range items {
		if seen[item.Character] || exclude[item.Character] {
			continue
		}
		if !item.Presentable() {
			continue
		}
		pool = append(pool, item)
	}
	return pool, nil
}

// effectiveWindow widens the configured window as the learner masters more
// characters.
func (b *Builder) effectiveWindow(ctx context.Context, learnerID string, configured int) (int, error) {
	mastered, err := b.states.CountWithScoreAtLeast(ctx, learnerID, expandMinScore)
	if err != nil {
		return 0, fmt.Errorf("count mastered: %w", err)
	}
	tier := mastered / expandMasteredStep
	expanded := DefaultPoolWindow + tier*expandPoolStep
	if expanded > configured {
		return expanded, nil
	}
	return configured, nil
}
