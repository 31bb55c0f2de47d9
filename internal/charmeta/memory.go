package charmeta

import (
	"context"
	"sort"
)

// MemoryRepository is an in-memory Repository, used by tests and by the
// import pipeline before flushing to sqlite.
type MemoryRepository struct {
	byChar map[string]*CharacterItem
	ranked []*CharacterItem
}

// NewMemoryRepository builds a repository over the given items.
func NewMemoryRepository(items []*CharacterItem) *MemoryRepository {
	r := &MemoryRepository{byChar: make(map[string]*CharacterItem, len(items))}
	for _, item := range items {
		r.byChar[item.Character] = item
		r.ranked = append(r.ranked, item)
	}
	sort.SliceStable(r.ranked, func(i, j int) bool {
		if r.ranked[i].FrequencyRank != r.ranked[j].FrequencyRank {
			return r.ranked[i].FrequencyRank < r.ranked[j].FrequencyRank
		}
		return r.ranked[i].Character < r.ranked[j].Character
	})
	return r
}

func (r *MemoryRepository) Lookup(_ context.Context, character string) (*CharacterItem, error) {
	item, ok := r.byChar[character]
	if !ok {
		return nil, ErrNotFound
	}
	return item, nil
}

func (r *MemoryRepository) RangeByFrequencyRank(_ context.Context, lo, hi int) ([]*CharacterItem, error) {
	var out []*CharacterItem
	for _, item := range r.ranked {
		if item.FrequencyRank >= lo && item.FrequencyRank <= hi {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *MemoryRepository) All(_ context.Context) ([]*CharacterItem, error) {
	out := make([]*CharacterItem, len(r.ranked))
	copy(out, r.ranked)
	return out, nil
}

func (r *MemoryRepository) MaxFrequencyRank(_ context.Context) (int, error) {
	if len(r.ranked) == 0 {
		return 0, nil
	}
	return r.ranked[len(r.ranked)-1].FrequencyRank, nil
}
