package learner

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository is an in-memory Repository for tests.
type MemoryRepository struct {
	mu     sync.Mutex
	states map[string]map[string]*ItemState // learner -> character -> state
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{states: make(map[string]map[string]*ItemState)}
}

// Put stores a fully-shaped state row. Test fixture helper.
func (r *MemoryRepository) Put(s ItemState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.states[s.LearnerID] == nil {
		r.states[s.LearnerID] = make(map[string]*ItemState)
	}
	cp := s
	r.states[s.LearnerID][s.Character] = &cp
}

func (r *MemoryRepository) Get(_ context.Context, learnerID, character string) (*ItemState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.states[learnerID][character]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *MemoryRepository) EnsureSeen(_ context.Context, learnerID, character string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.states[learnerID] == nil {
		r.states[learnerID] = make(map[string]*ItemState)
	}
	if _, ok := r.states[learnerID][character]; !ok {
		s := NewState(learnerID, character, now)
		r.states[learnerID][character] = &s
	}
	return nil
}

func (r *MemoryRepository) DueBefore(_ context.Context, learnerID string, now time.Time) ([]*ItemState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*ItemState
	for _, s := range r.states[learnerID] {
		if s.Due(now) {
			cp := *s
			out = append(out, &cp)
		}
	}
	dueTime := func(s *ItemState) time.Time {
		if s.NextDueAt == nil {
			return time.Time{}
		}
		return *s.NextDueAt
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score < out[j].Score
		}
		if !dueTime(out[i]).Equal(dueTime(out[j])) {
			return dueTime(out[i]).Before(dueTime(out[j]))
		}
		return out[i].Character < out[j].Character
	})
	return out, nil
}

func (r *MemoryRepository) SeenCharacters(_ context.Context, learnerID string) (map[string]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]bool, len(r.states[learnerID]))
	for ch := range r.states[learnerID] {
		seen[ch] = true
	}
	return seen, nil
}

func (r *MemoryRepository) ApplyAnswer(_ context.Context, learnerID, character string, correct, unknown bool, now time.Time) (*AnswerResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.states[learnerID] == nil {
		r.states[learnerID] = make(map[string]*ItemState)
	}
	s, ok := r.states[learnerID][character]
	if !ok {
		created := NewState(learnerID, character, now)
		s = &created
		r.states[learnerID][character] = s
	}
	before := *s
	after := Apply(before, correct, unknown, now)
	*s = after
	return &AnswerResult{Before: before, After: after}, nil
}

func (r *MemoryRepository) CountWithScoreAtLeast(_ context.Context, learnerID string, minScore int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.states[learnerID] {
		if s.Score >= minScore {
			n++
		}
	}
	return n, nil
}
