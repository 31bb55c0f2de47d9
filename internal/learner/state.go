// Package learner persists the per-(learner, character) memory model: score,
// review stage, due time, and answer counters.
package learner

import (
	"time"

	"github.com/abhisek/hanzimem/internal/srs"
)

// Category is the display grouping derived from a state's counters.
type Category string

const (
	CategoryNew     Category = "new"     // never answered
	CategoryConfirm Category = "confirm" // answered, never missed
	CategoryRevise  Category = "revise"  // missed at least once
)

// ItemState is one learner's memory state for one character. Counters are
// monotonic; rows are never deleted.
type ItemState struct {
	LearnerID      string
	Character      string
	Score          int
	Stage          int
	NextDueAt      *time.Time
	FirstSeenAt    time.Time
	LastAnsweredAt time.Time
	TotalCorrect   int
	TotalWrong     int
	TotalUnknown   int
}

// Due reports whether the item is due at the given time. An item with no
// due timestamp (seen but never answered) counts as due.
func (s *ItemState) Due(now time.Time) bool {
	if s.NextDueAt == nil {
		return true
	}
	return !now.Before(*s.NextDueAt)
}

// Category derives the display category from the answer counters.
func (s *ItemState) Category() Category {
	answered := s.TotalCorrect + s.TotalWrong + s.TotalUnknown
	if answered == 0 {
		return CategoryNew
	}
	if s.TotalWrong+s.TotalUnknown > 0 {
		return CategoryRevise
	}
	return CategoryConfirm
}

// Apply returns the state after one answer. Score and stage move together;
// an "I don't know" answer is scored as incorrect but counted separately.
// The input state is not modified.
func Apply(s ItemState, correct, unknown bool, now time.Time) ItemState {
	effective := correct && !unknown

	newStage, dueOffset := srs.Advance(s.Stage, effective)
	s.Score = srs.UpdateScore(s.Score, effective)
	s.Stage = newStage
	due := now.Add(dueOffset)
	s.NextDueAt = &due
	s.LastAnsweredAt = now

	switch {
	case effective:
		s.TotalCorrect++
	case unknown:
		s.TotalUnknown++
	default:
		s.TotalWrong++
	}
	return s
}

// NewState returns the initial state created on first presentation.
func NewState(learnerID, character string, now time.Time) ItemState {
	return ItemState{
		LearnerID:   learnerID,
		Character:   character,
		Score:       0,
		Stage:       0,
		FirstSeenAt: now,
	}
}
