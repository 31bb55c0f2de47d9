// Package events records presentation and answer telemetry. The sink is
// append-only and fire-and-forget: losing an event must never fail the
// request that produced it.
package events

import (
	"context"
	"time"
)

// Presented is emitted once per item served to a learner.
type Presented struct {
	ID                string
	SessionID         string
	LearnerID         string
	Character         string
	CorrectChoice     string
	Choices           []string
	DistractorSources []string // provenance per distractor, in generation order (Choices are shuffled)
	SelectionReason   string   // "due" or "new"
	OccurredAt        time.Time
}

// Answered is emitted exactly once per submitted answer.
type Answered struct {
	ID             string
	SessionID      string
	LearnerID      string
	Character      string
	SelectedChoice string
	Correct        bool
	IDontKnow      bool
	LatencyMS      int
	ScoreBefore    int
	ScoreAfter     int
	OccurredAt     time.Time
}

// Logger is the telemetry sink contract.
type Logger interface {
	Presented(ctx context.Context, e Presented) error
	Answered(ctx context.Context, e Answered) error
}

// Nop discards all events. Used in tests and when telemetry is disabled.
type Nop struct{}

func (Nop) Presented(context.Context, Presented) error { return nil }
func (Nop) Answered(context.Context, Answered) error   { return nil }
