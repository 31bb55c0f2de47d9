// Package srs implements the deterministic v0 memory model: a six-stage
// review ladder and a bounded integer score, both pure functions of the
// previous state and the answer outcome.
package srs

import "time"

// StageIntervalDays defines days until the next review, indexed by stage.
// Stage 0 means "same session": the item is re-eligible almost immediately.
var StageIntervalDays = []int{0, 1, 3, 7, 14, 30}

// MaxStage is the highest stage on the ladder.
const MaxStage = 5

// SameSessionDelay is the due offset used for stage 0 so a just-answered item
// does not reappear in the very next batch.
const SameSessionDelay = time.Minute

// Score bounds and per-answer deltas.
const (
	MinScore       = 0
	MaxScore       = 100
	CorrectDelta   = 10
	IncorrectDelta = 15
)

// Advance maps (stage, correct) to the new stage and the offset until the
// item is due again. A correct answer climbs one stage (capped at MaxStage);
// a wrong or "I don't know" answer drops one stage (floored at 0). The
// offset is indexed by the new stage.
func Advance(stage int, correct bool) (newStage int, dueOffset time.Duration) {
	newStage = clampStage(stage)
	if correct {
		newStage++
		if newStage > MaxStage {
			newStage = MaxStage
		}
	} else {
		newStage--
		if newStage < 0 {
			newStage = 0
		}
	}
	return newStage, IntervalFor(newStage)
}

// IntervalFor returns the due offset for a stage.
func IntervalFor(stage int) time.Duration {
	stage = clampStage(stage)
	days := StageIntervalDays[stage]
	if days == 0 {
		return SameSessionDelay
	}
	return time.Duration(days) * 24 * time.Hour
}

// UpdateScore maps (score, correct) to the new score, clamped to
// [MinScore, MaxScore]. Wrong and "I don't know" answers are equivalent.
func UpdateScore(score int, correct bool) int {
	if correct {
		score += CorrectDelta
		if score > MaxScore {
			score = MaxScore
		}
		return score
	}
	score -= IncorrectDelta
	if score < MinScore {
		score = MinScore
	}
	return score
}

func clampStage(stage int) int {
	if stage < 0 {
		return 0
	}
	if stage > MaxStage {
		return MaxStage
	}
	return stage
}
