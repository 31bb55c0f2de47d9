package session

import (
	"time"

	"github.com/abhisek/hanzimem/internal/learner"
	"github.com/abhisek/hanzimem/internal/queue"
)

// UnknownChoice is the explicit "I don't know" option appended to every
// question. Selecting it always counts as incorrect.
const UnknownChoice = "我不知道"

// Item is one question as served to the learner.
type Item struct {
	Character         string                `json:"character"`
	ExampleWords      []string              `json:"example_words,omitempty"`
	ExampleSentence   string                `json:"example_sentence,omitempty"`
	Choices           []string              `json:"choices"` // shuffled readings plus UnknownChoice last
	CorrectReading    string                `json:"correct_reading"`
	SelectionReason   queue.SelectionReason `json:"selection_reason"`
	DistractorSources []string              `json:"distractor_sources"`
	Category          learner.Category      `json:"category"`
	Degraded          bool                  `json:"degraded,omitempty"` // fewer than the target number of distractors
}

// MissedItem is the review payload accumulated for every wrong or
// "I don't know" answer, fully populated for the post-session review step.
type MissedItem struct {
	Character       string   `json:"character"`
	CorrectReading  string   `json:"correct_reading"`
	Gloss           string   `json:"gloss,omitempty"`
	GlossZh         string   `json:"gloss_zh,omitempty"`
	Radical         string   `json:"radical,omitempty"`
	StrokeCount     int      `json:"stroke_count,omitempty"`
	Structure       string   `json:"structure,omitempty"`
	ExampleWords    []string `json:"example_words,omitempty"`
	ExampleSentence string   `json:"example_sentence,omitempty"`
}

// TraceEntry explains one serving decision for the debug endpoint.
type TraceEntry struct {
	Character         string                `json:"character"`
	SelectionReason   queue.SelectionReason `json:"selection_reason"`
	Window            int                   `json:"window,omitempty"`
	DistractorSources []string              `json:"distractor_sources"`
	Degraded          bool                  `json:"degraded,omitempty"`
}

// State is the transient per-session bookkeeping. Served characters are
// excluded from later batches of the same session; the missed accumulator
// grows across batches until End.
type State struct {
	ID        string
	LearnerID string
	StartedAt time.Time
	Served    map[string]bool
	Missed    []MissedItem
	Trace     []TraceEntry
	Answered  int
}

func newState(id, learnerID string, now time.Time) *State {
	return &State{
		ID:        id,
		LearnerID: learnerID,
		StartedAt: now,
		Served:    make(map[string]bool),
	}
}
