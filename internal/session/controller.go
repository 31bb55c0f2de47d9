// Package session orchestrates practice sessions: it drives the queue
// builder and distractor generator to serve batches, applies the memory
// model on each answer, and accumulates missed items for the post-session
// review.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/hanzimem/internal/charmeta"
	"github.com/abhisek/hanzimem/internal/distractor"
	"github.com/abhisek/hanzimem/internal/events"
	"github.com/abhisek/hanzimem/internal/learner"
	"github.com/abhisek/hanzimem/internal/pinyin"
	"github.com/abhisek/hanzimem/internal/queue"
)

// Config tunes a Controller. Zero values fall back to defaults.
type Config struct {
	BatchSize  int
	PoolWindow int
	Policy     queue.OrderingPolicy
	RNG        queue.RNGFactory
	Clock      func() time.Time
	Logger     *slog.Logger
}

// Controller owns all live sessions and the components serving them.
type Controller struct {
	mu       sync.Mutex
	sessions map[string]*State

	builder     *queue.Builder
	chars       charmeta.Repository
	states      learner.Repository
	distractors *distractor.Generator
	events      events.Logger

	batchSize  int
	poolWindow int
	newRNG     queue.RNGFactory
	now        func() time.Time
	log        *slog.Logger
}

// StartResult is the response to Start: a fresh session and its first batch.
type StartResult struct {
	SessionID string
	Items     []Item
}

// AnswerRequest is one submitted answer.
type AnswerRequest struct {
	SessionID      string
	Character      string
	SelectedChoice string
	IDontKnow      bool
	CorrectReading string
	LatencyMS      int
}

// AnswerOutcome reports the graded answer and, when missed, the review
// payload.
type AnswerOutcome struct {
	Correct     bool
	IDontKnow   bool
	ScoreBefore int
	ScoreAfter  int
	Missed      *MissedItem
}

// NewController wires a Controller over the given collaborators.
func NewController(chars charmeta.Repository, states learner.Repository, dg *distractor.Generator, sink events.Logger, cfg Config) *Controller {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = queue.DefaultBatchSize
	}
	if cfg.PoolWindow <= 0 {
		cfg.PoolWindow = queue.DefaultPoolWindow
	}
	if cfg.RNG == nil {
		cfg.RNG = queue.SeededRNG
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if sink == nil {
		sink = events.Nop{}
	}
	return &Controller{
		sessions:    make(map[string]*State),
		builder:     queue.NewBuilder(chars, states, cfg.Policy, cfg.RNG),
		chars:       chars,
		states:      states,
		distractors: dg,
		events:      sink,
		batchSize:   cfg.BatchSize,
		poolWindow:  cfg.PoolWindow,
		newRNG:      cfg.RNG,
		now:         cfg.Clock,
		log:         cfg.Logger,
	}
}

// Start opens a session for the learner and serves the first batch.
func (c *Controller) Start(ctx context.Context, learnerID string) (*StartResult, error) {
	if learnerID == "" {
		return nil, fmt.Errorf("%w: missing learner id", ErrValidation)
	}

	st := newState(uuid.NewString(), learnerID, c.now())
	items, err := c.serveBatch(ctx, st)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.sessions[st.ID] = st
	c.mu.Unlock()

	return &StartResult{SessionID: st.ID, Items: items}, nil
}

// NextBatch serves a further batch for an open session, excluding
// everything already served in it. An empty batch means the learner's
// due-plus-new supply is exhausted and the session should end.
func (c *Controller) NextBatch(ctx context.Context, sessionID string) ([]Item, error) {
	st, err := c.session(sessionID)
	if err != nil {
		return nil, err
	}
	return c.serveBatch(ctx, st)
}

// SubmitAnswer grades one answer, applies the memory model atomically, and
// emits the answered event. Wrong and "I don't know" answers append a fully
// populated missed item to the session accumulator.
func (c *Controller) SubmitAnswer(ctx context.Context, req AnswerRequest) (*AnswerOutcome, error) {
	st, err := c.session(req.SessionID)
	if err != nil {
		return nil, err
	}
	if req.Character == "" {
		return nil, fmt.Errorf("%w: missing character", ErrValidation)
	}

	item, err := c.chars.Lookup(ctx, req.Character)
	if errors.Is(err, charmeta.ErrNotFound) {
		return nil, fmt.Errorf("%w: unknown character %q", ErrValidation, req.Character)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve character: %w", err)
	}

	correctReading := req.CorrectReading
	if correctReading == "" {
		correctReading = item.CorrectReading()
	}
	correct := !req.IDontKnow && pinyin.Equal(req.SelectedChoice, correctReading)

	result, err := c.states.ApplyAnswer(ctx, st.LearnerID, req.Character, correct, req.IDontKnow, c.now())
	if err != nil {
		return nil, fmt.Errorf("apply answer: %w", err)
	}

	c.emitAnswered(ctx, st, req, correct, result)

	outcome := &AnswerOutcome{
		Correct:     correct,
		IDontKnow:   req.IDontKnow,
		ScoreBefore: result.Before.Score,
		ScoreAfter:  result.After.Score,
	}

	c.mu.Lock()
	st.Answered++
	if !correct {
		missed := missedFrom(item)
		st.Missed = append(st.Missed, missed)
		outcome.Missed = &missed
	}
	c.mu.Unlock()

	return outcome, nil
}

// End closes the session and returns the accumulated missed items for the
// post-session review step.
func (c *Controller) End(_ context.Context, sessionID string) ([]MissedItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, sessionID)
	}
	delete(c.sessions, sessionID)
	return st.Missed, nil
}

// Trace returns the serving decisions recorded for an open session.
func (c *Controller) Trace(sessionID string) ([]TraceEntry, error) {
	st, err := c.session(sessionID)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]TraceEntry, len(st.Trace))
	copy(out, st.Trace)
	return out, nil
}

func (c *Controller) session(id string) (*State, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: missing session id", ErrValidation)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	return st, nil
}

// serveBatch builds, decorates, and records one batch.
func (c *Controller) serveBatch(ctx context.Context, st *State) ([]Item, error) {
	c.mu.Lock()
	exclude := make(map[string]bool, len(st.Served))
	for ch := range st.Served {
		exclude[ch] = true
	}
	c.mu.Unlock()

	now := c.now()
	descriptors, err := c.builder.Build(ctx, st.LearnerID, now, queue.Options{
		BatchSize:  c.batchSize,
		PoolWindow: c.poolWindow,
		Exclude:    exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("build batch: %w", err)
	}

	rng := c.newRNG(st.LearnerID, now)
	items := make([]Item, 0, len(descriptors))
	for _, d := range descriptors {
		item := c.buildItem(d, rng)
		items = append(items, item)

		if err := c.states.EnsureSeen(ctx, st.LearnerID, d.Item.Character, now); err != nil {
			return nil, fmt.Errorf("record first presentation: %w", err)
		}

		c.mu.Lock()
		st.Served[d.Item.Character] = true
		st.Trace = append(st.Trace, TraceEntry{
			Character:         item.Character,
			SelectionReason:   item.SelectionReason,
			Window:            d.Window,
			DistractorSources: item.DistractorSources,
			Degraded:          item.Degraded,
		})
		c.mu.Unlock()

		c.emitPresented(ctx, st, item, now)
	}
	return items, nil
}

// buildItem attaches distractors and the shuffled choice list.
func (c *Controller) buildItem(d queue.ItemDescriptor, rng *rand.Rand) Item {
	distractors, degraded := c.distractors.Generate(d.Item, rng)
	if degraded {
		c.log.Warn("distractor shortage",
			"character", d.Item.Character,
			"found", len(distractors))
	}

	correct := d.Item.CorrectReading()
	choices := make([]string, 0, len(distractors)+2)
	sources := make([]string, 0, len(distractors))
	choices = append(choices, correct)
	for _, dd := range distractors {
		choices = append(choices, dd.Reading)
		sources = append(sources, string(dd.Source))
	}
	rng.Shuffle(len(choices), func(i, j int) { choices[i], choices[j] = choices[j], choices[i] })
	choices = append(choices, UnknownChoice)

	category := learner.CategoryNew
	if d.State != nil {
		category = d.State.Category()
	}

	return Item{
		Character:         d.Item.Character,
		ExampleWords:      d.Item.ExampleWords,
		ExampleSentence:   d.Item.ExampleSentence.Value,
		Choices:           choices,
		CorrectReading:    correct,
		SelectionReason:   d.Reason,
		DistractorSources: sources,
		Category:          category,
		Degraded:          degraded,
	}
}

// emitPresented is fire-and-forget: telemetry loss never fails a request.
func (c *Controller) emitPresented(ctx context.Context, st *State, item Item, now time.Time) {
	err := c.events.Presented(ctx, events.Presented{
		SessionID:         st.ID,
		LearnerID:         st.LearnerID,
		Character:         item.Character,
		CorrectChoice:     item.CorrectReading,
		Choices:           item.Choices,
		DistractorSources: item.DistractorSources,
		SelectionReason:   string(item.SelectionReason),
		OccurredAt:        now,
	})
	if err != nil {
		c.log.Warn("drop presented event", "character", item.Character, "error", err)
	}
}

func (c *Controller) emitAnswered(ctx context.Context, st *State, req AnswerRequest, correct bool, result *learner.AnswerResult) {
	err := c.events.Answered(ctx, events.Answered{
		SessionID:      st.ID,
		LearnerID:      st.LearnerID,
		Character:      req.Character,
		SelectedChoice: req.SelectedChoice,
		Correct:        correct,
		IDontKnow:      req.IDontKnow,
		LatencyMS:      req.LatencyMS,
		ScoreBefore:    result.Before.Score,
		ScoreAfter:     result.After.Score,
		OccurredAt:     result.After.LastAnsweredAt,
	})
	if err != nil {
		c.log.Warn("drop answered event", "character", req.Character, "error", err)
	}
}

func missedFrom(item *charmeta.CharacterItem) MissedItem {
	return MissedItem{
		Character:       item.Character,
		CorrectReading:  item.CorrectReading(),
		Gloss:           item.Gloss.Value,
		GlossZh:         item.GlossZh.Value,
		Radical:         item.Radical.Value,
		StrokeCount:     item.StrokeCount,
		Structure:       item.Structure.Value,
		ExampleWords:    item.ExampleWords,
		ExampleSentence: item.ExampleSentence.Value,
	}
}
