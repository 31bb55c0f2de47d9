package practice

import (
	"context"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/abhisek/hanzimem/internal/charmeta"
	"github.com/abhisek/hanzimem/internal/distractor"
	"github.com/abhisek/hanzimem/internal/learner"
	"github.com/abhisek/hanzimem/internal/router"
	sess "github.com/abhisek/hanzimem/internal/session"
)

var testNow = time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)

// newExhaustedController builds a controller whose learner has answered the
// whole bank into the future: nothing due, nothing new to introduce.
func newExhaustedController(t *testing.T) *sess.Controller {
	t.Helper()

	items := []*charmeta.CharacterItem{
		{Character: "河", Readings: []string{"hé"}, FrequencyRank: 1},
		{Character: "马", Readings: []string{"mǎ"}, FrequencyRank: 2},
	}
	chars := charmeta.NewMemoryRepository(items)
	states := learner.NewMemoryRepository()
	ctx := context.Background()
	for _, item := range items {
		if _, err := states.ApplyAnswer(ctx, "amy", item.Character, true, false, testNow); err != nil {
			t.Fatalf("seed answer for %s: %v", item.Character, err)
		}
	}

	return sess.NewController(chars, states, distractor.New(charmeta.BuildIndex(items)), nil, sess.Config{
		BatchSize: 4,
		RNG: func(string, time.Time) *rand.Rand {
			return rand.New(rand.NewSource(7))
		},
		Clock:  func() time.Time { return testNow },
		Logger: slog.New(slog.DiscardHandler),
	})
}

func TestEmptyFirstBatchEndsSessionCleanly(t *testing.T) {
	s := New(newExhaustedController(t), "amy")

	started := s.Init()()
	if _, ok := started.(sessionStartedMsg); !ok {
		t.Fatalf("expected sessionStartedMsg, got %T", started)
	}

	// An empty first batch must close the session, not index into it.
	scr, cmd := s.Update(started)
	if cmd == nil {
		t.Fatal("empty first batch should trigger session end")
	}

	ended := cmd()
	endedMsg, ok := ended.(sessionEndedMsg)
	if !ok {
		t.Fatalf("expected sessionEndedMsg, got %T", ended)
	}
	if endedMsg.Err != nil {
		t.Fatalf("session end failed: %v", endedMsg.Err)
	}

	_, cmd = scr.Update(ended)
	if cmd == nil {
		t.Fatal("session end should hand off to the recap screen")
	}
	msg := cmd()
	replace, ok := msg.(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	if replace.Screen == nil {
		t.Fatal("recap screen missing from ReplaceScreenMsg")
	}
}

func TestEmptyLaterBatchEndsSession(t *testing.T) {
	s := New(newExhaustedController(t), "amy")
	started := s.Init()()
	if msg, ok := started.(sessionStartedMsg); !ok || msg.Err != nil {
		t.Fatalf("start failed: %#v", started)
	}
	s.sessionID = started.(sessionStartedMsg).Result.SessionID

	_, cmd := s.Update(batchReadyMsg{Items: nil})
	if cmd == nil {
		t.Fatal("empty batch should trigger session end")
	}
	msg := cmd()
	ended, ok := msg.(sessionEndedMsg)
	if !ok {
		t.Fatalf("expected sessionEndedMsg, got %T", msg)
	}
	if ended.Err != nil {
		t.Fatalf("session end failed: %v", ended.Err)
	}
}
