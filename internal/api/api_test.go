package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abhisek/hanzimem/internal/charmeta"
	"github.com/abhisek/hanzimem/internal/distractor"
	"github.com/abhisek/hanzimem/internal/learner"
	"github.com/abhisek/hanzimem/internal/session"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	items := []*charmeta.CharacterItem{
		{Character: "和", Readings: []string{"hé", "hè"}, ExampleWords: []string{"和平"}, FrequencyRank: 1},
		{Character: "河", Readings: []string{"hé"}, FrequencyRank: 2},
		{Character: "贺", Readings: []string{"hè"}, FrequencyRank: 3},
		{Character: "喝", Readings: []string{"hē"}, FrequencyRank: 4},
		{Character: "可", Readings: []string{"kě"}, FrequencyRank: 5},
	}
	chars := charmeta.NewMemoryRepository(items)
	controller := session.NewController(
		chars,
		learner.NewMemoryRepository(),
		distractor.New(charmeta.BuildIndex(items)),
		nil,
		session.Config{
			BatchSize: 3,
			RNG: func(string, time.Time) *rand.Rand {
				return rand.New(rand.NewSource(11))
			},
			Logger: slog.New(slog.DiscardHandler),
		},
	)
	return New(controller, slog.New(slog.DiscardHandler))
}

func doJSON(t *testing.T, e http.Handler, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echoContentType, "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
	return rec
}

const echoContentType = "Content-Type"

func TestSessionFlowOverHTTP(t *testing.T) {
	e := newTestService(t).Router()

	var start startResponse
	rec := doJSON(t, e, http.MethodPost, "/api/recall/session", startRequest{Learner: "amy"}, &start)
	if rec.Code != http.StatusOK {
		t.Fatalf("start status = %d, body %s", rec.Code, rec.Body.String())
	}
	if start.SessionID == "" || len(start.Items) == 0 {
		t.Fatalf("start response incomplete: %+v", start)
	}

	item := start.Items[0]
	var ans answerResponse
	rec = doJSON(t, e, http.MethodPost,
		fmt.Sprintf("/api/recall/session/%s/answer", start.SessionID),
		answerRequest{Character: item.Character, SelectedChoice: item.CorrectReading},
		&ans)
	if rec.Code != http.StatusOK {
		t.Fatalf("answer status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !ans.Correct {
		t.Error("correct choice graded wrong over HTTP")
	}

	var batch batchResponse
	rec = doJSON(t, e, http.MethodPost,
		fmt.Sprintf("/api/recall/session/%s/batch", start.SessionID), nil, &batch)
	if rec.Code != http.StatusOK {
		t.Fatalf("batch status = %d", rec.Code)
	}
	for _, it := range batch.Items {
		for _, served := range start.Items {
			if it.Character == served.Character {
				t.Errorf("%q re-served in second batch", it.Character)
			}
		}
	}

	var trace map[string][]session.TraceEntry
	rec = doJSON(t, e, http.MethodGet,
		fmt.Sprintf("/api/recall/session/%s/trace", start.SessionID), nil, &trace)
	if rec.Code != http.StatusOK {
		t.Fatalf("trace status = %d", rec.Code)
	}
	if len(trace["trace"]) == 0 {
		t.Error("trace is empty after serving items")
	}

	var end endResponse
	rec = doJSON(t, e, http.MethodPost,
		fmt.Sprintf("/api/recall/session/%s/end", start.SessionID), nil, &end)
	if rec.Code != http.StatusOK {
		t.Fatalf("end status = %d", rec.Code)
	}
	if end.Missed == nil {
		t.Error("end response missed list must be present, even when empty")
	}
}

func TestAnswerHonorsCallerCorrectReading(t *testing.T) {
	e := newTestService(t).Router()

	var start startResponse
	doJSON(t, e, http.MethodPost, "/api/recall/session", startRequest{Learner: "amy"}, &start)
	item := start.Items[0]

	// The caller pins a reading that the selected choice cannot match, so
	// the answer grades wrong even though the server-side reading would
	// have matched.
	var ans answerResponse
	rec := doJSON(t, e, http.MethodPost,
		fmt.Sprintf("/api/recall/session/%s/answer", start.SessionID),
		answerRequest{
			Character:      item.Character,
			SelectedChoice: item.CorrectReading,
			CorrectReading: "xiū",
		},
		&ans)
	if rec.Code != http.StatusOK {
		t.Fatalf("answer status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ans.Correct {
		t.Error("caller-supplied correct_reading was ignored")
	}
	if ans.Missed == nil {
		t.Error("wrong answer should carry a missed item")
	}
}

func TestErrorMapping(t *testing.T) {
	e := newTestService(t).Router()

	rec := doJSON(t, e, http.MethodPost, "/api/recall/session", startRequest{}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty learner status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, e, http.MethodPost, "/api/recall/session/ghost/batch", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown session status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, e, http.MethodPost, "/api/recall/session/ghost/end", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("end unknown session status = %d, want 404", rec.Code)
	}

	var start startResponse
	doJSON(t, e, http.MethodPost, "/api/recall/session", startRequest{Learner: "amy"}, &start)
	rec = doJSON(t, e, http.MethodPost,
		fmt.Sprintf("/api/recall/session/%s/answer", start.SessionID),
		answerRequest{Character: "龘"}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown character status = %d, want 400", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	e := newTestService(t).Router()
	rec := doJSON(t, e, http.MethodGet, "/api/health", nil, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", rec.Code)
	}
}
