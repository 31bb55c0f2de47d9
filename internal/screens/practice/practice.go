// Package practice implements the quiz screen: it drives a recall session
// against the controller, one character at a time.
package practice

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hanzimem/internal/router"
	"github.com/abhisek/hanzimem/internal/screen"
	"github.com/abhisek/hanzimem/internal/screens/review"
	sess "github.com/abhisek/hanzimem/internal/session"
	"github.com/abhisek/hanzimem/internal/ui/components"
	"github.com/abhisek/hanzimem/internal/ui/layout"
)

type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseFeedback
	phaseFinished
)

// PracticeScreen implements screen.Screen for an active recall session.
type PracticeScreen struct {
	controller *sess.Controller
	learner    string

	sessionID string
	items     []sess.Item
	index     int

	mc          components.MultiChoice
	phase       phase
	lastOutcome *sess.AnswerOutcome
	questionAt  time.Time

	totalAnswered int
	totalCorrect  int

	showQuitConfirm bool
	errMsg          string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// CapturesEsc reports whether the screen wants the esc key itself: during an
// active session esc opens the quit confirmation instead of popping.
func (s *PracticeScreen) CapturesEsc() bool {
	return s.phase != phaseFinished && s.errMsg == ""
}

// New creates a PracticeScreen for the given learner.
func New(controller *sess.Controller, learner string) *PracticeScreen {
	return &PracticeScreen{
		controller: controller,
		learner:    learner,
		phase:      phaseLoading,
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	return s.startSession()
}

func (s *PracticeScreen) Title() string {
	return "Practice"
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	if s.showQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.phase {
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	case phaseFinished:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "1-5", Description: "Answer"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionStartedMsg:
		return s.handleStarted(msg)

	case batchReadyMsg:
		return s.handleBatch(msg)

	case answerGradedMsg:
		return s.handleGraded(msg)

	case sessionEndedMsg:
		return s.handleEnded(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PracticeScreen) handleStarted(msg sessionStartedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.sessionID = msg.Result.SessionID
	if len(msg.Result.Items) == 0 {
		// Nothing due and nothing left to introduce: close immediately.
		return s, s.endSession()
	}
	return s.loadItems(msg.Result.Items)
}

func (s *PracticeScreen) handleBatch(msg batchReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	if len(msg.Items) == 0 {
		// Supply exhausted: close the session.
		return s, s.endSession()
	}
	return s.loadItems(msg.Items)
}

func (s *PracticeScreen) loadItems(items []sess.Item) (screen.Screen, tea.Cmd) {
	s.items = items
	s.index = 0
	s.presentCurrent()
	return s, nil
}

// presentCurrent arms the choice component for the current item.
func (s *PracticeScreen) presentCurrent() {
	item := s.items[s.index]
	correct := 0
	for i, c := range item.Choices {
		if c == item.CorrectReading {
			correct = i
			break
		}
	}
	s.mc = components.NewMultiChoice("", item.Choices, correct, len(item.Choices)-1)
	s.phase = phaseQuestion
	s.questionAt = time.Now()
}

func (s *PracticeScreen) handleGraded(msg answerGradedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.lastOutcome = msg.Outcome
	s.totalAnswered++
	if msg.Outcome.Correct {
		s.totalCorrect++
	}
	s.phase = phaseFeedback
	return s, nil
}

func (s *PracticeScreen) handleEnded(msg sessionEndedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.phase = phaseFinished
	// Swap in the recap so esc from there returns home, not to a dead quiz.
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: review.New(msg.Missed, s.totalAnswered, s.totalCorrect),
		}
	}
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.showQuitConfirm {
		switch key {
		case "y", "Y":
			s.showQuitConfirm = false
			return s, s.endSession()
		case "n", "N", "esc":
			s.showQuitConfirm = false
		}
		return s, nil
	}

	switch s.phase {
	case phaseQuestion:
		if key == "esc" {
			s.showQuitConfirm = true
			return s, nil
		}
		var cmd tea.Cmd
		s.mc, cmd = s.mc.Update(msg)
		if s.mc.Submitted {
			return s, s.submitAnswer()
		}
		return s, cmd

	case phaseFeedback:
		return s.advance()

	case phaseFinished:
		if key == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	return s, nil
}

// advance moves to the next item, or requests the next batch.
func (s *PracticeScreen) advance() (screen.Screen, tea.Cmd) {
	s.lastOutcome = nil
	if s.index+1 < len(s.items) {
		s.index++
		s.presentCurrent()
		return s, nil
	}
	s.phase = phaseLoading
	return s, s.nextBatch()
}

func (s *PracticeScreen) startSession() tea.Cmd {
	return func() tea.Msg {
		res, err := s.controller.Start(context.Background(), s.learner)
		return sessionStartedMsg{Result: res, Err: err}
	}
}

func (s *PracticeScreen) nextBatch() tea.Cmd {
	return func() tea.Msg {
		items, err := s.controller.NextBatch(context.Background(), s.sessionID)
		return batchReadyMsg{Items: items, Err: err}
	}
}

func (s *PracticeScreen) submitAnswer() tea.Cmd {
	item := s.items[s.index]
	choice := ""
	if s.mc.ChosenIndex >= 0 && s.mc.ChosenIndex < len(item.Choices) {
		choice = item.Choices[s.mc.ChosenIndex]
	}
	unknown := s.mc.ChoseEscape()
	latency := int(time.Since(s.questionAt).Milliseconds())

	return func() tea.Msg {
		out, err := s.controller.SubmitAnswer(context.Background(), sess.AnswerRequest{
			SessionID:      s.sessionID,
			Character:      item.Character,
			SelectedChoice: choice,
			IDontKnow:      unknown,
			LatencyMS:      latency,
		})
		return answerGradedMsg{Outcome: out, Err: err}
	}
}

func (s *PracticeScreen) endSession() tea.Cmd {
	return func() tea.Msg {
		missed, err := s.controller.End(context.Background(), s.sessionID)
		return sessionEndedMsg{Missed: missed, Err: err}
	}
}
