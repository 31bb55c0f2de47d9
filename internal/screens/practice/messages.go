package practice

import (
	"github.com/abhisek/hanzimem/internal/session"
)

// sessionStartedMsg is sent when the controller has opened a session and
// served the first batch.
type sessionStartedMsg struct {
	Result *session.StartResult
	Err    error
}

// batchReadyMsg is sent when a further batch has been served.
type batchReadyMsg struct {
	Items []session.Item
	Err   error
}

// answerGradedMsg is sent when a submitted answer has been applied.
type answerGradedMsg struct {
	Outcome *session.AnswerOutcome
	Err     error
}

// sessionEndedMsg is sent when the session has been closed.
type sessionEndedMsg struct {
	Missed []session.MissedItem
	Err    error
}
