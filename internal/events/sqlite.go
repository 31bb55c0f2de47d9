package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SQLiteLogger appends events to the item_presented / item_answered tables.
type SQLiteLogger struct {
	db *sql.DB
}

// NewSQLiteLogger wraps an open database. The schema is owned by the store
// package's migration.
func NewSQLiteLogger(db *sql.DB) *SQLiteLogger {
	return &SQLiteLogger{db: db}
}

func (l *SQLiteLogger) Presented(ctx context.Context, e Presented) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	choices, err := json.Marshal(e.Choices)
	if err != nil {
		return fmt.Errorf("marshal choices: %w", err)
	}
	sources, err := json.Marshal(e.DistractorSources)
	if err != nil {
		return fmt.Errorf("marshal distractor sources: %w", err)
	}
	_, err = l.db.ExecContext(ctx,
		`INSERT INTO item_presented
		 (id, session_id, learner_id, character, correct_choice, choices,
		  distractor_sources, selection_reason, occurred_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.SessionID, e.LearnerID, e.Character, e.CorrectChoice,
		string(choices), string(sources), e.SelectionReason,
		e.OccurredAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("append presented event: %w", err)
	}
	return nil
}

func (l *SQLiteLogger) Answered(ctx context.Context, e Answered) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO item_answered
		 (id, session_id, learner_id, character, selected_choice, correct,
		  i_dont_know, latency_ms, score_before, score_after, occurred_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.SessionID, e.LearnerID, e.Character, e.SelectedChoice,
		boolToInt(e.Correct), boolToInt(e.IDontKnow), e.LatencyMS,
		e.ScoreBefore, e.ScoreAfter,
		e.OccurredAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("append answered event: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
