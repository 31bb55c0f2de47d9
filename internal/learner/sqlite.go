package learner

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SQLiteRepository stores learner item state in the `character_bank` table.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository wraps an open database. The schema is owned by the
// store package's migration.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const stateColumns = `learner_id, character, score, stage, next_due_at,
	first_seen_at, last_answered_at, total_correct, total_wrong, total_unknown`

func (r *SQLiteRepository) Get(ctx context.Context, learnerID, character string) (*ItemState, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+stateColumns+` FROM character_bank WHERE learner_id = ? AND character = ?`,
		learnerID, character)
	state, err := scanState(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get state (%s, %s): %w", learnerID, character, err)
	}
	return state, nil
}

func (r *SQLiteRepository) EnsureSeen(ctx context.Context, learnerID, character string, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO character_bank
		 (learner_id, character, score, stage, first_seen_at, last_answered_at)
		 VALUES (?, ?, 0, 0, ?, ?)`,
		learnerID, character, now.UTC().Format(time.RFC3339Nano), "")
	if err != nil {
		return fmt.Errorf("ensure seen (%s, %s): %w", learnerID, character, err)
	}
	return nil
}

func (r *SQLiteRepository) DueBefore(ctx context.Context, learnerID string, now time.Time) ([]*ItemState, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+stateColumns+` FROM character_bank
		 WHERE learner_id = ? AND (next_due_at IS NULL OR next_due_at <= ?)
		 ORDER BY score ASC, COALESCE(next_due_at, 0) ASC, character ASC`,
		learnerID, now.UTC().Unix())
	if err != nil {
		return nil, fmt.Errorf("due before: %w", err)
	}
	defer rows.Close()

	var out []*ItemState
	for rows.Next() {
		state, err := scanState(rows)
		if err != nil {
			return nil, fmt.Errorf("scan due row: %w", err)
		}
		out = append(out, state)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) SeenCharacters(ctx context.Context, learnerID string) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT character FROM character_bank WHERE learner_id = ?`, learnerID)
	if err != nil {
		return nil, fmt.Errorf("seen characters: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	for rows.Next() {
		var ch string
		if err := rows.Scan(&ch); err != nil {
			return nil, err
		}
		seen[ch] = true
	}
	return seen, rows.Err()
}

// ApplyAnswer runs the read-compute-write cycle inside one transaction so a
// failure can never leave score and stage out of step.
func (r *SQLiteRepository) ApplyAnswer(ctx context.Context, learnerID, character string, correct, unknown bool, now time.Time) (*AnswerResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin answer tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+stateColumns+` FROM character_bank WHERE learner_id = ? AND character = ?`,
		learnerID, character)
	before, err := scanState(row)
	if err == sql.ErrNoRows {
		created := NewState(learnerID, character, now)
		before = &created
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO character_bank
			 (learner_id, character, score, stage, first_seen_at, last_answered_at)
			 VALUES (?, ?, 0, 0, ?, ?)`,
			learnerID, character, now.UTC().Format(time.RFC3339Nano), ""); err != nil {
			return nil, fmt.Errorf("create state row: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("read state row: %w", err)
	}

	after := Apply(*before, correct, unknown, now)

	_, err = tx.ExecContext(ctx,
		`UPDATE character_bank
		 SET score = ?, stage = ?, next_due_at = ?, last_answered_at = ?,
		     total_correct = ?, total_wrong = ?, total_unknown = ?
		 WHERE learner_id = ? AND character = ?`,
		after.Score, after.Stage, after.NextDueAt.UTC().Unix(),
		after.LastAnsweredAt.UTC().Format(time.RFC3339Nano),
		after.TotalCorrect, after.TotalWrong, after.TotalUnknown,
		learnerID, character)
	if err != nil {
		return nil, fmt.Errorf("write state row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit answer: %w", err)
	}
	return &AnswerResult{Before: *before, After: after}, nil
}

func (r *SQLiteRepository) CountWithScoreAtLeast(ctx context.Context, learnerID string, minScore int) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM character_bank WHERE learner_id = ? AND score >= ?`,
		learnerID, minScore).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count by score: %w", err)
	}
	return n, nil
}

// DeleteLearner removes every state row for the learner and reports how
// many were deleted.
func (r *SQLiteRepository) DeleteLearner(ctx context.Context, learnerID string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM character_bank WHERE learner_id = ?`, learnerID)
	if err != nil {
		return 0, fmt.Errorf("delete learner %q: %w", learnerID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanState(row rowScanner) (*ItemState, error) {
	var (
		s            ItemState
		nextDue      sql.NullInt64
		firstSeen    string
		lastAnswered string
	)
	err := row.Scan(&s.LearnerID, &s.Character, &s.Score, &s.Stage, &nextDue,
		&firstSeen, &lastAnswered, &s.TotalCorrect, &s.TotalWrong, &s.TotalUnknown)
	if err != nil {
		return nil, err
	}
	if nextDue.Valid {
		t := time.Unix(nextDue.Int64, 0).UTC()
		s.NextDueAt = &t
	}
	if firstSeen != "" {
		if t, err := time.Parse(time.RFC3339Nano, firstSeen); err == nil {
			s.FirstSeenAt = t
		}
	}
	if lastAnswered != "" {
		if t, err := time.Parse(time.RFC3339Nano, lastAnswered); err == nil {
			s.LastAnsweredAt = t
		}
	}
	return &s, nil
}
