package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/abhisek/hanzimem/internal/store"
)

func TestSQLiteLoggerRoundTrip(t *testing.T) {
	st, err := store.Open("file::memory:?cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	l := NewSQLiteLogger(st.DB())
	ctx := context.Background()
	now := time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)

	err = l.Presented(ctx, Presented{
		SessionID:         "s1",
		LearnerID:         "l1",
		Character:         "和",
		CorrectChoice:     "hé",
		Choices:           []string{"hé", "hē", "hǔ", "hè"},
		DistractorSources: []string{"same_syllable", "same_tone", "frequency_band"},
		SelectionReason:   "due",
		OccurredAt:        now,
	})
	require.NoError(t, err)

	err = l.Answered(ctx, Answered{
		SessionID:      "s1",
		LearnerID:      "l1",
		Character:      "和",
		SelectedChoice: "hé",
		Correct:        true,
		LatencyMS:      1800,
		ScoreBefore:    50,
		ScoreAfter:     60,
		OccurredAt:     now,
	})
	require.NoError(t, err)

	var n int
	require.NoError(t, st.DB().QueryRow(`SELECT COUNT(*) FROM item_presented`).Scan(&n))
	require.Equal(t, 1, n)

	var scoreBefore, scoreAfter, correct int
	err = st.DB().QueryRow(
		`SELECT score_before, score_after, correct FROM item_answered WHERE session_id = 's1'`).
		Scan(&scoreBefore, &scoreAfter, &correct)
	require.NoError(t, err)
	require.Equal(t, 50, scoreBefore)
	require.Equal(t, 60, scoreAfter)
	require.Equal(t, 1, correct)
}

func TestSQLiteLoggerAssignsIDs(t *testing.T) {
	st, err := store.Open("file::memory:?cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	l := NewSQLiteLogger(st.DB())
	for i := 0; i < 2; i++ {
		err = l.Presented(context.Background(), Presented{
			SessionID: "s1", LearnerID: "l1", Character: "好",
			CorrectChoice: "hǎo", OccurredAt: time.Now(),
		})
		require.NoError(t, err, "generated ids must not collide")
	}
}
