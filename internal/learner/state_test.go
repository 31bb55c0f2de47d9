package learner

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)

func TestApplyCorrectAdvances(t *testing.T) {
	s := ItemState{LearnerID: "l", Character: "和", Score: 50, Stage: 2}
	after := Apply(s, true, false, testNow)

	if after.Stage != 3 {
		t.Errorf("Stage = %d, want 3", after.Stage)
	}
	if after.Score != 60 {
		t.Errorf("Score = %d, want 60", after.Score)
	}
	wantDue := testNow.Add(7 * 24 * time.Hour)
	if after.NextDueAt == nil || !after.NextDueAt.Equal(wantDue) {
		t.Errorf("NextDueAt = %v, want %v", after.NextDueAt, wantDue)
	}
	if after.TotalCorrect != 1 || after.TotalWrong != 0 || after.TotalUnknown != 0 {
		t.Errorf("counters = %d/%d/%d, want 1/0/0", after.TotalCorrect, after.TotalWrong, after.TotalUnknown)
	}
}

func TestApplyUnknownIsIncorrect(t *testing.T) {
	s := ItemState{LearnerID: "l", Character: "好", Score: 10, Stage: 3}
	after := Apply(s, false, true, testNow)

	if after.Stage != 2 {
		t.Errorf("Stage = %d, want 2", after.Stage)
	}
	if after.Score != 0 {
		t.Errorf("Score = %d, want floor-clamped 0", after.Score)
	}
	if after.TotalUnknown != 1 || after.TotalWrong != 0 {
		t.Errorf("unknown should count separately from wrong: %d/%d", after.TotalUnknown, after.TotalWrong)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	s := ItemState{Score: 50, Stage: 2}
	_ = Apply(s, true, false, testNow)
	if s.Score != 50 || s.Stage != 2 {
		t.Error("Apply mutated its input")
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		name  string
		state ItemState
		want  Category
	}{
		{"never answered", ItemState{}, CategoryNew},
		{"all correct", ItemState{TotalCorrect: 3}, CategoryConfirm},
		{"one wrong", ItemState{TotalCorrect: 3, TotalWrong: 1}, CategoryRevise},
		{"one unknown", ItemState{TotalCorrect: 3, TotalUnknown: 1}, CategoryRevise},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Category(); got != tt.want {
				t.Errorf("Category = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDue(t *testing.T) {
	past := testNow.Add(-time.Hour)
	future := testNow.Add(time.Hour)
	tests := []struct {
		name  string
		state ItemState
		want  bool
	}{
		{"no due time", ItemState{}, true},
		{"past due", ItemState{NextDueAt: &past}, true},
		{"exactly due", ItemState{NextDueAt: &testNow}, true},
		{"not yet due", ItemState{NextDueAt: &future}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Due(testNow); got != tt.want {
				t.Errorf("Due = %v, want %v", got, tt.want)
			}
		})
	}
}
