// Package progress shows the learner's standing: how many characters they
// have met, how well they know them, and what is waiting for review.
package progress

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzimem/internal/learner"
	"github.com/abhisek/hanzimem/internal/screen"
	"github.com/abhisek/hanzimem/internal/ui/components"
	"github.com/abhisek/hanzimem/internal/ui/theme"
)

// Stats is the aggregated view rendered by the screen.
type Stats struct {
	Seen     int
	New      int
	Confirm  int
	Revise   int
	DueNow   int
	Mastered int // score at or above the solid-recall threshold
}

const masteredScore = 60

// statsMsg delivers the loaded stats.
type statsMsg struct {
	Stats Stats
	Err   error
}

// ProgressScreen implements screen.Screen for learner statistics.
type ProgressScreen struct {
	states  learner.Repository
	learner string
	stats   *Stats
	errMsg  string
}

var _ screen.Screen = (*ProgressScreen)(nil)

// New creates a ProgressScreen.
func New(states learner.Repository, learnerID string) *ProgressScreen {
	return &ProgressScreen{states: states, learner: learnerID}
}

func (s *ProgressScreen) Init() tea.Cmd {
	return s.load()
}

func (s *ProgressScreen) Title() string {
	return "Progress"
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(statsMsg); ok {
		if m.Err != nil {
			s.errMsg = m.Err.Error()
		} else {
			st := m.Stats
			s.stats = &st
		}
	}
	return s, nil
}

func (s *ProgressScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n  Error: " + s.errMsg)
	}
	if s.stats == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Loading...")
	}

	st := s.stats
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Your characters"))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value int
	}{
		{"Seen", st.Seen},
		{"Still new", st.New},
		{"Confirming", st.Confirm},
		{"Revising", st.Revise},
		{"Due for review", st.DueNow},
		{"Solid recall", st.Mastered},
	}
	for _, r := range rows {
		line := fmt.Sprintf("%-16s %4d", r.label, r.value)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
		b.WriteString("\n")
	}

	if st.Seen > 0 {
		b.WriteString("\n")
		bar := components.NewProgressBar("Recall", float64(st.Mastered)/float64(st.Seen), true, 44)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *ProgressScreen) load() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		now := time.Now()

		seen, err := s.states.SeenCharacters(ctx, s.learner)
		if err != nil {
			return statsMsg{Err: err}
		}

		var st Stats
		st.Seen = len(seen)
		for ch := range seen {
			state, err := s.states.Get(ctx, s.learner, ch)
			if err != nil {
				continue
			}
			switch state.Category() {
			case learner.CategoryNew:
				st.New++
			case learner.CategoryConfirm:
				st.Confirm++
			case learner.CategoryRevise:
				st.Revise++
			}
			if state.Due(now) {
				st.DueNow++
			}
		}

		mastered, err := s.states.CountWithScoreAtLeast(ctx, s.learner, masteredScore)
		if err != nil {
			return statsMsg{Err: err}
		}
		st.Mastered = mastered

		return statsMsg{Stats: st}
	}
}
