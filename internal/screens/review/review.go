// Package review shows the end-of-session recap: totals plus the characters
// the learner missed, with the metadata needed to study them.
package review

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzimem/internal/screen"
	sess "github.com/abhisek/hanzimem/internal/session"
	"github.com/abhisek/hanzimem/internal/ui/layout"
	"github.com/abhisek/hanzimem/internal/ui/theme"
)

// ReviewScreen implements screen.Screen for the post-session recap.
type ReviewScreen struct {
	missed   []sess.MissedItem
	answered int
	correct  int
	selected int
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New creates a ReviewScreen.
func New(missed []sess.MissedItem, answered, correct int) *ReviewScreen {
	return &ReviewScreen{
		missed:   missed,
		answered: answered,
		correct:  correct,
	}
}

func (s *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (s *ReviewScreen) Title() string {
	return "Session Recap"
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
	if len(s.missed) > 1 {
		hints = append([]layout.KeyHint{{Key: "↑↓", Description: "Browse missed"}}, hints...)
	}
	return hints
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.missed)-1 {
			s.selected++
		}
	}
	return s, nil
}

func (s *ReviewScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	pct := 0
	if s.answered > 0 {
		pct = 100 * s.correct / s.answered
	}
	b.WriteString(theme.Title.Width(width).Render("Session complete"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d answered · %d correct (%d%%)", s.answered, s.correct, pct)))
	b.WriteString("\n\n")

	if len(s.missed) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Render("Nothing missed. 很棒!"))
		return b.String()
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("Missed characters (%d)", len(s.missed))))
	b.WriteString("\n\n")

	// Missed list with the selected one expanded.
	for i, m := range s.missed {
		line := fmt.Sprintf("%s  %s", m.Character, m.CorrectReading)
		if i == s.selected {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ "+line)))
			b.WriteString("\n")
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderDetail(m, width)))
		} else {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Text).Render("  "+line)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (s *ReviewScreen) renderDetail(m sess.MissedItem, width int) string {
	var lines []string
	if m.Gloss != "" {
		lines = append(lines, m.Gloss)
	}
	if m.GlossZh != "" {
		lines = append(lines, m.GlossZh)
	}
	if m.Radical != "" {
		lines = append(lines, fmt.Sprintf("radical %s · %d strokes", m.Radical, m.StrokeCount))
	}
	if len(m.ExampleWords) > 0 {
		lines = append(lines, strings.Join(m.ExampleWords, "  "))
	}
	if m.ExampleSentence != "" {
		lines = append(lines, m.ExampleSentence)
	}
	if len(lines) == 0 {
		return ""
	}
	w := width - 20
	if w > 56 {
		w = 56
	}
	if w < 20 {
		w = 20
	}
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(w).
		PaddingLeft(4).
		Render(strings.Join(lines, "\n"))
}
