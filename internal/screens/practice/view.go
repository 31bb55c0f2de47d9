package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzimem/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.showQuitConfirm {
		return renderQuitConfirm(width)
	}
	switch s.phase {
	case phaseLoading:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Preparing your session...")
	case phaseFeedback:
		return s.renderFeedback(width)
	case phaseFinished:
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Session complete. Press Esc to go back.")
	default:
		return s.renderQuestion(width)
	}
}

// renderQuestion shows the character under test with its cue words and the
// choice list.
func (s *PracticeScreen) renderQuestion(width int) string {
	item := s.items[s.index]

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s", categoryLabel(string(item.Category))))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d",
			s.index+1,
			len(s.items),
			lipgloss.NewStyle().Foreground(theme.Success).Render("*"),
			s.totalCorrect,
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	// The character, big and centered.
	b.WriteString(theme.Hanzi.Width(width).Render(item.Character))
	b.WriteString("\n\n")

	// Cue words pin down the intended reading for polyphonic characters.
	if len(item.ExampleWords) > 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(strings.Join(item.ExampleWords, "  ")))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Select (1-5) or use arrows + Enter"))

	return b.String()
}

// renderFeedback shows the graded answer with the score movement.
func (s *PracticeScreen) renderFeedback(width int) string {
	item := s.items[s.index]
	out := s.lastOutcome

	var b strings.Builder
	b.WriteString("\n\n")

	if out != nil && out.Correct {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("Correct!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Not quite"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("%s is read %s", item.Character, item.CorrectReading)))
	}

	if out != nil {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("Score %d → %d", out.ScoreBefore, out.ScoreAfter)))
	}

	if out != nil && out.Missed != nil {
		m := out.Missed
		var lines []string
		if m.Gloss != "" {
			lines = append(lines, m.Gloss)
		}
		if m.Radical != "" {
			lines = append(lines, fmt.Sprintf("radical %s, %d strokes", m.Radical, m.StrokeCount))
		}
		if m.ExampleSentence != "" {
			lines = append(lines, m.ExampleSentence)
		}
		if len(lines) > 0 {
			b.WriteString("\n\n")
			card := lipgloss.NewStyle().
				Width(min(width-8, 60)).
				Foreground(theme.Text).
				Render(strings.Join(lines, "\n"))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press any key to continue..."))

	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("End session early?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Your progress is already saved."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, end session"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}

func categoryLabel(category string) string {
	switch category {
	case "new":
		return "New character"
	case "confirm":
		return "Confirming"
	case "revise":
		return "Revising"
	default:
		return "Practice"
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
