// Package switchlearner is a small form screen for changing the active
// learner profile without restarting the program.
package switchlearner

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzimem/internal/router"
	"github.com/abhisek/hanzimem/internal/screen"
	"github.com/abhisek/hanzimem/internal/ui/components"
	"github.com/abhisek/hanzimem/internal/ui/layout"
	"github.com/abhisek/hanzimem/internal/ui/theme"
)

// ChosenMsg announces the new learner name. The root model handles it and
// rebuilds the screen stack for the new profile.
type ChosenMsg struct {
	Name string
}

// Screen implements screen.Screen for the learner-name form.
type Screen struct {
	input   components.TextInput
	current string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the form pre-labelled with the current learner.
func New(current string) *Screen {
	return &Screen{
		input:   components.NewTextInput("learner name", false, 32),
		current: current,
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *Screen) Title() string {
	return "Switch learner"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Switch"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		name := strings.TrimSpace(s.input.Value())
		if name == "" {
			s.input.Submit(false)
			return s, nil
		}
		s.input.Submit(true)
		return s, tea.Batch(
			func() tea.Msg { return ChosenMsg{Name: name} },
			func() tea.Msg { return router.PopScreenMsg{} },
		)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(width).Render("Switch learner"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Currently practising as " + s.current))
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.input.View()))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Hint.Render("Progress is tracked per learner.")))
	return b.String()
}
