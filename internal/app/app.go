// Package app assembles the terminal UI: root model, screen router, and
// program lifecycle.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzimem/internal/learner"
	"github.com/abhisek/hanzimem/internal/router"
	"github.com/abhisek/hanzimem/internal/screen"
	"github.com/abhisek/hanzimem/internal/screens/home"
	"github.com/abhisek/hanzimem/internal/screens/switchlearner"
	sess "github.com/abhisek/hanzimem/internal/session"
	"github.com/abhisek/hanzimem/internal/ui/layout"
)

// Deps carries everything the UI needs.
type Deps struct {
	Controller *sess.Controller
	States     learner.Repository
	Learner    string
}

// dueCountMsg refreshes the header's due counter.
type dueCountMsg int

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   Deps
	router *router.Router
	width  int
	height int
	due    int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(deps Deps) AppModel {
	homeScreen := home.New(deps.Controller, deps.States, deps.Learner)
	return AppModel{
		deps:   deps,
		router: router.New(homeScreen),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.refreshDueCount()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dueCountMsg:
		m.due = int(msg)
		return m, nil

	case switchlearner.ChosenMsg:
		// Rebuild the stack for the new profile; the pending pop becomes a
		// no-op at the bottom of the fresh stack.
		m.deps.Learner = msg.Name
		m.router = router.New(home.New(m.deps.Controller, m.deps.States, m.deps.Learner))
		return m, m.refreshDueCount()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				// Screens that run their own esc flow (quit confirmation)
				// get the key instead.
				if capturer, ok := m.router.Active().(escCapturer); !ok || !capturer.CapturesEsc() {
					return m, tea.Batch(
						func() tea.Msg { return router.PopScreenMsg{} },
						m.refreshDueCount(),
					)
				}
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// escCapturer marks screens that consume the esc key themselves.
type escCapturer interface {
	CapturesEsc() bool
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.deps.Learner, m.due, m.width)

	footerHints := m.footerHints(active)
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if provider, ok := active.(screen.KeyHintProvider); ok {
		if hints := provider.KeyHints(); hints != nil {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) refreshDueCount() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		due, err := deps.States.DueBefore(context.Background(), deps.Learner, time.Now())
		if err != nil {
			return dueCountMsg(0)
		}
		return dueCountMsg(len(due))
	}
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
