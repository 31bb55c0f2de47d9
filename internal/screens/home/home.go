// Package home is the landing screen: a menu into practice and progress.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hanzimem/internal/learner"
	"github.com/abhisek/hanzimem/internal/router"
	"github.com/abhisek/hanzimem/internal/screen"
	"github.com/abhisek/hanzimem/internal/screens/practice"
	"github.com/abhisek/hanzimem/internal/screens/progress"
	"github.com/abhisek/hanzimem/internal/screens/switchlearner"
	sess "github.com/abhisek/hanzimem/internal/session"
	"github.com/abhisek/hanzimem/internal/ui/components"
	"github.com/abhisek/hanzimem/internal/ui/theme"
)

// HomeScreen implements screen.Screen for the main menu.
type HomeScreen struct {
	menu       components.Menu
	controller *sess.Controller
	states     learner.Repository
	learner    string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(controller *sess.Controller, states learner.Repository, learnerID string) *HomeScreen {
	s := &HomeScreen{
		controller: controller,
		states:     states,
		learner:    learnerID,
	}
	s.menu = components.NewMenu([]components.MenuItem{
		{
			Label: "Start practice",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: practice.New(s.controller, s.learner),
					}
				}
			},
		},
		{
			Label: "Progress",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: progress.New(s.states, s.learner),
					}
				}
			},
		},
		{
			Label: "Switch learner",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: switchlearner.New(s.learner),
					}
				}
			},
		},
		{
			Label: "Quit",
			Action: func() tea.Cmd {
				return tea.Quit
			},
		},
	})
	return s
}

func (s *HomeScreen) Init() tea.Cmd {
	return nil
}

func (s *HomeScreen) Title() string {
	return "Home"
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *HomeScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(width).Render("汉字 · pinyin recall"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Daily character practice for " + s.learner))
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))
	return b.String()
}
