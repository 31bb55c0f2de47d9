package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hanzimem/internal/ui/layout"
)

// Screen is one routable view. The root model owns the header and footer;
// a screen only renders the space between them.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider lets a screen put its own key hints in the footer instead
// of the defaults.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
