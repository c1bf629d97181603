package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/focoleve/internal/ui/layout"
)

// Screen defines the interface for all application screens.
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

// KeyHintProvider is an optional interface for screens that supply their
// own footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeCapturer is implemented by screens that use Esc themselves, for
// example to close a dialog, while CapturesEscape returns true. Otherwise
// Esc pops the screen.
type EscapeCapturer interface {
	CapturesEscape() bool
}

// BadgeProvider is implemented by screens that show a badge at the right of
// the header.
type BadgeProvider interface {
	Badge() string
}
