package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/focoleve/internal/ui/theme"
)

// Button is a call to action bound to keys. Keys use the names reported by
// tea.KeyPressMsg.String ("enter", "space", "esc").
type Button struct {
	Label    string
	Keys     []string
	Disabled bool
}

// NewButton returns a button that fires on any of keys.
func NewButton(label string, keys ...string) Button {
	return Button{Label: label, Keys: keys}
}

// Pressed reports whether msg is one of the button's keys.
func (b Button) Pressed(msg tea.Msg) bool {
	if b.Disabled {
		return false
	}
	k, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return false
	}
	for _, want := range b.Keys {
		if k.String() == want {
			return true
		}
	}
	return false
}

// View renders the label followed by its first key.
func (b Button) View() string {
	if b.Disabled {
		return theme.ButtonInactive.Render(b.Label)
	}
	out := theme.ButtonActive.Render("▸ " + b.Label)
	if len(b.Keys) > 0 {
		out += " " + theme.Hint.Render(keyName(b.Keys[0]))
	}
	return out
}

func keyName(k string) string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(k[:1]) + k[1:]
}
