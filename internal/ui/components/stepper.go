package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/focoleve/internal/ui/theme"
)

// Stepper selects an integer in [Min, Max] with the arrow keys.
type Stepper struct {
	Value    int
	Min, Max int
	Unit     string // singular, pluralised with "s" when Value != 1
	Suffix   string
}

// NewStepper creates a stepper clamped to [lo, hi].
func NewStepper(value, lo, hi int, unit, suffix string) Stepper {
	s := Stepper{Min: lo, Max: hi, Unit: unit, Suffix: suffix}
	s.Set(value)
	return s
}

// Set stores v clamped to the range.
func (s *Stepper) Set(v int) {
	s.Value = min(s.Max, max(s.Min, v))
}

// Update handles left/right and +/- keys.
func (s Stepper) Update(msg tea.Msg) (Stepper, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "left", "h", "-", "down", "j":
		s.Set(s.Value - 1)
	case "right", "l", "+", "=", "up", "k":
		s.Set(s.Value + 1)
	}
	return s, nil
}

// View renders a track and the labelled value.
func (s Stepper) View() string {
	var track string
	for v := s.Min; v <= s.Max; v++ {
		if v <= s.Value {
			track += lipgloss.NewStyle().Foreground(theme.Primary).Render("●")
		} else {
			track += lipgloss.NewStyle().Foreground(theme.Border).Render("○")
		}
	}

	unit := s.Unit
	if s.Value != 1 {
		unit += "s"
	}
	label := theme.Heading.Render(fmt.Sprintf("%d %s", s.Value, unit))
	if s.Suffix != "" {
		label += " " + theme.Body.Render(s.Suffix)
	}
	return "◂ " + track + " ▸\n\n" + label
}
