package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/focoleve/internal/ui/theme"
)

// ContentWidth returns the inner width used for single-column screens.
func ContentWidth(frameWidth int) int {
	return min(72, max(20, frameWidth-6))
}

// Card wraps content in a rounded card at the given outer width.
func Card(title, content string, width int) string {
	body := content
	if title != "" {
		body = theme.Heading.Render(title) + "\n\n" + content
	}
	return theme.Card.Width(width).Render(body)
}

// ModalBox renders a centered dialog over the full area.
func ModalBox(content string, width, height int) string {
	box := theme.Modal.Width(min(56, max(30, width-10))).Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
