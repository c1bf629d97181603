// Package layout draws the frame shared by every screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/focoleve/internal/ui/theme"
)

const (
	AppName = "FOCO LEVE"
	Tagline = "Study without weight, one day at a time."

	MinWidth  = 60
	MinHeight = 20

	// WideWidth is the width from which the dashboard uses two columns.
	WideWidth = 100
)

// KeyHint is one entry of the footer, e.g. {"space", "toggle"}.
type KeyHint struct {
	Key         string
	Description string
}

var (
	bar = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)

	brand   = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	hintKey = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	hintDoc = lipgloss.NewStyle().Foreground(theme.TextDim)
)

func IsWide(width int) bool { return width >= WideWidth }

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks for a bigger terminal, centered in the current one.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small.\n\nPlease resize to at least %d x %d\n\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Body.Render(msg))
}

// RenderHeader draws the app name, the screen title in the middle and an
// optional badge such as "2h/day" on the right.
func RenderHeader(title, badge string, width int) string {
	if badge != "" {
		badge = theme.Badge.Render(badge)
	}
	line := spread(width-4, brand.Render(" "+AppName), theme.Body.Render(title), badge)
	return bar.Width(width).Render(line)
}

// RenderFooter draws the key hints.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = hintKey.Render(h.Key) + " " + hintDoc.Render(h.Description)
	}
	return bar.Width(width).Render(" " + strings.Join(parts, "   "))
}

// RenderFrame stacks header, content and footer; content gets the height
// left over.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := max(0, height-lipgloss.Height(header)-lipgloss.Height(footer))
	body := lipgloss.NewStyle().Width(width).Height(rest).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// spread lays left, mid and right across width with mid centered as far as
// the sides allow. At least one space separates each part.
func spread(width int, left, mid, right string) string {
	lw, mw, rw := lipgloss.Width(left), lipgloss.Width(mid), lipgloss.Width(right)
	gapL := max(1, (width-mw)/2-lw)
	gapR := max(1, width-lw-gapL-mw-rw)
	return left + strings.Repeat(" ", gapL) + mid + strings.Repeat(" ", gapR) + right
}
