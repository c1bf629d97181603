package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/focoleve/internal/ui/theme"
)

// ProgressBar draws a track filled to a whole percentage.
type ProgressBar struct {
	Percent int
	Width   int
	// Caption is drawn after the track, e.g. "3/5".
	Caption string
}

// NewProgressBar returns a bar of the given total width.
func NewProgressBar(percent, width int) ProgressBar {
	return ProgressBar{Percent: percent, Width: width}
}

// WithCaption returns a copy of p with caption set.
func (p ProgressBar) WithCaption(caption string) ProgressBar {
	p.Caption = caption
	return p
}

// View renders the bar. The result is exactly Width cells wide unless Width
// is too small for a track of four cells.
func (p ProgressBar) View() string {
	pct := min(100, max(0, p.Percent))

	var caption string
	if p.Caption != "" {
		caption = " " + theme.Hint.Render(p.Caption)
	}
	track := max(4, p.Width-lipgloss.Width(caption))
	filled := (track*pct + 50) / 100

	return theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", track-filled)) +
		caption
}
