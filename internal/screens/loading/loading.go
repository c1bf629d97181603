// Package loading shows a spinner while a background job runs, then hands
// over to the next screen.
package loading

import (
	"context"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/focoleve/internal/router"
	"github.com/abhisek/focoleve/internal/screen"
	"github.com/abhisek/focoleve/internal/ui/theme"
)

// Texts shown while the first schedule is generated.
const (
	ScheduleHeadline = "Organizing your studies..."
	ScheduleDetail   = "We're creating a light, focused plan for you."
)

type doneMsg struct {
	err error
}

// LoadingScreen runs job once and replaces itself with next(err).
type LoadingScreen struct {
	headline string
	detail   string
	job      func(ctx context.Context) error
	next     func(err error) screen.Screen
	spinner  spinner.Model
	done     bool
}

var _ screen.Screen = (*LoadingScreen)(nil)

// New creates a loading screen for job.
func New(headline, detail string, job func(ctx context.Context) error, next func(err error) screen.Screen) *LoadingScreen {
	return &LoadingScreen{
		headline: headline,
		detail:   detail,
		job:      job,
		next:     next,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
}

func (l *LoadingScreen) Init() tea.Cmd {
	job := l.job
	return tea.Batch(l.spinner.Tick, func() tea.Msg {
		return doneMsg{err: job(context.Background())}
	})
}

func (l *LoadingScreen) Title() string { return "" }

func (l *LoadingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		if l.done {
			return l, nil
		}
		l.done = true
		next := l.next(msg.err)
		return l, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case spinner.TickMsg:
		if l.done {
			return l, nil
		}
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(msg)
		return l, cmd
	}
	return l, nil
}

func (l *LoadingScreen) View(width, height int) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		l.spinner.View(),
		"",
		theme.Heading.Render(l.headline),
		theme.Hint.Render(l.detail),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
