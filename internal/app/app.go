package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/focoleve/internal/assistant"
	"github.com/abhisek/focoleve/internal/mentor"
	"github.com/abhisek/focoleve/internal/plan"
	"github.com/abhisek/focoleve/internal/pomodoro"
	"github.com/abhisek/focoleve/internal/router"
	"github.com/abhisek/focoleve/internal/screen"
	"github.com/abhisek/focoleve/internal/screens/dashboard"
	"github.com/abhisek/focoleve/internal/screens/onboarding"
	"github.com/abhisek/focoleve/internal/ui/layout"
)

// Options configures the application's dependencies.
type Options struct {
	Board     *plan.Board
	Assistant assistant.Assistant
	Chat      *mentor.Chat
	Timer     pomodoro.Durations
	Logger    *zap.Logger
	Now       func() time.Time
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	deps   screen.Deps
	width  int
	height int
}

// newAppModel opens the dashboard when a profile is already stored and the
// onboarding form otherwise.
func newAppModel(opts Options) AppModel {
	deps := screen.Deps{
		Board:     opts.Board,
		Assistant: opts.Assistant,
		Chat:      opts.Chat,
		Timer:     opts.Timer,
		Logger:    opts.Logger,
		Now:       opts.Now,
	}.WithDefaults()

	var newDashboard, newOnboarding func() screen.Screen
	newDashboard = func() screen.Screen { return dashboard.New(deps, newOnboarding) }
	newOnboarding = func() screen.Screen { return onboarding.New(deps, newDashboard) }

	start := newOnboarding
	if deps.Board.HasProfile() {
		start = newDashboard
	}
	return AppModel{
		router: router.New(start()),
		deps:   deps,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.EscapeCapturer); ok && c.CapturesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the frame for the current size. It is empty until the first
// WindowSizeMsg.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, badge := "", ""
	if active != nil {
		title = active.Title()
	}
	if b, ok := active.(screen.BadgeProvider); ok {
		badge = b.Badge()
	}

	header := layout.RenderHeader(title, badge, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(0, m.height-headerHeight-footerHeight)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
