// Package mentor is the chat screen with the study mentor.
package mentor

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	chat "github.com/abhisek/focoleve/internal/mentor"
	"github.com/abhisek/focoleve/internal/screen"
	"github.com/abhisek/focoleve/internal/ui/components"
	"github.com/abhisek/focoleve/internal/ui/layout"
	"github.com/abhisek/focoleve/internal/ui/theme"
)

// replyDoneMsg is sent after the pending turn has been completed on the chat.
type replyDoneMsg struct{}

// MentorScreen shows the conversation and an input line.
type MentorScreen struct {
	deps    screen.Deps
	input   components.TextInput
	spinner spinner.Model
}

var _ screen.Screen = (*MentorScreen)(nil)
var _ screen.KeyHintProvider = (*MentorScreen)(nil)

// New creates the chat screen over deps.Chat, so the conversation survives
// closing and reopening it.
func New(deps screen.Deps) *MentorScreen {
	deps = deps.WithDefaults()
	return &MentorScreen{
		deps:  deps,
		input: components.NewTextInput("Say how you're feeling...", 500),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Ellipsis),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.TextDim)),
		),
	}
}

func (m *MentorScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{m.input.Init()}
	if m.deps.Chat.InFlight() {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m *MentorScreen) Title() string {
	return "🧘 Study Mentor"
}

func (m *MentorScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m *MentorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyDoneMsg:
		return m, nil

	case spinner.TickMsg:
		if !m.deps.Chat.InFlight() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			return m, m.send()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send starts a turn. The reply is written to the chat by the command itself
// so it is kept even if the screen is closed meanwhile.
func (m *MentorScreen) send() tea.Cmd {
	text := m.input.Value()
	log := m.deps.Chat
	if !log.Begin(text) {
		return nil
	}
	m.input.Reset()

	history := log.History()
	a, logger := m.deps.Assistant, m.deps.Logger
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		reply, err := a.Reply(context.Background(), text, history)
		if err != nil {
			logger.Warn("mentor reply failed", zap.Error(err))
		}
		log.Complete(reply, err)
		return replyDoneMsg{}
	})
}

func (m *MentorScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	bubbleWidth := cw * 4 / 5

	var rows []string
	for _, msg := range m.deps.Chat.Messages() {
		rows = append(rows, renderMessage(msg, cw, bubbleWidth))
	}
	if m.deps.Chat.InFlight() {
		rows = append(rows, theme.BubbleMentor.Render(m.spinner.View()))
	}

	inputLine := theme.Card.Width(cw).Padding(0, 1).Render(m.input.View())
	available := max(1, height-lipgloss.Height(inputLine)-1)

	visible := tail(strings.Join(rows, "\n"), available)
	content := lipgloss.NewStyle().Width(cw).Height(available).
		AlignVertical(lipgloss.Bottom).Render(visible)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content+"\n"+inputLine)
}

func renderMessage(msg chat.Message, width, bubbleWidth int) string {
	if msg.Role == chat.RoleUser {
		b := theme.BubbleUser.MaxWidth(bubbleWidth).Render(wrap(msg.Text, bubbleWidth-2))
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, b)
	}
	return theme.BubbleMentor.Render(wrap(msg.Text, bubbleWidth-4))
}

func wrap(s string, width int) string {
	width = max(10, width)
	if lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

// tail keeps the last n lines so the newest messages stay visible.
func tail(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
