package mentor

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	chat "github.com/abhisek/focoleve/internal/mentor"
	"github.com/abhisek/focoleve/internal/plan"
	"github.com/abhisek/focoleve/internal/screen"
)

type mockAssistant struct {
	reply   string
	err     error
	history []chat.Message
	message string
}

func (m *mockAssistant) GenerateSchedule(context.Context, plan.Profile) ([]plan.Draft, error) {
	return nil, nil
}
func (m *mockAssistant) CompletionMessage(context.Context, []string) (string, error) {
	return "", nil
}
func (m *mockAssistant) Reply(_ context.Context, message string, history []chat.Message) (string, error) {
	m.message = message
	m.history = history
	return m.reply, m.err
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// runReply executes the reply command from a send batch.
func runReply(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok || len(batch) == 0 {
		t.Fatal("expected a batch")
	}
	return batch[len(batch)-1]()
}

func TestMentor_Send(t *testing.T) {
	a := &mockAssistant{reply: "Breathe. One topic at a time."}
	log := chat.NewChat()
	m := New(screen.Deps{Assistant: a, Chat: log})

	m.input.SetValue("I'm anxious about math")
	_, cmd := m.Update(specialKey(tea.KeyEnter))

	if !log.InFlight() {
		t.Fatal("expected a reply in flight")
	}
	if m.input.Value() != "" {
		t.Error("expected input to be cleared")
	}
	if !strings.Contains(m.View(80, 24), "I'm anxious about math") {
		t.Error("expected user message in view")
	}

	msg := runReply(t, cmd)
	if _, ok := msg.(replyDoneMsg); !ok {
		t.Fatalf("expected replyDoneMsg, got %T", msg)
	}
	m.Update(msg)

	if log.InFlight() {
		t.Error("expected in-flight to clear")
	}
	msgs := log.Messages()
	if len(msgs) != 3 {
		t.Fatalf("messages = %d, want 3", len(msgs))
	}
	if msgs[2].Text != "Breathe. One topic at a time." {
		t.Errorf("reply = %q", msgs[2].Text)
	}
	if a.message != "I'm anxious about math" {
		t.Errorf("assistant got %q", a.message)
	}
	if len(a.history) != 1 || a.history[0].Text != chat.Greeting {
		t.Errorf("history = %+v", a.history)
	}
}

func TestMentor_BlankIsIgnored(t *testing.T) {
	log := chat.NewChat()
	m := New(screen.Deps{Assistant: &mockAssistant{}, Chat: log})

	m.input.SetValue("   ")
	_, cmd := m.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no command for blank input")
	}
	if log.Len() != 1 {
		t.Errorf("messages = %d, want 1", log.Len())
	}
}

func TestMentor_SecondSendWhileWaiting(t *testing.T) {
	log := chat.NewChat()
	m := New(screen.Deps{Assistant: &mockAssistant{reply: "ok"}, Chat: log})

	m.input.SetValue("first")
	m.Update(specialKey(tea.KeyEnter))
	m.input.SetValue("second")
	_, cmd := m.Update(specialKey(tea.KeyEnter))

	if cmd != nil {
		t.Error("expected second send to be rejected")
	}
	if m.input.Value() != "second" {
		t.Error("rejected text must stay in the input")
	}
	if log.Len() != 2 {
		t.Errorf("messages = %d, want 2", log.Len())
	}
}

func TestMentor_FailureFallsBack(t *testing.T) {
	log := chat.NewChat()
	m := New(screen.Deps{Assistant: &mockAssistant{err: errors.New("down")}, Chat: log})

	m.input.SetValue("help")
	_, cmd := m.Update(specialKey(tea.KeyEnter))
	runReply(t, cmd)

	msgs := log.Messages()
	if got := msgs[len(msgs)-1]; got.Role != chat.RoleAssistant || got.Text != chat.Fallback {
		t.Errorf("last message = %+v", got)
	}
}

func TestMentor_ConversationSurvivesReopen(t *testing.T) {
	log := chat.NewChat()
	deps := screen.Deps{Assistant: &mockAssistant{reply: "Nice!"}, Chat: log}

	m := New(deps)
	m.input.SetValue("hello")
	_, cmd := m.Update(specialKey(tea.KeyEnter))
	runReply(t, cmd)

	again := New(deps)
	view := again.View(80, 24)
	if !strings.Contains(view, "hello") || !strings.Contains(view, "Nice!") {
		t.Error("expected earlier turns in a reopened chat")
	}
}

func TestMentor_Title(t *testing.T) {
	m := New(screen.Deps{})
	if m.Title() != "🧘 Study Mentor" {
		t.Errorf("Title = %q", m.Title())
	}
	if !strings.Contains(m.View(80, 24), "Hi! I'm your mentor") {
		t.Error("expected greeting in view")
	}
}
