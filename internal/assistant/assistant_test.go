package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/focoleve/internal/llm"
	"github.com/abhisek/focoleve/internal/mentor"
	"github.com/abhisek/focoleve/internal/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const sevenTasks = `{"tasks":[
	{"subject":"Math","topic":"Fractions","date":"2025-05-26"},
	{"subject":"History","topic":"Ancient Rome","date":"2025-05-26"},
	{"subject":"Math","topic":"Equations","date":"2025-05-27"},
	{"subject":"History","topic":"Middle Ages","date":"2025-05-28"},
	{"subject":"Math","topic":"Geometry","date":"2025-05-29"},
	{"subject":"History","topic":"Renaissance","date":"2025-05-30"},
	{"subject":"Math","topic":"Review","date":"2025-05-31"}
]}`

func testProfile() plan.Profile {
	return plan.Profile{Subjects: []string{"Math", "History"}, ExamDate: "2025-06-01", StudyHours: 2}
}

func TestGenerateSchedule(t *testing.T) {
	fake := llm.NewFake(llm.Canned{JSON: json.RawMessage(sevenTasks)})
	a := New(fake)

	drafts, err := a.GenerateSchedule(context.Background(), testProfile())
	require.NoError(t, err)
	require.Len(t, drafts, 7)
	assert.Equal(t, plan.Draft{Subject: "Math", Topic: "Fractions", Date: "2025-05-26"}, drafts[0])

	require.Len(t, fake.Requests(), 1)
	req := fake.Requests()[0]
	assert.Equal(t, systemInstruction, req.System)
	require.NotNil(t, req.Schema)
	assert.Equal(t, "study-schedule", req.Schema.Name)
	require.Len(t, req.Messages, 1)
	assert.Contains(t, req.Messages[0].Content, "Math, History")
	assert.Contains(t, req.Messages[0].Content, "2025-06-01")
	assert.Contains(t, req.Messages[0].Content, "2 hours per day")
	assert.Contains(t, req.Messages[0].Content, "7 specific tasks")
}

func TestGenerateScheduleFailure(t *testing.T) {
	fake := llm.NewFake(llm.Canned{Err: &llm.Error{Kind: llm.KindUnavailable, Err: errors.New("offline")}})
	a := New(fake)

	drafts, err := a.GenerateSchedule(context.Background(), testProfile())
	assert.Nil(t, drafts)
	assert.True(t, llm.IsKind(err, llm.KindUnavailable), "err = %v", err)
}

func TestGenerateScheduleUndecodable(t *testing.T) {
	fake := llm.NewFake(llm.Canned{JSON: json.RawMessage(`{"tasks":"soon"}`)})
	a := New(fake)

	_, err := a.GenerateSchedule(context.Background(), testProfile())
	assert.True(t, llm.IsKind(err, llm.KindMalformed), "err = %v", err)
}

func TestCompletionMessage(t *testing.T) {
	fake := llm.NewFake(llm.Canned{Text: "You did it! Rest now."})
	a := New(fake)

	msg, err := a.CompletionMessage(context.Background(), []string{"Math", "History"})
	require.NoError(t, err)
	assert.Equal(t, "You did it! Rest now.", msg)

	req := fake.Requests()[0]
	assert.InDelta(t, 0.9, req.Temperature, 1e-9)
	assert.Nil(t, req.Schema)
	assert.Contains(t, req.Messages[0].Content, "Math, History")
}

func TestCompletionMessageEmptyUsesFallback(t *testing.T) {
	fake := llm.NewFake(llm.Canned{Text: "  "})
	msg, err := New(fake).CompletionMessage(context.Background(), []string{"Math"})
	require.NoError(t, err)
	assert.Equal(t, plan.FallbackCelebration, msg)
}

func TestReply(t *testing.T) {
	fake := llm.NewFake(llm.Canned{Text: "One step at a time."})
	a := New(fake)

	history := []mentor.Message{{Role: mentor.RoleAssistant, Text: mentor.Greeting}}
	reply, err := a.Reply(context.Background(), "I'm anxious", history)
	require.NoError(t, err)
	assert.Equal(t, "One step at a time.", reply)

	req := fake.Requests()[0]
	assert.InDelta(t, 0.7, req.Temperature, 1e-9)
	require.Len(t, req.Messages, 1, "history is not sent")
	assert.Equal(t, "I'm anxious", req.Messages[0].Content)
}

func TestReplyEmptyUsesFallback(t *testing.T) {
	fake := llm.NewFake(llm.Canned{Text: ""})
	reply, err := New(fake).Reply(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, EmptyReply, reply)
}

func TestReplyError(t *testing.T) {
	fake := llm.NewFake()
	_, err := New(fake).Reply(context.Background(), "hello", nil)
	assert.Error(t, err)
}

func TestChatWithAssistant(t *testing.T) {
	fake := llm.NewFake(llm.Canned{Err: errors.New("timeout")})
	chat := mentor.NewChat()

	require.True(t, chat.Send(context.Background(), New(fake), "help me"))
	msgs := chat.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, mentor.Fallback, msgs[2].Text)
}

func TestOnboardAppliesSchedule(t *testing.T) {
	fake := llm.NewFake(llm.Canned{JSON: json.RawMessage(sevenTasks)})
	b := plan.NewBoard(nil, zaptest.NewLogger(t))

	err := Onboard(context.Background(), b, New(fake), testProfile(), zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.True(t, b.HasProfile())
	assert.Len(t, b.Tasks(), 7)
	assert.Equal(t, 0, b.Progress())
}

func TestOnboardScheduleFailureLeavesTasksEmpty(t *testing.T) {
	fake := llm.NewFake(llm.Canned{Err: &llm.Error{Kind: llm.KindUnavailable, Err: errors.New("offline")}})
	b := plan.NewBoard(nil, zaptest.NewLogger(t))

	err := Onboard(context.Background(), b, New(fake), testProfile(), zaptest.NewLogger(t))
	require.NoError(t, err, "schedule failure is not surfaced")
	assert.True(t, b.HasProfile())
	assert.Empty(t, b.Tasks())
}

func TestOnboardRejectsEmptyProfile(t *testing.T) {
	fake := llm.NewFake()
	b := plan.NewBoard(nil, nil)

	err := Onboard(context.Background(), b, New(fake), plan.Profile{}, nil)
	assert.ErrorIs(t, err, plan.ErrEmptyProfile)
	assert.Empty(t, fake.Requests())
}

func TestCelebrate(t *testing.T) {
	fake := llm.NewFake(
		llm.Canned{JSON: json.RawMessage(sevenTasks)},
		llm.Canned{Text: "Bravo!"},
	)
	a := New(fake)
	b := plan.NewBoard(nil, nil)
	ctx := context.Background()
	require.NoError(t, Onboard(ctx, b, a, testProfile(), nil))

	var last plan.ToggleResult
	for _, task := range b.Tasks() {
		last, _ = b.Toggle(ctx, task.ID)
	}
	require.True(t, last.Celebrate)

	msg, current := Celebrate(ctx, b, a, last.CelebrationSeq, nil)
	assert.True(t, current)
	assert.Equal(t, "Bravo!", msg)
	c := b.Celebration()
	assert.Equal(t, "Bravo!", c.Message())
	assert.Equal(t, []string{"Math", "History"}, b.CompletedSubjects())
	assert.Contains(t, fake.Requests()[1].Messages[0].Content, "Math, History")
}

func TestCelebrateFallbackAndStale(t *testing.T) {
	b := plan.NewBoard(nil, nil)
	ctx := context.Background()
	require.NoError(t, b.SetProfile(ctx, testProfile()))
	b.ApplySchedule(ctx, []plan.Draft{{Subject: "Math", Topic: "x", Date: "2025-05-26"}})
	id := b.Tasks()[0].ID

	first, _ := b.Toggle(ctx, id)
	require.True(t, first.Celebrate)

	fake := llm.NewFake(llm.Canned{Err: errors.New("down")})
	msg, current := Celebrate(ctx, b, New(fake), first.CelebrationSeq, nil)
	assert.True(t, current)
	assert.Equal(t, plan.FallbackCelebration, msg)

	// Unchecking dismisses; a late reply for the old round is dropped.
	b.Toggle(ctx, id)
	_, current = Celebrate(ctx, b, nil, first.CelebrationSeq, nil)
	assert.False(t, current)
}
