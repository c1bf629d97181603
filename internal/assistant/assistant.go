// Package assistant turns study data into prompts for the language model and
// parses what comes back: the weekly schedule, the end-of-day celebration
// and mentor replies.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/focoleve/internal/llm"
	"github.com/abhisek/focoleve/internal/mentor"
	"github.com/abhisek/focoleve/internal/plan"
)

// Purpose labels recorded with each remote call.
const (
	PurposeSchedule    = "schedule"
	PurposeCelebration = "celebration"
	PurposeMentor      = "mentor-chat"
)

// EmptyReply replaces a blank mentor answer.
const EmptyReply = "I'm here to help. Take a deep breath and let's keep going."

// ScheduleSize is the number of tasks requested for the first week.
const ScheduleSize = 7

const systemInstruction = `You are a calm, organized and encouraging mentor for high-school students preparing for exams.
Your goal is to reduce anxiety and organize their study.
Language: simple, motivating, short.
Avoid technical terms and pressure. Never use phrases like "you're behind" or "you should study more".
Always use "one step at a time", "let's adjust", "there's still time".`

const (
	scheduleTemperature    = 0.4
	celebrationTemperature = 0.9
	mentorTemperature      = 0.7

	scheduleMaxTokens = 2048
	messageMaxTokens  = 512
)

// scheduleSchema is the structured output shape for GenerateSchedule.
var scheduleSchema = &llm.Schema{
	Name:        "study-schedule",
	Description: "A list of study tasks for the first week",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tasks": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"subject": map[string]any{"type": "string"},
						"topic":   map[string]any{"type": "string"},
						"date": map[string]any{
							"type":        "string",
							"description": "Suggested date in YYYY-MM-DD format",
						},
					},
					"required":             []any{"subject", "topic", "date"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"tasks"},
		"additionalProperties": false,
	},
}

type scheduleReply struct {
	Tasks []plan.Draft `json:"tasks"`
}

// Assistant performs the three remote calls of the app.
type Assistant interface {
	// GenerateSchedule asks for a first-week plan for the profile.
	GenerateSchedule(ctx context.Context, p plan.Profile) ([]plan.Draft, error)

	// CompletionMessage asks for a short congratulation for finishing the
	// day's tasks on the given subjects.
	CompletionMessage(ctx context.Context, subjects []string) (string, error)

	// Reply answers one mentor chat message.
	Reply(ctx context.Context, message string, history []mentor.Message) (string, error)
}

// LLMAssistant implements Assistant over an llm.Provider.
type LLMAssistant struct {
	provider llm.Provider
}

var _ Assistant = (*LLMAssistant)(nil)
var _ mentor.Replier = (*LLMAssistant)(nil)

// New returns an assistant backed by provider.
func New(provider llm.Provider) *LLMAssistant {
	return &LLMAssistant{provider: provider}
}

func (a *LLMAssistant) GenerateSchedule(ctx context.Context, p plan.Profile) ([]plan.Draft, error) {
	ctx = llm.WithPurpose(ctx, PurposeSchedule)

	req := llm.Prompt(systemInstruction, schedulePrompt(p))
	req.Schema = scheduleSchema
	req.MaxTokens = scheduleMaxTokens
	req.Temperature = scheduleTemperature
	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate schedule: %w", err)
	}

	out, err := llm.DecodeJSON[scheduleReply](resp)
	if err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}
	return out.Tasks, nil
}

func (a *LLMAssistant) CompletionMessage(ctx context.Context, subjects []string) (string, error) {
	ctx = llm.WithPurpose(ctx, PurposeCelebration)

	req := llm.Prompt(systemInstruction, celebrationPrompt(subjects))
	req.MaxTokens = messageMaxTokens
	req.Temperature = celebrationTemperature
	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("completion message: %w", err)
	}
	if text := resp.Text(); text != "" {
		return text, nil
	}
	return plan.FallbackCelebration, nil
}

// Reply sends only the current message; history is accepted for interface
// compatibility and ignored.
func (a *LLMAssistant) Reply(ctx context.Context, message string, _ []mentor.Message) (string, error) {
	ctx = llm.WithPurpose(ctx, PurposeMentor)

	req := llm.Prompt(systemInstruction, message)
	req.MaxTokens = messageMaxTokens
	req.Temperature = mentorTemperature
	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("mentor reply: %w", err)
	}
	if text := resp.Text(); text != "" {
		return text, nil
	}
	return EmptyReply, nil
}

func schedulePrompt(p plan.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a study schedule for a student who wants to study these subjects: %s.\n",
		strings.Join(p.Subjects, ", "))
	fmt.Fprintf(&b, "The exam is on %s. They have %d hours per day.\n", p.ExamDate, p.StudyHours)
	fmt.Fprintf(&b, "Generate a list of %d specific tasks for the first week (one per day or split).\n", ScheduleSize)
	b.WriteString("Keep the content balanced and do not overload.\n")
	b.WriteString(`Return a JSON object with a "tasks" array.`)
	return b.String()
}

func celebrationPrompt(subjects []string) string {
	return fmt.Sprintf("The student just completed all of today's tasks on: %s.\n"+
		"Give a short congratulation (at most 2 sentences), extremely warm, that validates "+
		"their effort and reinforces that rest is now deserved.",
		strings.Join(subjects, ", "))
}

// ErrOffline is returned by Offline for every call.
var ErrOffline = errors.New("no language model configured")

// Offline is the Assistant used when no provider is configured. Every call
// fails, so callers fall back to their fixed texts.
type Offline struct{}

var _ Assistant = Offline{}

func (Offline) GenerateSchedule(context.Context, plan.Profile) ([]plan.Draft, error) {
	return nil, ErrOffline
}

func (Offline) CompletionMessage(context.Context, []string) (string, error) {
	return "", ErrOffline
}

func (Offline) Reply(context.Context, string, []mentor.Message) (string, error) {
	return "", ErrOffline
}
