package llm

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"
)

// Canned is one scripted answer of a Fake.
type Canned struct {
	// Text is returned as the response content.
	Text string
	// JSON replaces Text when set. It is checked against the request
	// schema like a real answer would be.
	JSON  json.RawMessage
	Usage Usage
	Err   error
}

// Fake plays back scripted answers in order and remembers every request.
// The "mock" provider setting uses an empty Fake, so every call fails and
// the app runs on its fixed texts.
type Fake struct {
	mu       sync.Mutex
	script   []Canned
	requests []Request
}

var _ Provider = (*Fake)(nil)

// NewFake returns a Fake that answers with script.
func NewFake(script ...Canned) *Fake {
	return &Fake{script: script}
}

// Queue appends answers to the script.
func (f *Fake) Queue(answers ...Canned) {
	f.mu.Lock()
	f.script = append(f.script, answers...)
	f.mu.Unlock()
}

// Requests returns a copy of the requests seen so far.
func (f *Fake) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.requests)
}

func (f *Fake) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	if len(f.script) == 0 {
		f.mu.Unlock()
		return nil, &Error{Kind: KindUnavailable, Provider: "fake", Err: errors.New("no scripted answer left")}
	}
	next := f.script[0]
	f.script = f.script[1:]
	f.mu.Unlock()

	if next.Err != nil {
		return nil, next.Err
	}

	content := json.RawMessage(next.Text)
	if next.JSON != nil {
		content = next.JSON
	}
	if req.Schema != nil {
		checked, err := checkSchema(req.Schema, content)
		if err != nil {
			return nil, err
		}
		content = checked
	}

	return &Response{
		Content:    content,
		Usage:      next.Usage,
		Model:      f.ModelID(),
		StopReason: "end",
	}, nil
}

func (f *Fake) ModelID() string { return "fake" }
