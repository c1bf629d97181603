// Package mentor holds the conversation log with the study mentor.
package mentor

import (
	"context"
	"strings"
	"sync"
)

// Greeting opens every conversation.
const Greeting = "Hi! I'm your mentor. How are you feeling about your studies today?"

// Fallback replaces a reply that could not be fetched.
const Fallback = "Take a deep breath. I'm here, but I had a small technical hiccup. Shall we focus on today?"

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the log.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Replier produces the mentor's answer to a user message.
type Replier interface {
	Reply(ctx context.Context, text string, history []Message) (string, error)
}

// Chat is an append-only message log with at most one request in flight.
// It is safe for concurrent use.
type Chat struct {
	mu       sync.Mutex
	messages []Message
	inFlight bool
}

// NewChat returns a log holding only the greeting.
func NewChat() *Chat {
	return &Chat{messages: []Message{{Role: RoleAssistant, Text: Greeting}}}
}

// Begin appends a user message and marks a request in flight. It returns
// false, leaving the log untouched, when text is blank or a request is
// already pending.
func (c *Chat) Begin(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return false
	}
	c.messages = append(c.messages, Message{Role: RoleUser, Text: text})
	c.inFlight = true
	return true
}

// Complete appends the assistant reply, or Fallback when err is set or the
// reply is blank, and clears the in-flight flag. Without a pending turn it
// does nothing.
func (c *Chat) Complete(reply string, err error) {
	if err != nil || strings.TrimSpace(reply) == "" {
		reply = Fallback
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.inFlight {
		return
	}
	c.messages = append(c.messages, Message{Role: RoleAssistant, Text: reply})
	c.inFlight = false
}

// Send runs a full turn synchronously. It returns false if the turn was
// rejected by Begin.
func (c *Chat) Send(ctx context.Context, r Replier, text string) bool {
	if !c.Begin(text) {
		return false
	}
	history := c.History()
	reply, err := r.Reply(ctx, text, history)
	c.Complete(reply, err)
	return true
}

// Messages returns a copy of the log.
func (c *Chat) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.messages...)
}

// History returns the log without the trailing user message of the pending
// turn.
func (c *Chat) History() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.messages)
	if c.inFlight && n > 0 {
		n--
	}
	return append([]Message(nil), c.messages[:n]...)
}

// Len returns the number of messages.
func (c *Chat) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

// InFlight reports whether a reply is pending.
func (c *Chat) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}
