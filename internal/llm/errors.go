package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Kind classifies a failed Generate call.
type Kind int

const (
	// KindUnavailable covers network failures, 5xx answers and anything the
	// adapters cannot classify.
	KindUnavailable Kind = iota
	// KindRateLimited is a 429 from the provider or the local limiter.
	KindRateLimited
	// KindRejected is a 4xx other than 429: bad key, bad request, blocked
	// prompt. Repeating the call does not help.
	KindRejected
	// KindMalformed means the answer is not the JSON the request asked for.
	KindMalformed
	// KindTruncated means a structured answer stopped at MaxTokens.
	KindTruncated
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate limited"
	case KindRejected:
		return "request rejected"
	case KindMalformed:
		return "malformed response"
	case KindTruncated:
		return "response truncated"
	default:
		return "provider unavailable"
	}
}

// Error is the error type returned by every provider in this package.
type Error struct {
	Kind     Kind
	Provider string

	// RetryAfter is the wait the provider asked for. Only set for
	// KindRateLimited.
	RetryAfter time.Duration

	// Content is the raw answer for KindMalformed and KindTruncated.
	Content json.RawMessage

	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Provider != "" {
		b.WriteString(e.Provider)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.RetryAfter > 0 {
		b.WriteString(" (retry after ")
		b.WriteString(e.RetryAfter.String())
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err carries an *Error of kind k.
func IsKind(err error, k Kind) bool {
	got, ok := KindOf(err)
	return ok && got == k
}

// classifyStatus maps an HTTP status from a provider SDK to a Kind.
func classifyStatus(status int) Kind {
	switch {
	case status == 429:
		return KindRateLimited
	case status >= 400 && status < 500:
		return KindRejected
	default:
		return KindUnavailable
	}
}

// attribute fills in the provider name on an *Error that has none.
func attribute(err error, provider string) error {
	var e *Error
	if errors.As(err, &e) && e.Provider == "" {
		e.Provider = provider
	}
	return err
}

// sdkError wraps an SDK failure. Context errors pass through unchanged so
// callers can tell cancellation apart from provider trouble.
func sdkError(provider string, status int, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &Error{Kind: classifyStatus(status), Provider: provider, Err: err}
}
