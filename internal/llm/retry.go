package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider repeats calls that failed for reasons a later attempt can
// fix: outages, rate limits and, once per call, a malformed answer.
type RetryProvider struct {
	inner  Provider
	cfg    RetryConfig
	sleep  func(ctx context.Context, d time.Duration) error
	jitter func() float64
}

// WithRetry wraps p. With MaxAttempts of one or less, p is returned as is.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts <= 1 {
		return p
	}
	return &RetryProvider{inner: p, cfg: cfg, sleep: sleepCtx, jitter: rand.Float64}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var malformedSeen bool
	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if attempt >= r.cfg.MaxAttempts || !retryable(err, &malformedSeen) {
			return nil, err
		}
		if err := r.sleep(ctx, r.delay(attempt, err)); err != nil {
			return nil, err
		}
	}
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

func retryable(err error, malformedSeen *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	kind, ok := KindOf(err)
	if !ok {
		return true
	}
	switch kind {
	case KindRejected, KindTruncated:
		return false
	case KindMalformed:
		if *malformedSeen {
			return false
		}
		*malformedSeen = true
	}
	return true
}

// delay is the wait after the given failed attempt (1-based). A provider's
// Retry-After wins over the exponential schedule, which gets ±20% jitter.
func (r *RetryProvider) delay(attempt int, err error) time.Duration {
	var e *Error
	if errors.As(err, &e) && e.RetryAfter > 0 {
		return e.RetryAfter
	}
	d := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt-1))
	d = min(d, float64(r.cfg.MaxWait))
	d *= 0.8 + 0.4*r.jitter()
	return time.Duration(d)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
