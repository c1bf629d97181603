package llm

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/abhisek/focoleve/internal/store"
	"go.uber.org/zap"
)

// Recorder writes every call to the event store and the log.
type Recorder struct {
	inner    Provider
	provider string
	events   store.EventRepo
	log      *zap.Logger
}

// WithLogging wraps p in a Recorder. repo and logger may be nil.
func WithLogging(p Provider, provider string, repo store.EventRepo, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{inner: p, provider: provider, events: repo, log: logger.Named("llm")}
}

func (r *Recorder) Generate(ctx context.Context, req Request) (*Response, error) {
	began := time.Now()
	resp, err := r.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    r.provider,
		Model:       r.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(began).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	r.report(ev, resp, err)
	if r.events != nil {
		if serr := r.events.AppendLLMRequest(ctx, ev); serr != nil {
			r.log.Warn("failed to record LLM request event", zap.Error(serr))
		}
	}
	return resp, err
}

func (r *Recorder) report(ev store.LLMRequestEventData, resp *Response, err error) {
	fields := []zap.Field{
		zap.String("provider", ev.Provider),
		zap.String("model", ev.Model),
		zap.String("purpose", ev.Purpose),
		zap.Int64("latency_ms", ev.LatencyMs),
	}
	if err != nil {
		if kind, ok := KindOf(err); ok {
			fields = append(fields, zap.Stringer("kind", kind))
		}
		r.log.Warn("llm request failed", append(fields, zap.Error(err))...)
		return
	}
	r.log.Debug("llm request", append(fields,
		zap.Int("input_tokens", ev.InputTokens),
		zap.Int("output_tokens", ev.OutputTokens),
		zap.String("stop_reason", resp.StopReason),
	)...)
}

func (r *Recorder) ModelID() string { return r.inner.ModelID() }

// transcript renders req as tagged blocks, "[system]", "[user]" and so on,
// for the llm view command.
func transcript(req Request) string {
	var blocks []string
	if req.System != "" {
		blocks = append(blocks, "[system]\n"+req.System)
	}
	for _, m := range req.Messages {
		blocks = append(blocks, "["+string(m.Role)+"]\n"+m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			blocks = append(blocks, "[schema: "+req.Schema.Name+"]\n"+string(def))
		}
	}
	return strings.Join(blocks, "\n\n")
}
