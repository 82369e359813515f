package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/examprep/internal/store"
)

// loggingProvider records each request to the event store and the log file.
type loggingProvider struct {
	inner  Provider
	repo   store.EventRepo
	logger *zap.Logger
	now    func() time.Time
}

// WithLogging wraps p so every request is recorded. repo and logger may be
// nil. A failed store write is logged and never fails the request.
func WithLogging(p Provider, repo store.EventRepo, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &loggingProvider{inner: p, repo: repo, logger: logger.Named("llm"), now: time.Now}
}

func (l *loggingProvider) Name() string    { return l.inner.Name() }
func (l *loggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := l.now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  l.inner.Name(),
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: l.now().Sub(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	fields := []zap.Field{
		zap.String("provider", data.Provider),
		zap.String("model", data.Model),
		zap.String("purpose", data.Purpose),
		zap.Int64("latency_ms", data.LatencyMs),
		zap.Int("input_tokens", data.InputTokens),
		zap.Int("output_tokens", data.OutputTokens),
	}
	if err != nil {
		l.logger.Warn("llm request failed", append(fields, zap.Error(err))...)
	} else {
		l.logger.Debug("llm request", fields...)
	}

	if l.repo != nil {
		// The caller's context may already be done; the record is still wanted.
		if werr := l.repo.AppendLLMRequest(context.WithoutCancel(ctx), data); werr != nil {
			l.logger.Warn("record llm request", zap.Error(werr))
		}
	}
	return resp, err
}

// timeoutProvider bounds each Generate call.
type timeoutProvider struct {
	inner Provider
	d     time.Duration
}

// WithTimeout wraps p with a per-call deadline. A non-positive d returns p.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &timeoutProvider{inner: p, d: d}
}

func (t *timeoutProvider) Name() string    { return t.inner.Name() }
func (t *timeoutProvider) ModelID() string { return t.inner.ModelID() }

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.Generate(ctx, req)
}
