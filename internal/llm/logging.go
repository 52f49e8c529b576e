package llm

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// LoggingProvider is a decorator that writes one structured log line per
// LLM request.
type LoggingProvider struct {
	inner  Provider
	logger zerolog.Logger
}

// WithLogging wraps a Provider with request logging.
func WithLogging(p Provider, logger zerolog.Logger) Provider {
	return &LoggingProvider{inner: p, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	event := l.logger.Info()
	if err != nil {
		event = l.logger.Warn().Err(err)
	}
	model := l.inner.ModelID()
	if resp != nil && resp.Model != "" {
		model = resp.Model
	}
	event = event.
		Str("purpose", PurposeFrom(ctx)).
		Str("model", model).
		Int("max_tokens", req.MaxTokens).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Bool("success", err == nil)

	if id := RequestIDFrom(ctx); id != "" {
		event = event.Str("request_id", id)
	}

	if resp != nil {
		event = event.
			Str("stop_reason", resp.StopReason).
			Int("input_tokens", resp.Usage.InputTokens).
			Int("output_tokens", resp.Usage.OutputTokens)
		if cost := LookupCost(model); cost != nil {
			event = event.Float64("cost_usd", cost.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens))
		}
	}

	event.Msg("llm request")

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
