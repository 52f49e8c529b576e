package evaluation

import (
	"context"
	"fmt"

	"github.com/abhisek/promptcheck/internal/llm"
	"github.com/rs/zerolog"
)

// Purpose labels upstream calls made by the Evaluator in request logs.
const Purpose = "prompt-evaluation"

// Result is a finished evaluation plus how it was obtained.
type Result struct {
	Evaluation Evaluation
	// Fallback is true when the model reply was unusable and the
	// deterministic default was returned instead.
	Fallback bool
	Model    string
	Usage    llm.Usage
}

// Evaluator grades student prompts through an LLM provider. It holds no
// per-request state and is safe for concurrent use.
type Evaluator struct {
	provider llm.Provider
	cfg      Config
	logger   zerolog.Logger
}

// NewEvaluator creates an Evaluator. A nil provider is allowed: requests
// then pass validation and fail with ErrMissingCredential.
func NewEvaluator(provider llm.Provider, cfg Config, logger zerolog.Logger) *Evaluator {
	return &Evaluator{provider: provider, cfg: cfg, logger: logger}
}

// Evaluate validates the request, asks the model for a grading and turns
// the reply into an Evaluation. Malformed replies never fail the call; they
// yield the fallback evaluation.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) (*Result, error) {
	req, err := ValidateRequest(req)
	if err != nil {
		return nil, err
	}
	if e.provider == nil {
		return nil, ErrMissingCredential
	}

	ctx = llm.WithPurpose(ctx, Purpose)
	resp, err := e.provider.Generate(ctx, llm.Request{
		System: BuildSystemPrompt(req.Strategy),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: BuildUserMessage(req.StudentPrompt, req.Strategy)},
		},
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("evaluate prompt: %w", err)
	}

	logger := e.logger.With().
		Str("request_id", llm.RequestIDFrom(ctx)).
		Str("strategy", string(req.Strategy)).
		Logger()

	ev, fallback, cause := ParseOrFallback(ExtractJSON(resp.Text), req.StudentPrompt)
	if fallback {
		logger.Warn().Err(cause).Str("stop_reason", resp.StopReason).Msg("model reply unusable, returning fallback evaluation")
	} else if normalized, changed := NormalizeScore(ev); changed {
		logger.Warn().
			Int("overall_score", ev.OverallScore).
			Int("rubric_sum", normalized.OverallScore).
			Msg("overall score did not match rubric sum, using the sum")
		ev = normalized
	}

	if err := CheckShape(ev); err != nil {
		return nil, err
	}

	return &Result{
		Evaluation: ev,
		Fallback:   fallback,
		Model:      resp.Model,
		Usage:      resp.Usage,
	}, nil
}
