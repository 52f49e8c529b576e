package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/promptcheck/internal/evaluation"
	"github.com/abhisek/promptcheck/internal/llm"
	"github.com/abhisek/promptcheck/internal/observability"
)

// Evaluator is the part of *evaluation.Evaluator the handler needs.
type Evaluator interface {
	Evaluate(ctx context.Context, req evaluation.Request) (*evaluation.Result, error)
}

// Response is a transport-independent reply. Body is empty for preflight
// requests and a JSON document otherwise. Headers are always Headers.
type Response struct {
	Status int
	Body   []byte
}

type errorBody struct {
	Error string `json:"error"`
}

// Handler implements the evaluate endpoint independent of how requests
// arrive: the HTTP server and the Lambda adapter both delegate here.
type Handler struct {
	evaluator Evaluator
	mapper    errorMapper
	logger    zerolog.Logger
}

// NewHandler creates a Handler. llmCfg only decides which variable names
// appear in configuration hints.
func NewHandler(evaluator Evaluator, llmCfg llm.Config, logger zerolog.Logger) *Handler {
	return &Handler{
		evaluator: evaluator,
		mapper:    errorMapper{keyEnv: llmCfg.KeyEnv(), modelEnv: llmCfg.ModelEnv()},
		logger:    logger,
	}
}

// Handle dispatches on method and evaluates POST bodies.
func (h *Handler) Handle(ctx context.Context, method string, body []byte) Response {
	switch method {
	case http.MethodOptions:
		return Response{Status: http.StatusOK}
	case http.MethodPost:
	default:
		return h.errorResponse(http.StatusMethodNotAllowed, MsgMethodNotAllowed)
	}

	start := time.Now()
	req := requestFromBody(DecodeBody(body))
	strategy := strategyLabel(req.Strategy)

	logger := h.logger.With().
		Str("request_id", llm.RequestIDFrom(ctx)).
		Str("strategy", strategy).
		Int("prompt_chars", len([]rune(req.StudentPrompt))).
		Logger()

	res, err := h.evaluator.Evaluate(ctx, req)
	if err != nil {
		status, msg := h.mapper.mapError(err)
		observability.EvaluationsTotal().WithLabelValues(strategy, outcomeOf(err)).Inc()

		event := logger.Error()
		if status < http.StatusInternalServerError {
			event = logger.Info()
		}
		event.Err(err).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("evaluation rejected")
		return h.errorResponse(status, msg)
	}

	payload, err := json.Marshal(res.Evaluation)
	if err != nil {
		logger.Error().Err(err).Msg("encode evaluation")
		return h.errorResponse(http.StatusInternalServerError, MsgGeneric)
	}

	outcome := observability.OutcomeParsed
	if res.Fallback {
		outcome = observability.OutcomeFallback
	}
	observability.EvaluationsTotal().WithLabelValues(strategy, outcome).Inc()
	if res.Model != "" {
		observability.UpstreamTokens().WithLabelValues(res.Model, "input").Add(float64(res.Usage.InputTokens))
		observability.UpstreamTokens().WithLabelValues(res.Model, "output").Add(float64(res.Usage.OutputTokens))
	}

	logger.Info().
		Str("outcome", outcome).
		Int("overall_score", res.Evaluation.OverallScore).
		Dur("latency", time.Since(start)).
		Msg("evaluation completed")

	return Response{Status: http.StatusOK, Body: payload}
}

func (h *Handler) errorResponse(status int, msg string) Response {
	// Marshalling a single string field cannot fail.
	payload, _ := json.Marshal(errorBody{Error: msg})
	return Response{Status: status, Body: payload}
}

// strategyLabel keeps metric cardinality bounded: anything unrecognized is
// reported as "invalid".
func strategyLabel(s evaluation.Strategy) string {
	if s == "" {
		return string(evaluation.DefaultStrategy)
	}
	if st, ok := evaluation.ParseStrategy(string(s)); ok {
		return string(st)
	}
	return "invalid"
}

func outcomeOf(err error) string {
	var reqErr *evaluation.RequestError
	var upErr *llm.ErrUpstream
	switch {
	case errors.As(err, &reqErr):
		return observability.OutcomeRejected
	case errors.As(err, &upErr):
		return observability.OutcomeUpstreamError
	}
	return observability.OutcomeError
}
