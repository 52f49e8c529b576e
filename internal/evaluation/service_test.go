package evaluation

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/abhisek/promptcheck/internal/llm"
	"github.com/rs/zerolog"
)

func newTestEvaluator(p llm.Provider) *Evaluator {
	return NewEvaluator(p, DefaultConfig(), zerolog.Nop())
}

func TestEvaluate_FencedReply(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Text: "Hier ist die Bewertung:\n```json\n" + validReply + "\n```\nViel Erfolg!",
	})
	ev := newTestEvaluator(mock)

	res, err := ev.Evaluate(context.Background(), Request{StudentPrompt: studentPrompt})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Fallback {
		t.Fatal("expected the model reply to be used")
	}
	if res.Evaluation.OverallScore != 62 {
		t.Fatalf("overall = %d, want 62", res.Evaluation.OverallScore)
	}
	if res.Model != "mock" {
		t.Fatalf("model = %q", res.Model)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 upstream call, got %d", mock.CallCount())
	}
	call := mock.Calls[0]
	if call.MaxTokens != 1500 || call.Temperature != 0.3 {
		t.Fatalf("unexpected generation params: %+v", call)
	}
	if !strings.Contains(call.System, string(LabelOK)) {
		t.Fatal("system prompt should list the beginner labels")
	}
	if len(call.Messages) != 1 || !strings.HasSuffix(call.Messages[0].Content, studentPrompt) {
		t.Fatalf("user message should end with the student prompt: %+v", call.Messages)
	}
	if !strings.Contains(call.Messages[0].Content, string(StrategyBeginner3W)) {
		t.Fatal("default strategy should be named in the user message")
	}
}

func TestEvaluate_UnparseableReplyFallsBack(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"prose", "Ich kann diesen Prompt leider nicht bewerten."},
		{"empty", ""},
		{"missing tips", "```json\n{\"overall_score\":70,\"segments\":[],\"rubric_scores\":{\"clarity\":20,\"structure\":20,\"task_specificity\":15,\"audience_tone\":15}}\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := newTestEvaluator(llm.NewMockProvider(llm.MockResponse{Text: tt.text}))
			res, err := ev.Evaluate(context.Background(), Request{StudentPrompt: studentPrompt})
			if err != nil {
				t.Fatalf("malformed reply must not fail the call: %v", err)
			}
			if !res.Fallback {
				t.Fatal("expected fallback")
			}
			assertFallback(t, res.Evaluation)
		})
	}
}

func TestEvaluate_NormalizesOverallScore(t *testing.T) {
	reply := `{"overall_score":95,"segments":[{"text":"x","label":"GOOD"}],"tips":["a"],` +
		`"rubric_scores":{"clarity":10,"structure":10,"task_specificity":10,"audience_tone":10}}`
	ev := newTestEvaluator(llm.NewMockProvider(llm.MockResponse{Text: reply}))

	res, err := ev.Evaluate(context.Background(), Request{StudentPrompt: studentPrompt})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Evaluation.OverallScore != 40 {
		t.Fatalf("overall = %d, want rubric sum 40", res.Evaluation.OverallScore)
	}
}

func TestEvaluate_IntermediateStrategy(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: validReply})
	ev := newTestEvaluator(mock)

	_, err := ev.Evaluate(context.Background(), Request{
		StudentPrompt: studentPrompt,
		Strategy:      StrategyIntermediateKAF,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(mock.Calls[0].System, string(LabelMissingDetail)) {
		t.Fatal("system prompt should list the intermediate labels")
	}
}

func TestEvaluate_RejectsBeforeUpstream(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		kind RequestErrorKind
	}{
		{"too short", Request{StudentPrompt: "Hallo"}, KindInvalidInput},
		{"too long", Request{StudentPrompt: strings.Repeat("a", 2001)}, KindInvalidInput},
		{"bad strategy", Request{StudentPrompt: studentPrompt, Strategy: "expert"}, KindInvalidStrategy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider()
			_, err := newTestEvaluator(mock).Evaluate(context.Background(), tt.req)

			var reqErr *RequestError
			if !errors.As(err, &reqErr) {
				t.Fatalf("expected *RequestError, got %v", err)
			}
			if reqErr.Kind != tt.kind {
				t.Fatalf("kind = %v, want %v", reqErr.Kind, tt.kind)
			}
			if mock.CallCount() != 0 {
				t.Fatal("rejected request must not reach the provider")
			}
		})
	}
}

func TestEvaluate_MissingCredential(t *testing.T) {
	_, err := newTestEvaluator(nil).Evaluate(context.Background(), Request{StudentPrompt: studentPrompt})
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}

func TestEvaluate_InvalidInputWinsOverMissingCredential(t *testing.T) {
	_, err := newTestEvaluator(nil).Evaluate(context.Background(), Request{StudentPrompt: "kurz"})
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %v", err)
	}
}

func TestEvaluate_UpstreamErrorPropagates(t *testing.T) {
	upstream := &llm.ErrUpstream{
		Provider:   "anthropic",
		StatusCode: http.StatusTooManyRequests,
		Message:    "rate limit exceeded",
	}
	mock := llm.NewMockProvider(llm.MockResponse{Err: upstream})

	_, err := newTestEvaluator(mock).Evaluate(context.Background(), Request{StudentPrompt: studentPrompt})

	var got *llm.ErrUpstream
	if !errors.As(err, &got) {
		t.Fatalf("expected *llm.ErrUpstream, got %v", err)
	}
	if !got.RateLimited() {
		t.Fatal("expected a rate-limited error")
	}
	if mock.CallCount() != 1 {
		t.Fatalf("upstream must be called exactly once, got %d", mock.CallCount())
	}
}
