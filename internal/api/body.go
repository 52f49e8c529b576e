package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/abhisek/promptcheck/internal/evaluation"
)

// DecodeBody turns a request body into a JSON object. It accepts a JSON
// object, or a JSON string whose content is a JSON object. Anything else,
// including an empty body, yields an empty map.
func DecodeBody(body []byte) map[string]any {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return map[string]any{}
	}

	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return map[string]any{}
	}

	switch t := v.(type) {
	case map[string]any:
		return t
	case string:
		var inner map[string]any
		if err := json.Unmarshal([]byte(t), &inner); err == nil && inner != nil {
			return inner
		}
	}
	return map[string]any{}
}

// requestFromBody reads the two recognized fields. Missing or falsy
// values count as absent; a non-string prompt is treated as empty.
func requestFromBody(body map[string]any) evaluation.Request {
	var req evaluation.Request

	if s, ok := body["student_prompt"].(string); ok {
		req.StudentPrompt = s
	}

	switch s := body["strategy"].(type) {
	case nil:
	case bool:
		if s {
			req.Strategy = "true"
		}
	case string:
		req.Strategy = evaluation.Strategy(s)
	case float64:
		if s != 0 {
			req.Strategy = evaluation.Strategy(fmt.Sprint(s))
		}
	default:
		req.Strategy = evaluation.Strategy(fmt.Sprint(s))
	}

	return req
}
