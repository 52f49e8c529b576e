package evaluation

import "github.com/abhisek/promptcheck/internal/llm"

var numberField = map[string]any{"type": "number"}

// EvaluationSchema is the shape a model reply must have to be trusted.
// Optional fields may be absent or null; when present they must still fit
// the Evaluation type.
var EvaluationSchema = &llm.Schema{
	Name:        "prompt-evaluation",
	Description: "Rubric evaluation of a student-authored prompt",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"overall_score": numberField,
			"segments": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text":  map[string]any{"type": "string"},
						"label": map[string]any{"type": "string"},
					},
				},
			},
			"problems": map[string]any{
				"type":  []any{"array", "null"},
				"items": map[string]any{"type": "string"},
			},
			"tips": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"improved_prompt": map[string]any{"type": []any{"string", "null"}},
			"rubric_scores": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"clarity":          numberField,
					"structure":        numberField,
					"task_specificity": numberField,
					"audience_tone":    numberField,
				},
				"required": []any{"clarity", "structure", "task_specificity", "audience_tone"},
			},
		},
		"required": []any{"overall_score", "segments", "tips", "rubric_scores"},
	},
}
