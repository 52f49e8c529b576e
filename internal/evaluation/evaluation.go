package evaluation

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/abhisek/promptcheck/internal/llm"
)

const (
	maxRubricScore  = 25
	maxOverallScore = 100
)

// rawEvaluation mirrors Evaluation with float scores: the model is only
// trusted to produce numbers, not integers.
type rawEvaluation struct {
	OverallScore   float64   `json:"overall_score"`
	Segments       []Segment `json:"segments"`
	Problems       []string  `json:"problems"`
	Tips           []string  `json:"tips"`
	ImprovedPrompt string    `json:"improved_prompt"`
	RubricScores   struct {
		Clarity         float64 `json:"clarity"`
		Structure       float64 `json:"structure"`
		TaskSpecificity float64 `json:"task_specificity"`
		AudienceTone    float64 `json:"audience_tone"`
	} `json:"rubric_scores"`
}

// Decode parses a candidate JSON string into an Evaluation. It fails when
// the text is not JSON or does not match EvaluationSchema. Scores are
// rounded and clamped to their ranges.
func Decode(candidate string) (Evaluation, error) {
	raw := json.RawMessage(candidate)
	if err := llm.ValidateJSON(EvaluationSchema, raw); err != nil {
		return Evaluation{}, err
	}

	var r rawEvaluation
	if err := json.Unmarshal(raw, &r); err != nil {
		return Evaluation{}, fmt.Errorf("decode evaluation: %w", err)
	}

	ev := Evaluation{
		OverallScore:   score(r.OverallScore, maxOverallScore),
		Segments:       r.Segments,
		Problems:       r.Problems,
		Tips:           r.Tips,
		ImprovedPrompt: r.ImprovedPrompt,
		RubricScores: RubricScores{
			Clarity:         score(r.RubricScores.Clarity, maxRubricScore),
			Structure:       score(r.RubricScores.Structure, maxRubricScore),
			TaskSpecificity: score(r.RubricScores.TaskSpecificity, maxRubricScore),
			AudienceTone:    score(r.RubricScores.AudienceTone, maxRubricScore),
		},
	}
	if ev.Segments == nil {
		ev.Segments = []Segment{}
	}
	if ev.Problems == nil {
		ev.Problems = []string{}
	}
	if ev.Tips == nil {
		ev.Tips = []string{}
	}
	return ev, nil
}

// score clamps in float space; converting an out-of-range float to int is
// implementation-defined.
func score(v float64, limit int) int {
	v = math.Max(0, math.Min(math.Round(v), float64(limit)))
	return int(v)
}

// ParseOrFallback decodes the candidate. When decoding fails it returns the
// fallback evaluation for studentPrompt, fallback=true and the reason.
func ParseOrFallback(candidate, studentPrompt string) (ev Evaluation, fallback bool, cause error) {
	ev, err := Decode(candidate)
	if err != nil {
		return Fallback(studentPrompt), true, err
	}
	return ev, false, nil
}

// Fallback builds the deterministic evaluation used when the model reply
// cannot be trusted. Its rubric scores sum to its overall score of 50.
func Fallback(studentPrompt string) Evaluation {
	return Evaluation{
		OverallScore: 50,
		Segments:     []Segment{{Text: studentPrompt, Label: LabelUnclear}},
		Problems:     []string{"Die Bewertung konnte nicht vollständig analysiert werden."},
		Tips: []string{
			"Formuliere klarer, was genau du brauchst.",
			"Füge wichtige Details (Ziel, Länge, Format) hinzu.",
			"Nutze kurze, prägnante Sätze.",
		},
		ImprovedPrompt: studentPrompt + " [Bitte weiter präzisieren]",
		RubricScores:   RubricScores{Clarity: 12, Structure: 12, TaskSpecificity: 13, AudienceTone: 13},
	}
}

// NormalizeScore returns ev with OverallScore set to the rubric sum, and
// whether that changed anything.
func NormalizeScore(ev Evaluation) (Evaluation, bool) {
	sum := ev.RubricScores.Sum()
	if ev.OverallScore == sum {
		return ev, false
	}
	ev.OverallScore = sum
	return ev, true
}

// CheckShape is the last gate before an evaluation leaves the service.
func CheckShape(ev Evaluation) error {
	if ev.Segments == nil || ev.Tips == nil {
		return ErrIncomplete
	}
	return nil
}
