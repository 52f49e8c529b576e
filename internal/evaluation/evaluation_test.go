package evaluation

import (
	"encoding/json"
	"reflect"
	"testing"
)

const validReply = `{
	"overall_score": 62,
	"segments": [
		{"text": "Schreibe mir einen Aufsatz", "label": "OK"},
		{"text": "über Hunde", "label": "UNCLEAR"}
	],
	"problems": ["Zielgruppe fehlt", "Länge fehlt"],
	"tips": ["Nenne die Länge.", "Nenne die Zielgruppe."],
	"improved_prompt": "Schreibe einen Aufsatz (300 Wörter) über Hunde für Klasse 6.",
	"rubric_scores": {"clarity": 15, "structure": 14, "task_specificity": 16, "audience_tone": 17}
}`

const studentPrompt = "Schreibe mir einen Aufsatz über Hunde"

func TestDecode_Valid(t *testing.T) {
	ev, err := Decode(validReply)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.OverallScore != 62 || ev.RubricScores.Sum() != 62 {
		t.Fatalf("unexpected scores: %+v", ev)
	}
	if len(ev.Segments) != 2 || ev.Segments[1].Label != LabelUnclear {
		t.Fatalf("unexpected segments: %+v", ev.Segments)
	}
	if len(ev.Problems) != 2 || len(ev.Tips) != 2 {
		t.Fatalf("unexpected lists: %+v", ev)
	}
}

func TestDecode_OptionalFieldsBecomeEmpty(t *testing.T) {
	ev, err := Decode(`{"overall_score":0,"segments":[],"tips":[],"rubric_scores":{"clarity":0,"structure":0,"task_specificity":0,"audience_tone":0}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Problems == nil || len(ev.Problems) != 0 {
		t.Fatalf("expected empty problems, got %#v", ev.Problems)
	}
	out, _ := json.Marshal(ev)
	var back map[string]any
	json.Unmarshal(out, &back)
	if _, ok := back["problems"].([]any); !ok {
		t.Fatalf("problems should marshal as an array: %s", out)
	}
}

func TestDecode_RoundsAndClampsScores(t *testing.T) {
	ev, err := Decode(`{"overall_score":101.4,"segments":[],"tips":[],"rubric_scores":{"clarity":12.6,"structure":-3,"task_specificity":30,"audience_tone":20}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := RubricScores{Clarity: 13, Structure: 0, TaskSpecificity: 25, AudienceTone: 20}
	if ev.RubricScores != want {
		t.Fatalf("rubric = %+v, want %+v", ev.RubricScores, want)
	}
	if ev.OverallScore != 100 {
		t.Fatalf("overall = %d, want 100", ev.OverallScore)
	}
}

func TestParseOrFallback_UsesFallback(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
	}{
		{"not json", "Das ist leider kein JSON."},
		{"empty", ""},
		{"truncated", `{"overall_score": 40, "segments": [`},
		{"missing tips", `{"overall_score":50,"segments":[],"rubric_scores":{"clarity":1,"structure":1,"task_specificity":1,"audience_tone":1}}`},
		{"score as string", `{"overall_score":"50","segments":[],"tips":[],"rubric_scores":{"clarity":1,"structure":1,"task_specificity":1,"audience_tone":1}}`},
		{"segments not array", `{"overall_score":50,"segments":"a","tips":[],"rubric_scores":{"clarity":1,"structure":1,"task_specificity":1,"audience_tone":1}}`},
		{"missing rubric field", `{"overall_score":50,"segments":[],"tips":[],"rubric_scores":{"clarity":1,"structure":1,"task_specificity":1}}`},
		{"rubric not numeric", `{"overall_score":50,"segments":[],"tips":[],"rubric_scores":{"clarity":"hoch","structure":1,"task_specificity":1,"audience_tone":1}}`},
		{"array at top level", `[1,2,3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, fallback, cause := ParseOrFallback(tt.candidate, studentPrompt)
			if !fallback {
				t.Fatalf("expected fallback for %q", tt.candidate)
			}
			if cause == nil {
				t.Fatal("expected a cause")
			}
			assertFallback(t, ev)
		})
	}
}

func TestParseOrFallback_ValidReplyIsTrusted(t *testing.T) {
	ev, fallback, cause := ParseOrFallback(validReply, studentPrompt)
	if fallback || cause != nil {
		t.Fatalf("unexpected fallback: %v", cause)
	}
	if ev.ImprovedPrompt == "" {
		t.Fatal("expected improved prompt from the reply")
	}
}

func TestParseOrFallback_Idempotent(t *testing.T) {
	first, _, _ := ParseOrFallback(validReply, studentPrompt)
	encoded, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, fallback, cause := ParseOrFallback(string(encoded), studentPrompt)
	if fallback {
		t.Fatalf("re-validation fell back: %v", cause)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("evaluation changed on re-validation:\n%+v\n%+v", first, second)
	}
}

func TestFallback(t *testing.T) {
	assertFallback(t, Fallback(studentPrompt))
}

func assertFallback(t *testing.T, ev Evaluation) {
	t.Helper()
	if ev.OverallScore != 50 {
		t.Errorf("overall = %d, want 50", ev.OverallScore)
	}
	if ev.RubricScores.Sum() != 50 {
		t.Errorf("rubric sum = %d, want 50", ev.RubricScores.Sum())
	}
	if len(ev.Segments) != 1 || ev.Segments[0].Text != studentPrompt || ev.Segments[0].Label != LabelUnclear {
		t.Errorf("unexpected segments: %+v", ev.Segments)
	}
	if ev.ImprovedPrompt != studentPrompt+" [Bitte weiter präzisieren]" {
		t.Errorf("unexpected improved prompt %q", ev.ImprovedPrompt)
	}
	if len(ev.Problems) == 0 || len(ev.Tips) == 0 {
		t.Error("expected generic problems and tips")
	}
	if err := CheckShape(ev); err != nil {
		t.Errorf("fallback must pass the final gate: %v", err)
	}
}

func TestNormalizeScore(t *testing.T) {
	ev := Fallback(studentPrompt)
	if _, changed := NormalizeScore(ev); changed {
		t.Fatal("consistent evaluation must not change")
	}

	ev.OverallScore = 90
	got, changed := NormalizeScore(ev)
	if !changed || got.OverallScore != 50 {
		t.Fatalf("expected overall 50, got %d (changed=%v)", got.OverallScore, changed)
	}
	if ev.OverallScore != 90 {
		t.Fatal("input evaluation must not be mutated")
	}
}

func TestCheckShape(t *testing.T) {
	if err := CheckShape(Evaluation{}); err != ErrIncomplete {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
}

func TestDecode_ClampsHugeScores(t *testing.T) {
	ev, err := Decode(`{"overall_score":1e300,"segments":[],"tips":[],"rubric_scores":{"clarity":1e19,"structure":-1e19,"task_specificity":25,"audience_tone":0}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.OverallScore != 100 {
		t.Fatalf("overall = %d, want 100", ev.OverallScore)
	}
	if ev.RubricScores.Clarity != 25 || ev.RubricScores.Structure != 0 {
		t.Fatalf("rubric = %+v, want clarity 25 and structure 0", ev.RubricScores)
	}
}

func TestDecode_NullOptionalFields(t *testing.T) {
	ev, err := Decode(`{"overall_score":40,"segments":[],"problems":null,"tips":["a"],"improved_prompt":null,"rubric_scores":{"clarity":10,"structure":10,"task_specificity":10,"audience_tone":10}}`)
	if err != nil {
		t.Fatalf("null optional fields must not trigger the fallback: %v", err)
	}
	if ev.ImprovedPrompt != "" || ev.Problems == nil || len(ev.Problems) != 0 {
		t.Fatalf("unexpected optional fields: %+v", ev)
	}
}

func TestDecode_UntypedSegmentItemsFallBack(t *testing.T) {
	_, fallback, _ := ParseOrFallback(`{"overall_score":40,"segments":["x"],"tips":[],"rubric_scores":{"clarity":10,"structure":10,"task_specificity":10,"audience_tone":10}}`, studentPrompt)
	if !fallback {
		t.Fatal("segments that are not objects cannot be returned as typed segments")
	}
}
