package evaluation

import (
	"strings"
	"testing"
)

func TestBuildUserMessage_QuotesPromptVerbatim(t *testing.T) {
	prompt := "Schreibe mir einen Aufsatz über Hunde.\n  Mit \"Zitat\" und {Klammern}."
	for _, s := range Strategies {
		msg := BuildUserMessage(prompt, s)
		if !strings.HasSuffix(msg, "PROMPT:\n"+prompt) {
			t.Errorf("%s: prompt not quoted verbatim at the end:\n%s", s, msg)
		}
		if !strings.Contains(msg, "Strategie: "+string(s)) {
			t.Errorf("%s: strategy not named:\n%s", s, msg)
		}
	}
}

func TestBuildUserMessage_StrategyDescriptions(t *testing.T) {
	if msg := BuildUserMessage("x", StrategyBeginner3W); !strings.Contains(msg, "3W-Prüfung") {
		t.Errorf("missing 3W description:\n%s", msg)
	}
	if msg := BuildUserMessage("x", StrategyIntermediateKAF); !strings.Contains(msg, "KAF") {
		t.Errorf("missing KAF description:\n%s", msg)
	}
}

func TestBuildUserMessage_Deterministic(t *testing.T) {
	a := BuildUserMessage("Schreibe ein Gedicht über den Herbst.", StrategyIntermediateKAF)
	b := BuildUserMessage("Schreibe ein Gedicht über den Herbst.", StrategyIntermediateKAF)
	if a != b {
		t.Fatal("expected identical messages")
	}
}

func TestBuildSystemPrompt_LabelsPerStrategy(t *testing.T) {
	beginner := BuildSystemPrompt(StrategyBeginner3W)
	if !strings.Contains(beginner, `"GOOD" | "OK" | "UNCLEAR" | "OFF_TOPIC"`) {
		t.Errorf("beginner labels missing:\n%s", beginner)
	}
	if strings.Contains(beginner, "TONE_ISSUE") {
		t.Error("beginner prompt should not mention TONE_ISSUE")
	}

	kaf := BuildSystemPrompt(StrategyIntermediateKAF)
	for _, l := range []string{"MISSING_DETAIL", "TOO_VAGUE", "TONE_ISSUE"} {
		if !strings.Contains(kaf, l) {
			t.Errorf("kaf prompt missing %s", l)
		}
	}
	for _, key := range []string{"overall_score", "rubric_scores", "task_specificity", "audience_tone", "improved_prompt"} {
		if !strings.Contains(kaf, key) {
			t.Errorf("schema key %s missing", key)
		}
	}
}
