package evaluation

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

var systemPromptTemplate = template.Must(template.New("system").Parse(`Du bist ein strenger, hilfreicher Bewerter für deutschsprachige Schüler-Prompts.
Antworte **AUSSCHLIESSLICH** mit einem **gültigen JSON-Objekt** (keine Code-Blöcke, keine erklärenden Sätze).

Schema (alle Schlüssel exakt verwenden):
{
  "overall_score": number 0..100,
  "segments": [{ "text": string, "label": {{.Labels}} }],
  "problems": string[],   // kurze Problem-Liste
  "tips": string[],       // konkrete, umsetzbare Tipps
  "improved_prompt": string, // verbesserte deutsche Version
  "rubric_scores": { "clarity": 0..25, "structure": 0..25, "task_specificity": 0..25, "audience_tone": 0..25 }
}

Bewertungsregeln:
- "overall_score" ist Summe der rubric_scores (0..100).
- "segments": Teile den Prompt in sinnvolle Abschnitte (max. 8), bewerte jeden mit einem Label.
- "improved_prompt": präzise, kurz, aktiv formuliert, alle nötigen Details; auf Deutsch.
- Keine zusätzlichen Felder, keine Erklärtexte, keinerlei Code-Fences.`))

var strategyDescriptions = map[Strategy]string{
	StrategyBeginner3W:      "Nutze die 3W-Prüfung: Wer? Was? Warum? Fehlende W-Fragen mindern clarity/structure.",
	StrategyIntermediateKAF: "Nutze KAF: Kontext → Aufgabe → Format (Kontext liefert Rahmen; Aufgabe ist die konkrete Anweisung; Format legt Struktur/Länge/Output fest).",
}

// BuildSystemPrompt returns the fixed rubric instruction, naming the label
// set of the given strategy.
func BuildSystemPrompt(strategy Strategy) string {
	labels := strategy.Labels()
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = fmt.Sprintf("%q", string(l))
	}

	var buf bytes.Buffer
	// The template only interpolates a string; Execute cannot fail.
	_ = systemPromptTemplate.Execute(&buf, struct{ Labels string }{strings.Join(quoted, " | ")})
	return buf.String()
}

// BuildUserMessage names the strategy and quotes the student prompt
// verbatim as the last block of the message.
func BuildUserMessage(studentPrompt string, strategy Strategy) string {
	var b strings.Builder

	b.WriteString("Bewerte den folgenden Schüler-Prompt anhand der vorgegebenen Regeln.\n")
	if desc, ok := strategyDescriptions[strategy]; ok {
		fmt.Fprintf(&b, "Strategie: %s: %s\n", strategy, desc)
	} else {
		fmt.Fprintf(&b, "Strategie: %s\n", strategy)
	}
	b.WriteString("\nGib AUSSCHLIESSLICH das JSON gemäß Schema zurück.\n")
	b.WriteString("\nPROMPT:\n")
	b.WriteString(studentPrompt)

	return b.String()
}
