package evaluation

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain", `{"a":1}`, `{"a":1}`},
		{"generic fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n{\"a\":1}\n\t", `{"a":1}`},
		{"prose around json fence", "Hier ist die Bewertung:\n```json\n{\"a\":1}\n```\nViel Erfolg!", `{"a":1}`},
		{"json fence preferred over earlier fence", "```\nnotes\n```\n```json\n{\"a\":2}\n```", `{"a":2}`},
		{"unclosed fence", "```json\n{\"a\":1}", `{"a":1}`},
		{"uppercase tag on generic fence", "```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"single-line generic fence", "```{\"a\":1}```", `{"a":1}`},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.in); got != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
