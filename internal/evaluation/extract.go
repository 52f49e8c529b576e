package evaluation

import (
	"strings"
	"unicode"
)

const fence = "```"

// ExtractJSON returns the JSON-bearing part of a model reply. A block
// opened with a json-tagged fence wins; otherwise the content of the first
// fence pair is used; otherwise the whole trimmed text. An unclosed fence
// runs to the end of the text.
func ExtractJSON(text string) string {
	out := strings.TrimSpace(text)

	if _, after, ok := strings.Cut(out, fence+"json"); ok {
		out, _, _ = strings.Cut(after, fence)
	} else if _, after, ok := strings.Cut(out, fence); ok {
		out, _, _ = strings.Cut(after, fence)
		out = dropLanguageTag(out)
	}

	return strings.TrimSpace(out)
}

// dropLanguageTag strips a leading info string such as "JSON" or "js" left
// over from a generic fence.
func dropLanguageTag(block string) string {
	line, rest, ok := strings.Cut(block, "\n")
	if !ok {
		return block
	}
	tag := strings.TrimSpace(line)
	if tag == "" {
		return rest
	}
	for _, r := range tag {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return block
		}
	}
	return rest
}
