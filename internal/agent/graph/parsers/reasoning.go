package parsers

import "strings"

// Delimiters for the model's self-narrated reasoning segment. The segment is
// shown to users as a transparency aid and is always excluded from the final
// answer text.
const (
	ReasoningStart = "<thinking>"
	ReasoningEnd   = "</thinking>"
)

// basic safety limit to avoid pathological inputs
const maxContentLen = 128 * 1024 // 128KB

// ExtractReasoning splits model output into the first reasoning segment and
// the remaining user-visible answer. Absence of the segment is valid: the
// reasoning comes back empty and the full content is the answer. An opening
// tag without a matching close is left in place rather than guessed at.
func ExtractReasoning(content string) (reasoning, answer string) {
	if len(content) > maxContentLen {
		content = content[:maxContentLen]
	}

	start := strings.Index(content, ReasoningStart)
	if start < 0 {
		return "", strings.TrimSpace(content)
	}
	rest := content[start+len(ReasoningStart):]
	end := strings.Index(rest, ReasoningEnd)
	if end < 0 {
		return "", strings.TrimSpace(content)
	}

	reasoning = strings.TrimSpace(rest[:end])
	return reasoning, StripReasoning(content)
}

// StripReasoning removes every well-formed reasoning segment from content.
func StripReasoning(content string) string {
	if len(content) > maxContentLen {
		content = content[:maxContentLen]
	}

	var b strings.Builder
	for {
		start := strings.Index(content, ReasoningStart)
		if start < 0 {
			break
		}
		rest := content[start+len(ReasoningStart):]
		end := strings.Index(rest, ReasoningEnd)
		if end < 0 {
			break
		}
		b.WriteString(content[:start])
		content = rest[end+len(ReasoningEnd):]
	}
	b.WriteString(content)
	return strings.TrimSpace(b.String())
}

// ReasoningLines splits a reasoning segment into non-empty trimmed lines for
// the per-line thinking event stream.
func ReasoningLines(reasoning string) []string {
	if reasoning == "" {
		return nil
	}
	raw := strings.Split(reasoning, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
