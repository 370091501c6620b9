package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ParseAIJSON parses a JSON object out of generative-model output, which
// may arrive as pure JSON, JSON wrapped in markdown code fences, or JSON
// buried in surrounding prose. Anything that still fails to parse is a
// hard error carrying the raw output for diagnosis; it is never silently
// defaulted.
func ParseAIJSON(input string, target interface{}) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("model returned empty output")
	}

	// Most responses are plain JSON.
	if err := json.Unmarshal([]byte(input), target); err == nil {
		return nil
	}

	if extracted := stripCodeFences(input); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
	}

	if extracted := extractJSONObject(input); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
	}

	return fmt.Errorf("model returned invalid JSON, raw output: %s", truncate(input, 500))
}

var (
	jsonFenceRegex  = regexp.MustCompile("(?s)```json\\s*(.+?)\\s*```")
	plainFenceRegex = regexp.MustCompile("(?s)```\\s*(.+?)\\s*```")
)

// stripCodeFences pulls the body out of ```json ... ``` or ``` ... ```
// markup. Returns "" when the input carries no fenced JSON.
func stripCodeFences(input string) string {
	if matches := jsonFenceRegex.FindStringSubmatch(input); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	if matches := plainFenceRegex.FindStringSubmatch(input); len(matches) > 1 {
		content := strings.TrimSpace(matches[1])
		if strings.HasPrefix(content, "{") {
			return content
		}
	}
	return ""
}

// extractJSONObject finds the first brace-balanced object in text that
// surrounds the JSON with prose. String literals and escapes are honored
// so braces inside values do not break the balance.
func extractJSONObject(input string) string {
	start := strings.Index(input, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escape := false
	for i := start; i < len(input); i++ {
		ch := input[i]
		if escape {
			escape = false
			continue
		}
		switch ch {
		case '\\':
			escape = true
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return input[start : i+1]
				}
			}
		}
	}
	return ""
}

// truncate cuts s to at most maxLen bytes, backing up to a rune boundary
// so multi-byte characters are never split.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
