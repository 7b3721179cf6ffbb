package quizgen

import (
	"encoding/json"
	"strings"

	"assessly/internal/domain"
)

// ParseQuizPayload turns the provider's raw text into the JSON elements of a
// question array. It strips an optional Markdown code fence, rejects content
// that is not parseable JSON, and coerces a single object into a one-element
// array. Per-element shape checking is left to the validator.
func ParseQuizPayload(raw string) ([]json.RawMessage, error) {
	cleaned := StripCodeFence(raw)
	if cleaned == "" {
		return nil, domain.NewEmptyResponseError()
	}

	var value json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &value); err != nil {
		return nil, domain.NewMalformedJSONError(err)
	}

	if isJSONArray(value) {
		var elements []json.RawMessage
		if err := json.Unmarshal(value, &elements); err != nil {
			return nil, domain.NewMalformedJSONError(err)
		}
		return elements, nil
	}

	return []json.RawMessage{value}, nil
}

// StripCodeFence removes a leading ```json or ``` and a trailing ``` wrapper,
// the way chat models habitually decorate JSON output
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-len("```")]
	}
	return strings.TrimSpace(s)
}

func isJSONArray(value json.RawMessage) bool {
	for _, b := range value {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b == '['
		}
	}
	return false
}
