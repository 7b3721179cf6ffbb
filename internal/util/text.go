package util

import (
	"strings"
	"unicode"
)

// NormalizeText produces a prompt-safe version of extracted document text.
// It drops every character outside the allow-list (letters, digits,
// underscore and common punctuation), collapses whitespace runs to a single
// space and trims the ends. The function is pure and idempotent.
func NormalizeText(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	pendingSpace := false
	for _, r := range raw {
		if unicode.IsSpace(r) {
			pendingSpace = true
			continue
		}
		if !allowedRune(r) {
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
	}

	return b.String()
}

func allowedRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
		return true
	}
	switch r {
	case '.', ',', ';', ':', '?', '!', '(', ')', '-', '\'', '"':
		return true
	}
	return false
}
