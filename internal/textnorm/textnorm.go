// Package textnorm canonicalizes translator output before comparison.
package textnorm

import (
	"strings"
	"unicode"
)

// punctuation is the set of sentence-terminal marks removed by StripPunctuation.
const punctuation = "?.!,，、。"

// Normalize collapses every whitespace run into one space and trims the ends.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	var builder strings.Builder
	builder.Grow(len(s))
	pending := false
	for _, r := range s {
		if isSpace(r) {
			if builder.Len() > 0 {
				pending = true
			}
			continue
		}
		if pending {
			builder.WriteByte(' ')
			pending = false
		}
		builder.WriteRune(r)
	}
	return builder.String()
}

// isSpace matches the ECMAScript \s class: Unicode White_Space plus the byte
// order mark, without NEL.
func isSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

// StripPunctuation normalizes s and removes sentence-terminal punctuation.
func StripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, Normalize(s))
}

// HasSinhala reports whether s contains a rune from the Sinhala block.
func HasSinhala(s string) bool {
	for _, r := range s {
		if r >= 0x0D80 && r <= 0x0DFF {
			return true
		}
	}
	return false
}
