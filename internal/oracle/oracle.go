// Package oracle decides whether noisy translator output is close enough to a
// recorded reference.
package oracle

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"ttp/internal/domain"
	"ttp/internal/textnorm"
)

// DefaultPrefixLength is the number of leading reference runes that must appear in the output.
const DefaultPrefixLength = 8

// Oracle applies the general matching rule and the per-case overrides.
type Oracle struct {
	PrefixLength int
	Overrides    Overrides
}

// New returns an Oracle with the default prefix length and overrides.
func New() *Oracle {
	return &Oracle{
		PrefixLength: DefaultPrefixLength,
		Overrides:    DefaultOverrides,
	}
}

// IsAcceptableMatch applies the general rule with the default prefix length.
func IsAcceptableMatch(observed, reference string) bool {
	return acceptable(observed, reference, DefaultPrefixLength)
}

// Match compares observed output with the reference recorded for caseID.
// The override registered for caseID is consulted only when the general rule fails.
func (o *Oracle) Match(caseID, observed, reference string) domain.Verdict {
	n := o.PrefixLength
	if n <= 0 {
		n = DefaultPrefixLength
	}
	ok := acceptable(observed, reference, n)
	if !ok {
		if override, found := o.Overrides[caseID]; found {
			ok = override.Accept(fold(observed), fold(reference))
		}
	}
	if ok {
		return domain.Verdict{Matched: true}
	}
	return domain.Verdict{
		Diagnostic: &domain.Diagnostic{
			CaseID:    caseID,
			Reference: reference,
			Observed:  observed,
		},
	}
}

func acceptable(observed, reference string, prefixLength int) bool {
	o := fold(observed)
	a := fold(reference)

	if a == "" {
		return true
	}
	if o == a {
		return true
	}
	if strings.Contains(o, a) || strings.Contains(a, o) {
		return true
	}

	runes := []rune(a)
	n := min(prefixLength, len(runes))
	prefix := string(runes[:n])
	return prefix != "" && strings.Contains(o, prefix)
}

// fold strips punctuation and composes the text so decomposed vowel signs
// compare equal to their precomposed forms.
func fold(s string) string {
	return norm.NFC.String(textnorm.StripPunctuation(s))
}

var placeholderMarkers = []string{
	"observed output",
	"no meaningful output",
	"incorrect",
	"partial",
	"degraded",
	"tbd",
}

// IsPlaceholder reports whether a recorded actual output is a descriptive marker
// rather than real translated text.
func IsPlaceholder(actual string) bool {
	a := strings.ToLower(actual)
	for _, marker := range placeholderMarkers {
		if strings.Contains(a, marker) {
			return true
		}
	}
	return false
}
