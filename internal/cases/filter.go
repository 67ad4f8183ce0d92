package cases

import (
	"path/filepath"
	"strings"

	"ttp/internal/domain"
)

// Filter filters cases by identifier or name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByPattern keeps cases whose ID or name matches pattern.
// Supports patterns like "Neg_Fun_*" or "*question*"; a pattern without
// wildcards matches by substring.
func (f *Filter) FilterByPattern(cases []domain.TestCase, pattern string) []domain.TestCase {
	if pattern == "" {
		return cases
	}

	var filtered []domain.TestCase
	for _, tc := range cases {
		if f.matches(tc.ID, pattern) || f.matches(tc.Name, pattern) {
			filtered = append(filtered, tc)
		}
	}
	return filtered
}

func (f *Filter) matches(value, pattern string) bool {
	if value == "" {
		return false
	}

	// filepath.Match handles * and ? as long as the value has no separators
	if matched, err := filepath.Match(pattern, value); err == nil && matched {
		return true
	}

	if strings.Contains(pattern, "*") {
		// All non-empty parts must appear, in order
		rest := value
		found := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			i := strings.Index(rest, part)
			if i < 0 {
				return false
			}
			rest = rest[i+len(part):]
			found = true
		}
		return found
	}

	if !strings.Contains(pattern, "?") {
		return strings.Contains(value, pattern)
	}
	return false
}
