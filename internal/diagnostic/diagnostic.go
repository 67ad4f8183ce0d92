// Package diagnostic turns case results into persisted failure records.
package diagnostic

import (
	"strings"

	"ttp/internal/domain"
)

// Extractor extracts failure records from case results
type Extractor interface {
	Extract(result domain.CaseResult) []domain.Failure
	ExtractAll(results []domain.CaseResult) []domain.Failure
}

// ResultExtractor builds one Failure per failed or inconclusive result
type ResultExtractor struct{}

// NewResultExtractor creates a new ResultExtractor
func NewResultExtractor() *ResultExtractor {
	return &ResultExtractor{}
}

// Extract returns the failure record for result, or nil when it passed
func (e *ResultExtractor) Extract(result domain.CaseResult) []domain.Failure {
	if result.Passed() {
		return nil
	}
	tc := result.Case

	f := domain.Failure{
		CaseID:    tc.ID,
		Name:      tc.Name,
		Category:  tc.Category(),
		Outcome:   result.Outcome,
		Input:     tc.Input,
		Reference: Reference(tc),
		Observed:  result.Observed,
		Message:   Message(result),
		Cycles:    result.Cycles,
	}
	if d := result.Verdict.Diagnostic; d != nil {
		f.Reference = d.Reference
		f.Observed = d.Observed
	}
	return []domain.Failure{f}
}

// ExtractAll collects the failures of every result in order
func (e *ResultExtractor) ExtractAll(results []domain.CaseResult) []domain.Failure {
	var failures []domain.Failure
	for _, r := range results {
		failures = append(failures, e.Extract(r)...)
	}
	return failures
}

// Reference is the text a case is compared against: the recorded actual
// output for positive cases, the expected output for negative ones.
func Reference(tc domain.TestCase) string {
	if tc.Disposition == domain.DispositionPass {
		return tc.Actual
	}
	return tc.Expected
}

// Message joins the reason and the interaction error of a result
func Message(result domain.CaseResult) string {
	var parts []string
	if result.Reason != "" {
		parts = append(parts, result.Reason)
	}
	if result.Error != nil {
		parts = append(parts, result.Error.Error())
	}
	if result.Nudged {
		parts = append(parts, "output needed a nudge")
	}
	return strings.Join(parts, ": ")
}
