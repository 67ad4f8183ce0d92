package domain

import "time"

// Outcome is the final state of an executed case
type Outcome string

const (
	OutcomePassed Outcome = "passed"
	OutcomeFailed Outcome = "failed"
	// OutcomeInconclusive marks a Fail case whose translator never answered
	OutcomeInconclusive Outcome = "inconclusive"
)

// CaseResult represents the result of executing a test case
type CaseResult struct {
	Case     TestCase      // Case that was executed
	Outcome  Outcome       // Final outcome
	Observed string        // Normalized translator output
	Reason   string        // Human readable reason when not passed
	Error    error         // Error if interaction failed
	Duration time.Duration // Time taken to execute
	Cycles   int           // Navigation cycles used
	Nudged   bool          // Whether a nudge was needed
	Verdict  Verdict       // Oracle verdict, when the oracle ran
}

// Passed reports whether the case passed
func (r CaseResult) Passed() bool {
	return r.Outcome == OutcomePassed
}

// RunMeta contains metadata about a run
type RunMeta struct {
	TotalCases        int     `json:"total_cases"`
	PassedCases       int     `json:"passed_cases"`
	FailedCases       int     `json:"failed_cases"`
	InconclusiveCases int     `json:"inconclusive_cases"`
	Source            string  `json:"source"`
	Driver            string  `json:"driver"`
	Duration          string  `json:"duration"`
	DurationSeconds   float64 `json:"duration_seconds"`
	Timestamp         string  `json:"timestamp"`
	Fingerprint       string  `json:"fingerprint"`
}

// RunOutput is the complete output structure for a run
type RunOutput struct {
	Meta    RunMeta   `json:"meta"`
	Details []Failure `json:"details"`
}
