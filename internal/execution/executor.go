package execution

import (
	"context"
	"errors"
	"time"

	"ttp/internal/domain"
)

// ErrCasesFailed is returned by a run in which at least one case failed
var ErrCasesFailed = errors.New("translation cases failed")

// Executor executes cases and returns results
type Executor interface {
	Execute(ctx context.Context, cases []domain.TestCase) ([]domain.CaseResult, time.Duration, error)
}

// CaseRunner executes a single case
type CaseRunner interface {
	Run(ctx context.Context, tc domain.TestCase) domain.CaseResult
}

// Progress receives running totals after each case
type Progress interface {
	Update(passed, failed, inconclusive int)
	Finish()
}

// Summary counts results by outcome
type Summary struct {
	Passed       int
	Failed       int
	Inconclusive int
}

// Total returns the number of counted results
func (s Summary) Total() int {
	return s.Passed + s.Failed + s.Inconclusive
}

// Add counts one result
func (s *Summary) Add(r domain.CaseResult) {
	switch r.Outcome {
	case domain.OutcomePassed:
		s.Passed++
	case domain.OutcomeInconclusive:
		s.Inconclusive++
	default:
		s.Failed++
	}
}

// Summarize counts results by outcome
func Summarize(results []domain.CaseResult) Summary {
	var s Summary
	for _, r := range results {
		s.Add(r)
	}
	return s
}

// Err returns ErrCasesFailed when any case failed
func (s Summary) Err() error {
	if s.Failed > 0 {
		return ErrCasesFailed
	}
	return nil
}
