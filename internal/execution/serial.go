package execution

import (
	"context"
	"time"

	"github.com/go-logr/logr"

	"ttp/internal/domain"
)

// SerialExecutor runs cases one at a time in the given order. The target page
// is shared and stateful, so cases never overlap.
type SerialExecutor struct {
	runner   CaseRunner
	progress Progress
	failFast bool
	log      logr.Logger
}

// NewSerialExecutor creates a new SerialExecutor
func NewSerialExecutor(runner CaseRunner, failFast bool, log logr.Logger) *SerialExecutor {
	return &SerialExecutor{
		runner:   runner,
		failFast: failFast,
		log:      log,
	}
}

// SetProgress sets the progress bar for the executor
func (e *SerialExecutor) SetProgress(progress Progress) {
	e.progress = progress
}

// Execute runs every case in order. Cancellation is honoured between cases
// only; a case that has started runs to completion. With fail-fast the loop
// stops after the first failed case.
func (e *SerialExecutor) Execute(ctx context.Context, cases []domain.TestCase) ([]domain.CaseResult, time.Duration, error) {
	if len(cases) == 0 {
		return nil, 0, nil
	}

	startTime := time.Now()
	results := make([]domain.CaseResult, 0, len(cases))
	var summary Summary
	var err error

	for i, tc := range cases {
		if err = ctx.Err(); err != nil {
			e.log.Info("run cancelled", "completed", i, "remaining", len(cases)-i)
			break
		}

		result := e.runner.Run(context.WithoutCancel(ctx), tc)
		results = append(results, result)
		summary.Add(result)
		e.log.V(1).Info("case finished", "case", tc.ID, "outcome", result.Outcome, "duration", result.Duration.String())

		if e.progress != nil {
			e.progress.Update(summary.Passed, summary.Failed, summary.Inconclusive)
		}
		if e.failFast && result.Outcome == domain.OutcomeFailed {
			e.log.Info("stopping after first failure", "case", tc.ID, "skipped", len(cases)-i-1)
			break
		}
	}

	if e.progress != nil {
		e.progress.Finish()
	}
	return results, time.Since(startTime), err
}
