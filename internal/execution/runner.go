package execution

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"ttp/internal/domain"
	"ttp/internal/interaction"
	"ttp/internal/oracle"
	"ttp/internal/textnorm"
)

// DefaultUIText is typed when a UI case has no input of its own
const DefaultUIText = "oyaata kohomada?"

// Opener opens a fresh interaction session
type Opener interface {
	Open(ctx context.Context) (*interaction.Session, error)
}

// Runner executes a single translation case on a fresh page
type Runner struct {
	opener Opener
	oracle *oracle.Oracle
	log    logr.Logger
}

// NewRunner creates a new Runner
func NewRunner(opener Opener, orc *oracle.Oracle, log logr.Logger) *Runner {
	if orc == nil {
		orc = oracle.New()
	}
	return &Runner{
		opener: opener,
		oracle: orc,
		log:    log,
	}
}

// Run executes tc and decides its outcome
func (r *Runner) Run(ctx context.Context, tc domain.TestCase) domain.CaseResult {
	start := time.Now()
	result := r.run(ctx, tc)
	result.Case = tc
	result.Duration = time.Since(start)
	return result
}

func (r *Runner) run(ctx context.Context, tc domain.TestCase) domain.CaseResult {
	session, err := r.opener.Open(ctx)
	if err != nil {
		return failed(err, "could not open page")
	}
	defer func() {
		if err := session.Close(); err != nil {
			r.log.V(1).Info("close page", "case", tc.ID, "error", err.Error())
		}
	}()

	var result domain.CaseResult
	switch {
	case tc.IsUI():
		result = r.runUI(ctx, session, tc)
	case tc.Disposition == domain.DispositionPass:
		result = r.runPositive(ctx, session, tc)
	default:
		result = r.runNegative(ctx, session, tc)
	}

	stats := session.Stats()
	result.Cycles = stats.Cycles
	result.Nudged = stats.Nudged
	return result
}

// runUI types the input gradually and only requires that output appears
func (r *Runner) runUI(ctx context.Context, s *interaction.Session, tc domain.TestCase) domain.CaseResult {
	text := tc.Input
	if strings.TrimSpace(text) == "" {
		text = DefaultUIText
	}
	out, err := s.TypeAndWait(ctx, text)
	if err != nil {
		return failed(err, "interaction failed")
	}
	if out == "" {
		return domain.CaseResult{Outcome: domain.OutcomeFailed, Reason: "output did not update after typing"}
	}
	return domain.CaseResult{Outcome: domain.OutcomePassed, Observed: out}
}

// runPositive requires a non-empty output that the oracle accepts
func (r *Runner) runPositive(ctx context.Context, s *interaction.Session, tc domain.TestCase) domain.CaseResult {
	out, err := s.Translate(ctx, tc.Input)
	if err != nil {
		return failed(err, "interaction failed")
	}
	result := domain.CaseResult{Observed: out}
	if out == "" {
		result.Outcome = domain.OutcomeFailed
		result.Reason = fmt.Sprintf("translator returned empty output for %s", tc.ID)
		return result
	}

	if oracle.IsPlaceholder(tc.Actual) {
		if !textnorm.HasSinhala(out) {
			result.Outcome = domain.OutcomeFailed
			result.Reason = "output contains no Sinhala text"
			return result
		}
		result.Outcome = domain.OutcomePassed
		return result
	}

	result.Verdict = r.oracle.Match(tc.ID, out, tc.Actual)
	if !result.Verdict.Matched {
		result.Verdict.Diagnostic.Input = tc.Input
		r.logMismatch(tc, result.Verdict.Diagnostic)
		result.Outcome = domain.OutcomeFailed
		result.Reason = "output does not match reference"
		return result
	}
	result.Outcome = domain.OutcomePassed
	return result
}

// runNegative requires that the output differs from the documented expectation.
// An empty output proves nothing either way and is inconclusive.
func (r *Runner) runNegative(ctx context.Context, s *interaction.Session, tc domain.TestCase) domain.CaseResult {
	out, err := s.Translate(ctx, tc.Input)
	if err != nil {
		return failed(err, "interaction failed")
	}
	result := domain.CaseResult{Observed: out}
	if out == "" {
		result.Outcome = domain.OutcomeInconclusive
		result.Reason = "translator returned no output"
		return result
	}

	if textnorm.StripPunctuation(out) == textnorm.StripPunctuation(tc.Expected) {
		d := &domain.Diagnostic{
			CaseID:    tc.ID,
			Input:     tc.Input,
			Reference: tc.Expected,
			Observed:  out,
		}
		r.logMismatch(tc, d)
		result.Verdict = domain.Verdict{Diagnostic: d}
		result.Outcome = domain.OutcomeFailed
		result.Reason = "output equals the expected output of a negative case"
		return result
	}
	result.Outcome = domain.OutcomePassed
	return result
}

func (r *Runner) logMismatch(tc domain.TestCase, d *domain.Diagnostic) {
	r.log.Info("mismatch",
		"case", tc.Title(),
		"input", d.Input,
		"reference", d.Reference,
		"observed", d.Observed,
	)
}

func failed(err error, reason string) domain.CaseResult {
	if errors.Is(err, interaction.ErrFieldsNotReady) {
		reason = "translator fields not ready"
	}
	return domain.CaseResult{
		Outcome: domain.OutcomeFailed,
		Reason:  reason,
		Error:   err,
	}
}
