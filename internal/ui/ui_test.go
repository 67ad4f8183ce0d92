package ui

import (
	"bytes"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ttp/internal/config"
	"ttp/internal/domain"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"inconclusive", "Inconclusive"},
		{"failed", "Failed"},
		{"passed", "Passed"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, title(tt.in))
		})
	}
}

func TestPrintMetaStats(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(config.New(), &buf)

	f.PrintMetaStats(&domain.RunOutput{
		Meta: domain.RunMeta{
			TotalCases:        3,
			PassedCases:       1,
			FailedCases:       1,
			InconclusiveCases: 1,
			Source:            "builtin",
			Driver:            "playwright",
			DurationSeconds:   12.5,
			Fingerprint:       "4f53cda18c2baa0c0354bb5f9a3ecbe5ed12ab4d8e11ba873c2f11161202b945",
		},
		Details: []domain.Failure{
			{CaseID: "Pos_Fun_0001", Category: domain.CategoryPositive, Outcome: domain.OutcomeFailed, Message: "no acceptable match"},
			{CaseID: "Neg_Fun_0002", Category: domain.CategoryNegative, Outcome: domain.OutcomeInconclusive, Message: "translator returned no output"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Translation Run Statistics")
	assert.Contains(t, out, "12.50s")
	assert.Contains(t, out, "4f53cda18c2baa0c0354bb5f...")
	assert.Contains(t, out, "✗ 1 case(s) failed, 1 inconclusive")
	assert.Contains(t, out, "├── Positive-Functional (1)")
	assert.Contains(t, out, "Pos_Fun_0001 [Failed] no acceptable match")
	assert.Contains(t, out, "└── Negative-Functional (1)")
	assert.Contains(t, out, "Neg_Fun_0002 [Inconclusive] translator returned no output")
}

func TestPrintMetaStats_AllPassed(t *testing.T) {
	var buf bytes.Buffer
	NewFormatter(config.New(), &buf).PrintMetaStats(&domain.RunOutput{
		Meta: domain.RunMeta{TotalCases: 2, PassedCases: 2},
	})
	assert.Contains(t, buf.String(), "✓ All cases passed!")
}

func TestPrintCaseList(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(config.New(), &buf)

	list := []domain.TestCase{
		{ID: "Pos_Fun_0001", Name: "Greeting", Disposition: domain.DispositionPass},
		{ID: "Neg_Fun_0001", Name: "Typo", Disposition: domain.DispositionFail},
		{ID: "Pos_UI_0001", Name: "Realtime", Disposition: domain.DispositionPass},
	}
	f.PrintCaseList(list, map[string]struct{}{"Neg_Fun_0001": {}})

	out := buf.String()
	assert.Contains(t, out, "Found 3 case(s)")
	assert.Contains(t, out, "Pos_Fun_0001 - Greeting\n")
	assert.Contains(t, out, "Neg_Fun_0001 - Typo [F]")
	assert.Contains(t, out, "└── UI (1)")
}

func TestPrintVerdict(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(config.New(), &buf)

	f.PrintVerdict("Pos_Fun_0001", domain.Verdict{Matched: true})
	f.PrintVerdict("", domain.Verdict{Diagnostic: &domain.Diagnostic{Reference: "මම", Observed: "ඔබ"}})

	out := buf.String()
	assert.Contains(t, out, "✓ Pos_Fun_0001: acceptable match")
	assert.Contains(t, out, "✗ (no case): no acceptable match")
	assert.Contains(t, out, `Reference: "මම"`)
}

func TestFormatFailureDetails(t *testing.T) {
	details := formatFailureDetails(domain.Failure{
		CaseID:    "Neg_Fun_0003",
		Name:      "Brackets [x]",
		Category:  domain.CategoryNegative,
		Outcome:   domain.OutcomeInconclusive,
		Input:     "mama",
		Reference: "මම",
		Cycles:    3,
		Message:   "translator returned no output",
	})

	assert.Contains(t, details, "[yellow]✗ Inconclusive: Neg_Fun_0003")
	assert.Contains(t, details, "Brackets [x[]")
	assert.Contains(t, details, "[cyan]Cycles:[white] 3")
	assert.Contains(t, details, "[yellow]Observed:[white]\n(empty)")
}

func TestListItemText(t *testing.T) {
	f := domain.Failure{CaseID: "Pos_Fun_0001", Name: "Greeting"}
	assert.Equal(t, "[yellow]1.[white] Pos_Fun_0001 - Greeting", listItemText(f, 0, false))
	assert.Equal(t, "[gray]✓ [yellow]2.[gray] Pos_Fun_0001 - Greeting[white]", listItemText(f, 1, true))
}

func TestProgressBar(t *testing.T) {
	var buf bytes.Buffer
	p := newProgressBar(3, &buf)
	p.Update(1, 1, 1)
	p.Finish()
	require.NotEmpty(t, buf.String())
}
