package ui

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"ttp/internal/config"
	"ttp/internal/domain"
)

var titleCaser = cases.Title(language.English)

// title turns outcome labels like "inconclusive" into headings
func title(s string) string {
	return titleCaser.String(s)
}

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to out; nil means stdout
func NewFormatter(cfg *config.Config, out io.Writer) *Formatter {
	if out == nil {
		out = color.Output
	}
	return &Formatter{
		config: cfg,
		out:    out,
	}
}

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
	gray   = color.New(color.FgHiBlack)
)

func (f *Formatter) line(c *color.Color, format string, args ...any) {
	c.Fprintf(f.out, format+"\n", args...)
}

// PrintMetaStats displays the statistics of a run and the failure tree
func (f *Formatter) PrintMetaStats(output *domain.RunOutput) {
	meta := output.Meta

	// Print header
	fmt.Fprint(f.out, "\n")
	f.line(cyan, "╔═══════════════════════════════════════════════════════════════╗")
	f.line(cyan, "║                  Translation Run Statistics                   ║")
	f.line(cyan, "╚═══════════════════════════════════════════════════════════════╝\n")

	rows := []struct {
		label string
		c     *color.Color
		value string
	}{
		{"Total Cases", white, fmt.Sprint(meta.TotalCases)},
		{"Passed Cases", green, fmt.Sprint(meta.PassedCases)},
		{"Failed Cases", red, fmt.Sprint(meta.FailedCases)},
		{"Inconclusive Cases", yellow, fmt.Sprint(meta.InconclusiveCases)},
		{"Source", white, meta.Source},
		{"Driver", white, meta.Driver},
		{"Duration", white, fmt.Sprintf("%.2fs", meta.DurationSeconds)},
		{"Timestamp", white, meta.Timestamp},
		{"Fingerprint", gray, shorten(meta.Fingerprint, 27)},
	}

	// Print table
	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ ", row.label)
		row.c.Fprintf(f.out, "%-27s │\n", row.value)
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	// Print summary line
	fmt.Fprintln(f.out)
	switch {
	case meta.FailedCases == 0 && meta.InconclusiveCases == 0:
		f.line(green, "✓ All cases passed!")
	case meta.FailedCases == 0:
		f.line(yellow, "✓ No failures, %d case(s) inconclusive", meta.InconclusiveCases)
	default:
		f.line(red, "✗ %d case(s) failed, %d inconclusive", meta.FailedCases, meta.InconclusiveCases)
	}
	if len(output.Details) > 0 {
		fmt.Fprintln(f.out)
		f.printFailureTree(output.Details)
	}
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// printFailureTree prints failures grouped by category, then by outcome
func (f *Formatter) printFailureTree(failures []domain.Failure) {
	byCategory := make(map[domain.Category][]domain.Failure)
	for _, failure := range failures {
		byCategory[failure.Category] = append(byCategory[failure.Category], failure)
	}

	var groups []domain.Category
	for _, c := range domain.Categories {
		if len(byCategory[c]) > 0 {
			groups = append(groups, c)
		}
	}

	for i, category := range groups {
		isLastGroup := i == len(groups)-1
		connector, childPrefix := "├── ", "│   "
		if isLastGroup {
			connector, childPrefix = "└── ", "    "
		}
		items := byCategory[category]
		f.line(cyan, "%s%s (%d)", connector, category, len(items))

		for j, failure := range items {
			caseConnector := "├── "
			if j == len(items)-1 {
				caseConnector = "└── "
			}
			c := red
			if failure.Outcome == domain.OutcomeInconclusive {
				c = yellow
			}
			f.line(c, "%s%s%s [%s] %s", childPrefix, caseConnector, failure.CaseID, title(string(failure.Outcome)), failure.Message)
		}
	}
}

// PrintCaseList prints cases grouped by category. Cases in failed are marked
// with [F] (from the last run).
func (f *Formatter) PrintCaseList(list []domain.TestCase, failed map[string]struct{}) {
	f.line(green, "Found %d case(s):\n", len(list))

	byCategory := make(map[domain.Category][]domain.TestCase)
	for _, tc := range list {
		byCategory[tc.Category()] = append(byCategory[tc.Category()], tc)
	}
	var groups []domain.Category
	for _, c := range domain.Categories {
		if len(byCategory[c]) > 0 {
			groups = append(groups, c)
		}
	}

	for i, category := range groups {
		isLastGroup := i == len(groups)-1
		connector, childPrefix := "├── ", "│   "
		if isLastGroup {
			connector, childPrefix = "└── ", "    "
		}
		items := byCategory[category]
		f.line(cyan, "%s%s (%d)", connector, category, len(items))

		for j, tc := range items {
			caseConnector := "├── "
			if j == len(items)-1 {
				caseConnector = "└── "
			}
			failMarker := ""
			if _, ok := failed[tc.ID]; ok {
				failMarker = " " + red.Sprint("[F]")
			}
			fmt.Fprintf(f.out, "%s%s%s%s\n", childPrefix, caseConnector, yellow.Sprint(tc.Title()), failMarker)
		}
		if !isLastGroup {
			fmt.Fprintln(f.out, "│")
		}
	}
}

// PrintSources prints fixture files relative to the project path
func (f *Formatter) PrintSources(files []string) {
	f.line(green, "Found %d fixture file(s):\n", len(files))
	for i, file := range files {
		relPath, err := filepath.Rel(f.config.ProjectPath, file)
		if err != nil {
			relPath = file
		}
		if i == len(files)-1 {
			f.line(cyan, "└── %s", relPath)
		} else {
			f.line(cyan, "├── %s", relPath)
		}
	}
}

// PrintVerdict prints the result of an offline oracle check
func (f *Formatter) PrintVerdict(caseID string, verdict domain.Verdict) {
	label := caseID
	if label == "" {
		label = "(no case)"
	}
	if verdict.Matched {
		f.line(green, "✓ %s: acceptable match", label)
		return
	}
	f.line(red, "✗ %s: no acceptable match", label)
	if d := verdict.Diagnostic; d != nil {
		fmt.Fprintf(f.out, "  %s %q\n", white.Sprint("Reference:"), d.Reference)
		fmt.Fprintf(f.out, "  %s %q\n", white.Sprint("Observed: "), d.Observed)
	}
}

