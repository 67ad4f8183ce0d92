package domain

import "strings"

// Disposition tells whether a case is expected to produce an acceptable translation
type Disposition string

const (
	DispositionPass Disposition = "Pass"
	DispositionFail Disposition = "Fail"
)

// ParseDisposition maps a status cell to a Disposition. Anything other than "pass" is a Fail.
func ParseDisposition(status string) Disposition {
	if strings.EqualFold(strings.TrimSpace(status), string(DispositionPass)) {
		return DispositionPass
	}
	return DispositionFail
}

// Category groups cases by identifier prefix
type Category string

const (
	CategoryPositive Category = "Positive-Functional"
	CategoryNegative Category = "Negative-Functional"
	CategoryUI       Category = "UI"
)

// Categories lists categories in report order
var Categories = []Category{CategoryPositive, CategoryNegative, CategoryUI}

// TestCase represents a single translation case
type TestCase struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Input       string      `json:"input" yaml:"input"`
	Expected    string      `json:"expected" yaml:"expected"`
	Actual      string      `json:"actual" yaml:"actual"` // Reference output recorded for the case
	Disposition Disposition `json:"status" yaml:"status"`
}

// Category derives the case category from its identifier prefix
func (tc TestCase) Category() Category {
	id := tc.ID
	switch {
	case strings.HasPrefix(id, "Pos_UI_"), strings.HasPrefix(id, "Neg_UI_"):
		return CategoryUI
	case strings.HasPrefix(id, "Pos_"):
		return CategoryPositive
	case strings.HasPrefix(id, "Neg_"):
		return CategoryNegative
	}
	if tc.Disposition == DispositionPass {
		return CategoryPositive
	}
	return CategoryNegative
}

// IsUI reports whether the case only checks that typed input produces output
func (tc TestCase) IsUI() bool {
	return tc.Category() == CategoryUI
}

// Title returns "<id> - <name>", the label used in listings and logs
func (tc TestCase) Title() string {
	if tc.Name == "" {
		return tc.ID
	}
	return tc.ID + " - " + tc.Name
}
