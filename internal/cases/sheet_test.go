package cases

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ttp/internal/domain"
)

type memWorkbook map[string][][]string

func (m memWorkbook) Sheets() []string {
	var names []string
	for name := range m {
		names = append(names, name)
	}
	return names
}

func (m memWorkbook) Rows(sheet string) ([][]string, error) {
	rows, ok := m[sheet]
	if !ok {
		return nil, errors.New("no such sheet")
	}
	return rows, nil
}

func header() []string {
	return []string{"TC ID", "Test case name", "Input", "Expected output", "Actual output", "Status"}
}

func TestParseRows(t *testing.T) {
	rows := [][]string{
		{"IT3040 Assignment 1"},
		{},
		{" TC ID ", "Test case name ", "Input", "Expected output", "Actual output", " Status"},
		{" Pos_Fun_0001 ", " Convert a simple sentence ", " mama gedhara yanavaa. ", "මම ගෙදර යනවා.", "මම ගෙදර යනවා.", " pass "},
		{"", "orphan row", "x"},
		{"Neg_Fun_0001", "Severely misspelled input", "mtaa gdr ynva", "Incorrect Sinhala output", "(Observed output)", "Fail"},
		{"Pos_Fun_0002", "Short row"},
	}

	cases, err := ParseRows(rows, "TC ID")
	require.NoError(t, err)
	require.Len(t, cases, 3)

	assert.Equal(t, domain.TestCase{
		ID:          "Pos_Fun_0001",
		Name:        "Convert a simple sentence",
		Input:       " mama gedhara yanavaa. ",
		Expected:    "මම ගෙදර යනවා.",
		Actual:      "මම ගෙදර යනවා.",
		Disposition: domain.DispositionPass,
	}, cases[0])
	assert.Equal(t, domain.DispositionFail, cases[1].Disposition)
	assert.Equal(t, "Pos_Fun_0002", cases[2].ID)
	assert.Empty(t, cases[2].Input)
	assert.Equal(t, domain.DispositionFail, cases[2].Disposition)
}

func TestParseRows_ColumnOrder(t *testing.T) {
	rows := [][]string{
		{"TC ID", "Status", "Actual output", "Expected output", "Input", "Test case name", "Notes"},
		{"Pos_UI_0001", "Pass", "updates", "updates", "mama", "Real-time output update", "typed"},
	}

	cases, err := ParseRows(rows, "TC ID")
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "mama", cases[0].Input)
	assert.Equal(t, "Real-time output update", cases[0].Name)
	assert.True(t, cases[0].IsUI())
}

func TestParseRows_Errors(t *testing.T) {
	t.Run("header not found", func(t *testing.T) {
		_, err := ParseRows([][]string{{"ID", "Name"}, {"Pos_Fun_0001"}}, "TC ID")
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.ErrorIs(t, err, ErrHeaderNotFound)
	})

	t.Run("header must be in the first cell", func(t *testing.T) {
		_, err := ParseRows([][]string{{"", "TC ID"}}, "TC ID")
		assert.ErrorIs(t, err, ErrHeaderNotFound)
	})

	t.Run("missing columns are listed", func(t *testing.T) {
		_, err := ParseRows([][]string{{"TC ID", "Input", "Status"}}, "TC ID")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.ErrorIs(t, err, ErrMissingColumn)
		assert.Contains(t, err.Error(), "Test case name, Expected output, Actual output")
	})
}

func TestSheetSource_Load(t *testing.T) {
	wb := memWorkbook{
		"Summary":   {{"nothing here"}},
		"TestCases": {header(), {"Pos_Fun_0001", "n", "i", "e", "a", "Pass"}},
	}
	open := func(string) (Workbook, error) { return wb, nil }

	t.Run("reads the named sheet", func(t *testing.T) {
		cases, err := SheetSource{Path: "cases.xlsx", Sheet: "TestCases", Open: open}.Load()
		require.NoError(t, err)
		assert.Equal(t, []string{"Pos_Fun_0001"}, ids(cases))
	})

	t.Run("missing sheet", func(t *testing.T) {
		_, err := SheetSource{Path: "cases.xlsx", Sheet: "Cases", Open: open}.Load()
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.ErrorIs(t, err, ErrSheetNotFound)
	})

	t.Run("open error is returned", func(t *testing.T) {
		boom := errors.New("corrupt zip")
		_, err := SheetSource{Path: "cases.xlsx", Sheet: "TestCases", Open: func(string) (Workbook, error) {
			return nil, boom
		}}.Load()
		assert.ErrorIs(t, err, boom)
	})
}
