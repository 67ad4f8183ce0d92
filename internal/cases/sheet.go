package cases

import (
	"strings"

	"ttp/internal/domain"
)

// Required column headers of a case sheet
const (
	ColumnID       = "TC ID"
	ColumnName     = "Test case name"
	ColumnInput    = "Input"
	ColumnExpected = "Expected output"
	ColumnActual   = "Actual output"
	ColumnStatus   = "Status"
)

var requiredColumns = []string{ColumnID, ColumnName, ColumnInput, ColumnExpected, ColumnActual, ColumnStatus}

// Workbook is a parsed spreadsheet
type Workbook interface {
	Sheets() []string
	Rows(sheet string) ([][]string, error)
}

// WorkbookOpener opens the workbook at path
type WorkbookOpener func(path string) (Workbook, error)

// SheetSource reads cases from one sheet of a workbook
type SheetSource struct {
	Path        string
	Sheet       string
	HeaderLabel string
	Open        WorkbookOpener // nil uses the shared cached excelize opener
}

// Name describes the source
func (s SheetSource) Name() string {
	return s.Path + "#" + s.Sheet
}

// Load opens the workbook and parses the case rows of the sheet
func (s SheetSource) Load() ([]domain.TestCase, error) {
	open := s.Open
	if open == nil {
		open = OpenWorkbook
	}
	wb, err := open(s.Path)
	if err != nil {
		return nil, err
	}

	if !hasSheet(wb, s.Sheet) {
		return nil, configError(ErrSheetNotFound, "sheet %q not found in %s (have %s)", s.Sheet, s.Path, strings.Join(wb.Sheets(), ", "))
	}
	rows, err := wb.Rows(s.Sheet)
	if err != nil {
		return nil, configError(ErrSheetNotFound, "read sheet %q: %v", s.Sheet, err)
	}

	label := s.HeaderLabel
	if label == "" {
		label = ColumnID
	}
	return ParseRows(rows, label)
}

func hasSheet(wb Workbook, name string) bool {
	for _, sheet := range wb.Sheets() {
		if sheet == name {
			return true
		}
	}
	return false
}

// ParseRows finds the header row, the first row whose first cell is label,
// and decodes every following row that has an identifier.
func ParseRows(rows [][]string, label string) ([]domain.TestCase, error) {
	headerRow := -1
	for i, row := range rows {
		if len(row) > 0 && strings.TrimSpace(row[0]) == label {
			headerRow = i
			break
		}
	}
	if headerRow == -1 {
		return nil, configError(ErrHeaderNotFound, "no row starts with %q", label)
	}

	index := make(map[string]int)
	for i, cell := range rows[headerRow] {
		name := strings.TrimSpace(cell)
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, configError(ErrMissingColumn, "%s", strings.Join(missing, ", "))
	}

	var cases []domain.TestCase
	for _, row := range rows[headerRow+1:] {
		cell := func(col string) string {
			i := index[col]
			if i < len(row) {
				return row[i]
			}
			return ""
		}

		id := strings.TrimSpace(cell(ColumnID))
		if id == "" {
			continue
		}
		cases = append(cases, domain.TestCase{
			ID:          id,
			Name:        strings.TrimSpace(cell(ColumnName)),
			Input:       cell(ColumnInput),
			Expected:    cell(ColumnExpected),
			Actual:      cell(ColumnActual),
			Disposition: domain.ParseDisposition(cell(ColumnStatus)),
		})
	}
	return cases, nil
}
