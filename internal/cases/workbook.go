package cases

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/xuri/excelize/v2"
)

// workbookTTL bounds how long a parsed workbook is reused
const workbookTTL = 5 * time.Minute

type excelWorkbook struct {
	sheets []string
	rows   map[string][][]string
}

func (w *excelWorkbook) Sheets() []string {
	return w.sheets
}

func (w *excelWorkbook) Rows(sheet string) ([][]string, error) {
	rows, ok := w.rows[sheet]
	if !ok {
		return nil, fmt.Errorf("no sheet %q", sheet)
	}
	return rows, nil
}

// readExcel parses every sheet of the workbook at path and closes the file
func readExcel(path string) (*excelWorkbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook %s: %v", ErrConfiguration, path, err)
	}
	defer f.Close()

	wb := &excelWorkbook{
		sheets: f.GetSheetList(),
		rows:   make(map[string][][]string),
	}
	for _, sheet := range wb.sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("%w: read sheet %q of %s: %v", ErrConfiguration, sheet, path, err)
		}
		wb.rows[sheet] = rows
	}
	return wb, nil
}

// WorkbookCache keeps parsed workbooks keyed by path and modification time,
// so an edited file is parsed again.
type WorkbookCache struct {
	cache *ttlcache.Cache[string, Workbook]
	parse func(path string) (*excelWorkbook, error)
}

// NewWorkbookCache creates a cache whose entries live for ttl
func NewWorkbookCache(ttl time.Duration) *WorkbookCache {
	return &WorkbookCache{
		cache: ttlcache.New(
			ttlcache.WithTTL[string, Workbook](ttl),
			ttlcache.WithDisableTouchOnHit[string, Workbook](),
		),
		parse: readExcel,
	}
}

// Open returns the cached workbook for path, parsing it on a miss
func (c *WorkbookCache) Open(path string) (Workbook, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook %s: %v", ErrConfiguration, path, err)
	}
	key := fmt.Sprintf("%s@%d", abs, info.ModTime().UnixNano())

	if item := c.cache.Get(key); item != nil {
		return item.Value(), nil
	}

	wb, err := c.parse(abs)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, wb, ttlcache.DefaultTTL)
	return wb, nil
}

// Len returns the number of cached workbooks
func (c *WorkbookCache) Len() int {
	return c.cache.Len()
}

var defaultWorkbooks = NewWorkbookCache(workbookTTL)

// OpenWorkbook opens path through the shared workbook cache
func OpenWorkbook(path string) (Workbook, error) {
	return defaultWorkbooks.Open(path)
}
