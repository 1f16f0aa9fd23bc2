package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook is a parsed workbook holding zero or more worksheets.
// Sheet and SheetAt return an error wrapping ErrWorksheetNotFound when no
// such worksheet exists, or the read error when it exists but cannot be loaded.
type Workbook interface {
	SheetNames() []string
	Sheet(name string) (Worksheet, error)
	SheetAt(index int) (Worksheet, error)
	Close() error
}

// Worksheet gives positional access to one sheet.
// Rows and columns are 0-based; a range with last < first is empty.
type Worksheet interface {
	Name() string
	RowRange() (first, last int)
	ColRange() (first, last int)
	// Cell returns the text at (row, col) and whether the cell exists.
	Cell(row, col int) (string, bool)
}

// WorkbookOpener parses the workbook at path.
type WorkbookOpener func(path string) (Workbook, error)

// excelWorkbook is a Workbook backed by excelize.
type excelWorkbook struct {
	f       *excelize.File
	names   []string
	sheets  map[string]*gridSheet
	getRows func(sheet string, opts ...excelize.Options) ([][]string, error)
}

// OpenExcelWorkbook opens an OOXML workbook (xlsx, xlsm, xltx, xltm).
func OpenExcelWorkbook(path string) (Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return &excelWorkbook{
		f:       f,
		names:   f.GetSheetList(),
		sheets:  make(map[string]*gridSheet),
		getRows: f.GetRows,
	}, nil
}

func (w *excelWorkbook) SheetNames() []string {
	return w.names
}

// Sheet matches names case-insensitively, as Excel does.
func (w *excelWorkbook) Sheet(name string) (Worksheet, error) {
	for _, n := range w.names {
		if strings.EqualFold(n, name) {
			return w.load(n)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrWorksheetNotFound, name)
}

func (w *excelWorkbook) SheetAt(index int) (Worksheet, error) {
	if index < 0 || index >= len(w.names) {
		return nil, fmt.Errorf("%w: index %d", ErrWorksheetNotFound, index)
	}
	return w.load(w.names[index])
}

func (w *excelWorkbook) load(name string) (Worksheet, error) {
	if s, ok := w.sheets[name]; ok {
		return s, nil
	}
	rows, err := w.getRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	s := newGridSheet(name, rows)
	w.sheets[name] = s
	return s, nil
}

func (w *excelWorkbook) Close() error {
	return w.f.Close()
}

// gridSheet is a Worksheet over a fully loaded grid of cell text.
type gridSheet struct {
	name           string
	rows           [][]string
	minRow, maxRow int
	minCol, maxCol int
}

func newGridSheet(name string, rows [][]string) *gridSheet {
	s := &gridSheet{name: name, rows: rows}
	s.minRow, s.maxRow, s.minCol, s.maxCol = findDataBounds(rows)
	if s.minRow < 0 {
		s.minRow, s.maxRow = 0, -1
		s.minCol, s.maxCol = 0, -1
	}
	return s
}

func (s *gridSheet) Name() string { return s.name }

func (s *gridSheet) RowRange() (int, int) { return s.minRow, s.maxRow }

func (s *gridSheet) ColRange() (int, int) { return s.minCol, s.maxCol }

func (s *gridSheet) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(s.rows) || col < 0 || col >= len(s.rows[row]) {
		return "", false
	}
	return s.rows[row][col], true
}

// findDataBounds finds the bounding box of non-empty cells.
// All bounds are -1 when the grid has no data.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if minRow < 0 {
				minRow = rowIdx
			}
			maxRow = rowIdx
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}

// areaSheet restricts a Worksheet to an Area.
type areaSheet struct {
	Worksheet
	area Area
}

func (s areaSheet) RowRange() (int, int) {
	first, last := s.Worksheet.RowRange()
	return clampRange(first, last, s.area.FirstRow, s.area.LastRow)
}

func (s areaSheet) ColRange() (int, int) {
	first, last := s.Worksheet.ColRange()
	return clampRange(first, last, s.area.FirstCol, s.area.LastCol)
}

// clampRange intersects [first, last] with [lo, hi]. Empty inputs stay empty.
func clampRange(first, last, lo, hi int) (int, int) {
	if last < first {
		return first, last
	}
	return max(first, lo), min(last, hi)
}
