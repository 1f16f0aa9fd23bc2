package parser

import (
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/ukaji3/tabload-go/pkg/tabload/models"
)

// SpreadsheetOptions configures a SpreadsheetSource.
type SpreadsheetOptions struct {
	// Sheet is the worksheet selected on Open. Empty selects index 0.
	Sheet string
	// Area restricts reading to an A1-style range such as "B2:D10".
	Area string
	// Header consumes the first row of each selected worksheet as aliases.
	Header bool
	// Typed converts numeric cell text to int64 or float64.
	Typed bool
	// Opener parses workbooks. Defaults to OpenExcelWorkbook.
	Opener WorkbookOpener
}

// SpreadsheetSource reads worksheet rows as records.
//
// The position is a 0-based worksheet row index. Record keys are 1-based
// positions counted from the first column of the sheet's column range, and
// provenance reports 1-based rows as they appear on screen.
type SpreadsheetSource struct {
	opts     SpreadsheetOptions
	log      logrus.FieldLogger
	path     string
	area     *Area
	book     Workbook
	sheet    Worksheet
	position int
	aliases  models.Aliases
}

// NewSpreadsheetSource creates a SpreadsheetSource. A nil log discards output.
func NewSpreadsheetSource(opts SpreadsheetOptions, log logrus.FieldLogger) *SpreadsheetSource {
	if opts.Opener == nil {
		opts.Opener = OpenExcelWorkbook
	}
	return &SpreadsheetSource{opts: opts, log: loggerOrDiscard(log)}
}

// Open parses the workbook at path and selects the initial worksheet.
func (s *SpreadsheetSource) Open(path string) error {
	if err := s.Close(); err != nil {
		s.log.WithError(err).Warn("closing previous workbook")
	}

	s.path = path
	s.area = nil
	if s.opts.Area != "" {
		area, err := ParseArea(s.opts.Area)
		if err != nil {
			return fmt.Errorf("invalid area %q: %w", s.opts.Area, err)
		}
		s.area = &area
	}

	book, err := s.opts.Opener(path)
	if err != nil {
		return &SourceError{Path: path, Op: "open workbook", Err: err}
	}
	s.book = book

	if s.opts.Sheet != "" {
		s.SelectSheet(s.opts.Sheet)
	} else {
		s.SelectSheetIndex(0)
	}
	return nil
}

// SelectSheet makes the named worksheet current and rewinds to its first row.
// An unknown or unreadable worksheet is logged with its cause and leaves no
// worksheet selected at position 0.
func (s *SpreadsheetSource) SelectSheet(name string) {
	if s.book == nil {
		s.setSheet(nil, fmt.Errorf("%w: %q", ErrWorksheetNotFound, name), name)
		return
	}
	ws, err := s.book.Sheet(name)
	s.setSheet(ws, err, name)
}

// SelectSheetIndex is SelectSheet by 0-based worksheet index.
func (s *SpreadsheetSource) SelectSheetIndex(index int) {
	if s.book == nil {
		s.setSheet(nil, fmt.Errorf("%w: index %d", ErrWorksheetNotFound, index), index)
		return
	}
	ws, err := s.book.SheetAt(index)
	s.setSheet(ws, err, index)
}

func (s *SpreadsheetSource) setSheet(ws Worksheet, err error, ref any) {
	s.aliases = nil
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"path":  s.path,
			"sheet": ref,
		}).WithError(err).Error("worksheet not selected")
		s.sheet = nil
		s.position = 0
		return
	}

	if s.area != nil {
		ws = areaSheet{Worksheet: ws, area: *s.area}
	}
	s.sheet = ws
	first, last := ws.RowRange()
	s.position = first
	s.log.WithFields(logrus.Fields{
		"path":      s.path,
		"sheet":     ws.Name(),
		"first_row": first + 1,
		"last_row":  last + 1,
	}).Debug("worksheet selected")

	if s.opts.Header && first <= last {
		header := s.rowValues(s.position)
		names := make([]string, len(header))
		for i, v := range header {
			names[i] = cast.ToString(v)
		}
		s.aliases = models.AliasesFromHeader(names)
		s.position++
	}
}

// Worksheet returns the current worksheet, or nil when none is selected.
func (s *SpreadsheetSource) Worksheet() Worksheet {
	return s.sheet
}

// Position returns the 0-based index of the next row to read.
func (s *SpreadsheetSource) Position() int {
	return s.position
}

// Aliases returns the header aliases of the current worksheet.
func (s *SpreadsheetSource) Aliases() models.Aliases {
	return s.aliases
}

// ReadRecord returns the row at the current position and advances by one.
func (s *SpreadsheetSource) ReadRecord() (*models.Record, error) {
	if s.sheet == nil {
		return nil, io.EOF
	}
	_, last := s.sheet.RowRange()
	if s.position > last {
		return nil, io.EOF
	}

	row := s.position
	values := s.rowValues(row)
	s.position++

	rec := models.FromValues(values...)
	rec.Provenance = fmt.Sprintf("%s[%s] row %d", s.path, s.sheet.Name(), row+1)
	rec.Blank = models.IsEmpty(values)
	return rec, nil
}

// rowValues collects the cells of row across the column range.
// Missing cells are returned as "".
func (s *SpreadsheetSource) rowValues(row int) []any {
	first, last := s.sheet.ColRange()
	values := make([]any, 0, max(last-first+1, 0))
	for col := first; col <= last; col++ {
		text, ok := s.sheet.Cell(row, col)
		if !ok {
			s.log.WithField("cell", CellLabel(row, col)).Debug("missing cell")
			values = append(values, "")
			continue
		}
		if s.opts.Typed {
			values = append(values, parseValue(text))
		} else {
			values = append(values, text)
		}
	}
	return values
}

// Close releases the workbook.
func (s *SpreadsheetSource) Close() error {
	if s.book == nil {
		return nil
	}
	err := s.book.Close()
	s.book = nil
	s.sheet = nil
	s.position = 0
	return err
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
