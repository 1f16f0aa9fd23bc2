// Package tabload reads spreadsheets and delimited text files record by record.
package tabload

import (
	"github.com/sirupsen/logrus"
	"github.com/ukaji3/tabload-go/pkg/tabload/parser"
)

// Format selects the source adapter.
type Format string

const (
	// FormatAuto picks the adapter from the file extension.
	FormatAuto Format = ""
	// FormatSpreadsheet reads OOXML workbooks (xlsx, xlsm, xltx, xltm).
	FormatSpreadsheet Format = "spreadsheet"
	// FormatDelimited reads comma separated text.
	FormatDelimited Format = "delimited"
	// FormatTabbed reads tab separated text.
	FormatTabbed Format = "tabbed"
)

// Options configures Open and Load.
type Options struct {
	// Format overrides extension-based adapter selection.
	Format Format
	// Spreadsheet configures the spreadsheet adapter.
	Spreadsheet parser.SpreadsheetOptions
	// Delimited configures the delimited-text adapter.
	Delimited parser.DelimitedOptions
	// SkipBlank drops records the adapter marked blank.
	SkipBlank bool
	// Strict makes a missing worksheet an error instead of an empty source.
	Strict bool
	// Logger receives adapter diagnostics. If nil, output is discarded.
	Logger logrus.FieldLogger
}

// DefaultOptions returns default load options.
func DefaultOptions() Options {
	return Options{
		Format:    FormatAuto,
		SkipBlank: true,
	}
}
