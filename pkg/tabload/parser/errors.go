package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
)

// ErrSourceUnreadable indicates the source file cannot be opened or parsed at all.
var ErrSourceUnreadable = errors.New("source unreadable")

// ErrWorksheetNotFound indicates the requested worksheet is not in the workbook.
var ErrWorksheetNotFound = errors.New("worksheet not found")

// ErrRowParse indicates a line could not be tokenized.
var ErrRowParse = errors.New("row parse failure")

// ErrUnknownEncoding indicates an unsupported input character set.
var ErrUnknownEncoding = errors.New("unknown encoding")

var errEmbeddedNewline = errors.New("quoted field contains a newline")

// SourceError represents a failure to open or prepare a source.
type SourceError struct {
	Path string
	Op   string // "open", "open workbook", "skip lines"
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%v: %s %s: %v", ErrSourceUnreadable, e.Op, e.Path, e.Err)
}

// Unwrap matches both ErrSourceUnreadable and the underlying cause.
func (e *SourceError) Unwrap() []error {
	return []error{ErrSourceUnreadable, e.Err}
}

// ParseError represents a line of delimited text that failed to tokenize.
type ParseError struct {
	Path string
	// Line is the 1-based physical input line where the failure was detected.
	Line int
	// Column is the approximate 1-based character position in that line.
	Column int
	// Code classifies the failure: "quote", "bare_quote", "field_count",
	// "embedded_newline" or "read".
	Code string
	Err  error
}

// Column 0 means the column is unknown and is left out of the message.
func (e *ParseError) Error() string {
	if e.Column == 0 {
		return fmt.Sprintf("%s line %d: %s: %v", e.Path, e.Line, e.Code, e.Err)
	}
	return fmt.Sprintf("%s line %d, column %d: %s: %v", e.Path, e.Line, e.Column, e.Code, e.Err)
}

// Unwrap matches both ErrRowParse and the tokenizer's error.
func (e *ParseError) Unwrap() []error {
	return []error{ErrRowParse, e.Err}
}

// parseErrorCode maps tokenizer errors to diagnostic codes.
func parseErrorCode(err error) string {
	switch {
	case errors.Is(err, csv.ErrQuote):
		return "quote"
	case errors.Is(err, csv.ErrBareQuote):
		return "bare_quote"
	case errors.Is(err, csv.ErrFieldCount):
		return "field_count"
	case errors.Is(err, errEmbeddedNewline):
		return "embedded_newline"
	default:
		return "read"
	}
}
