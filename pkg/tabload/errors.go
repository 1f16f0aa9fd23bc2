package tabload

import (
	"errors"

	"github.com/ukaji3/tabload-go/pkg/tabload/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnsupportedFormat indicates no adapter handles the input file.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Errors reported by the adapters.
var (
	ErrSourceUnreadable  = parser.ErrSourceUnreadable
	ErrWorksheetNotFound = parser.ErrWorksheetNotFound
	ErrRowParse          = parser.ErrRowParse
)

// SinkError wraps a failure returned by a Sink while forwarding a record.
type SinkError struct {
	Provenance string
	Err        error
}

func (e *SinkError) Error() string {
	return "sink rejected record at " + e.Provenance + ": " + e.Err.Error()
}

func (e *SinkError) Unwrap() error {
	return e.Err
}
