// Package parser provides the record sources for spreadsheets and delimited text.
package parser

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/tabload-go/pkg/tabload/models"
)

// Source reads one file sequentially, one record at a time.
//
// Open binds the source to path and positions it at the first data row.
// ReadRecord returns the next record, or io.EOF once every row has been
// read; further calls keep returning io.EOF. Close releases the underlying
// handle and may be called more than once.
type Source interface {
	Open(path string) error
	ReadRecord() (*models.Record, error)
	// Aliases returns the header aliases published by the last Open.
	Aliases() models.Aliases
	Close() error
}

// discardLogger is used when no logger is supplied.
func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func loggerOrDiscard(log logrus.FieldLogger) logrus.FieldLogger {
	if log == nil {
		return discardLogger()
	}
	return log
}
