package tabload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/tabload-go/pkg/tabload/parser"
)

// Stats summarises a Load.
type Stats struct {
	// Records is the number of records forwarded to the sink.
	Records int
	// Blank is the number of blank records dropped.
	Blank int
}

// DetectFormat maps a file extension to a Format.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatSpreadsheet
	case ".csv", ".txt":
		return FormatDelimited
	case ".tsv", ".tab":
		return FormatTabbed
	default:
		return FormatAuto
	}
}

// Open checks that path exists, picks an adapter and opens it.
// The returned source is positioned at its first data row.
func Open(path string, opts Options) (parser.Source, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	format := opts.Format
	if format == FormatAuto {
		format = DetectFormat(path)
	}

	var src parser.Source
	switch format {
	case FormatSpreadsheet:
		src = parser.NewSpreadsheetSource(opts.Spreadsheet, opts.Logger)
	case FormatDelimited:
		src = parser.NewDelimitedSource(opts.Delimited, opts.Logger)
	case FormatTabbed:
		d := opts.Delimited
		if d.Comma == 0 {
			d.Comma = '\t'
		}
		src = parser.NewDelimitedSource(d, opts.Logger)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	if err := src.Open(path); err != nil {
		return nil, err
	}

	if ss, ok := src.(*parser.SpreadsheetSource); ok && opts.Strict && ss.Worksheet() == nil {
		ss.Close()
		return nil, fmt.Errorf("%w: %q in %s", ErrWorksheetNotFound, opts.Spreadsheet.Sheet, path)
	}
	return src, nil
}

// Load reads every record of path into sink. Aliases are published first.
// The source is closed on return, including when reading or the sink fails;
// records forwarded before a failure stay delivered.
func Load(path string, opts Options, sink Sink) (Stats, error) {
	var stats Stats

	src, err := Open(path, opts)
	if err != nil {
		return stats, err
	}
	defer src.Close()

	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	log = log.WithField("path", path)

	for _, alias := range src.Aliases() {
		sink.AddAlias(alias.Name, alias.Index)
	}

	for {
		rec, err := src.ReadRecord()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.WithError(err).WithField("records", stats.Records).Error("read failed")
			return stats, err
		}
		if rec.Blank && opts.SkipBlank {
			stats.Blank++
			continue
		}
		if err := sink.Record(rec); err != nil {
			return stats, &SinkError{Provenance: rec.Provenance, Err: err}
		}
		stats.Records++
	}

	log.WithFields(logrus.Fields{
		"records": stats.Records,
		"blank":   stats.Blank,
	}).Info("source loaded")
	return stats, nil
}
