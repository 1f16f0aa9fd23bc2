package parser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/tabload-go/pkg/tabload/models"
	"golang.org/x/text/transform"
)

// DelimitedOptions configures a DelimitedSource.
type DelimitedOptions struct {
	// Comma is the field separator. Defaults to ','.
	Comma rune
	// Comment, when set, marks lines that the tokenizer ignores.
	Comment rune
	// LazyQuotes allows quotes to appear in unquoted fields and
	// non-doubled quotes in quoted fields.
	LazyQuotes bool
	// TrimLeadingSpace ignores leading white space in a field.
	TrimLeadingSpace bool
	// FieldsPerRecord, when positive, is the required field count per line.
	FieldsPerRecord int
	// AllowNewlines permits quoted fields spanning several lines.
	AllowNewlines bool
	// SkipLines discards that many raw lines before parsing.
	SkipLines int
	// SkipFunc discards raw lines while it returns true. It takes
	// precedence over SkipLines.
	SkipFunc func(line string) bool
	// NoHeader treats the first retained line as data.
	NoHeader bool
	// Encoding is the input charset: utf-8 (default), latin1, latin9 or windows-1252.
	Encoding string
}

// DelimitedSource reads lines of delimited text as records.
//
// Positions are 1-based physical input lines. Skipped lines and the header
// line count toward them, so provenance always names the line in the file.
type DelimitedSource struct {
	opts    DelimitedOptions
	log     logrus.FieldLogger
	path    string
	file    *os.File
	reader  *csv.Reader
	offset  int // raw lines consumed before the tokenizer's first line
	line    int // physical line of the last record read
	aliases models.Aliases
	done    bool
}

// NewDelimitedSource creates a DelimitedSource. A nil log discards output.
func NewDelimitedSource(opts DelimitedOptions, log logrus.FieldLogger) *DelimitedSource {
	if opts.Comma == 0 {
		opts.Comma = ','
	}
	if opts.FieldsPerRecord <= 0 {
		opts.FieldsPerRecord = -1
	}
	return &DelimitedSource{opts: opts, log: loggerOrDiscard(log)}
}

// Open opens path, discards the skipped lines and consumes the header.
func (s *DelimitedSource) Open(path string) error {
	if err := s.Close(); err != nil {
		s.log.WithError(err).Warn("closing previous file")
	}
	s.done = false
	s.offset = 0
	s.line = 0
	s.aliases = nil

	dec, err := decoderFor(s.opts.Encoding)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return &SourceError{Path: path, Op: "open", Err: err}
	}
	s.file = f
	s.path = path

	br := bufio.NewReader(transform.NewReader(f, dec))
	retained, err := s.skip(br)
	if err != nil {
		s.Close()
		return &SourceError{Path: path, Op: "skip lines", Err: err}
	}
	if s.offset > 0 {
		s.log.WithFields(logrus.Fields{"path": path, "lines": s.offset}).Debug("skipped leading lines")
	}

	var in io.Reader = br
	if retained != "" {
		in = io.MultiReader(strings.NewReader(retained), br)
	}
	s.reader = csv.NewReader(in)
	s.reader.Comma = s.opts.Comma
	s.reader.Comment = s.opts.Comment
	s.reader.LazyQuotes = s.opts.LazyQuotes
	s.reader.TrimLeadingSpace = s.opts.TrimLeadingSpace
	s.reader.FieldsPerRecord = s.opts.FieldsPerRecord

	if s.opts.NoHeader {
		return nil
	}

	header, _, err := s.readFields()
	if errors.Is(err, io.EOF) {
		s.finish()
		return nil
	}
	if err != nil {
		s.Close()
		return err
	}
	s.aliases = models.AliasesFromHeader(header)
	s.log.WithFields(logrus.Fields{"path": path, "columns": len(header)}).Debug("header aliases published")
	return nil
}

// skip runs the skipping policy and returns the first retained raw line
// when a predicate stopped on it.
func (s *DelimitedSource) skip(br *bufio.Reader) (string, error) {
	if s.opts.SkipFunc != nil {
		for {
			line, err := br.ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return "", err
			}
			if line == "" {
				return "", nil
			}
			if !s.opts.SkipFunc(strings.TrimRight(line, "\r\n")) {
				return line, nil
			}
			s.offset++
		}
	}

	for i := 0; i < s.opts.SkipLines; i++ {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		if line == "" {
			break
		}
		s.offset++
	}
	return "", nil
}

// Aliases returns the header aliases. Indexes are 1-based record keys.
func (s *DelimitedSource) Aliases() models.Aliases {
	return s.aliases
}

// ReadRecord parses the next line. A parse failure closes the file.
func (s *DelimitedSource) ReadRecord() (*models.Record, error) {
	if s.done || s.reader == nil {
		return nil, io.EOF
	}

	fields, line, err := s.readFields()
	if errors.Is(err, io.EOF) {
		s.finish()
		return nil, io.EOF
	}
	if err != nil {
		s.finish()
		return nil, err
	}

	values := make([]any, len(fields))
	for i, f := range fields {
		values[i] = f
	}
	rec := models.FromValues(values...)
	rec.Provenance = fmt.Sprintf("%s line %d", s.path, line)
	rec.Blank = models.IsEmpty(values)
	return rec, nil
}

// readFields tokenizes the next record and returns it with the physical
// line it started on.
func (s *DelimitedSource) readFields() ([]string, int, error) {
	fields, err := s.reader.Read()
	if err == io.EOF {
		return nil, 0, io.EOF
	}
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			// An unterminated quote runs to EOF; blame the line it opened on.
			col := pe.Column
			if pe.Line != pe.StartLine {
				col = 0
			}
			return nil, 0, s.parseError(s.offset+pe.StartLine, col, pe.Err)
		}
		return nil, 0, s.parseError(max(s.line+1, s.offset+1), 0, err)
	}

	start, _ := s.reader.FieldPos(0)
	s.line = s.offset + start
	if !s.opts.AllowNewlines {
		for i, f := range fields {
			if strings.Contains(f, "\n") {
				line, col := s.reader.FieldPos(i)
				return nil, 0, s.parseError(s.offset+line, col, errEmbeddedNewline)
			}
		}
	}
	return fields, s.line, nil
}

func (s *DelimitedSource) parseError(line, col int, err error) error {
	return &ParseError{
		Path:   s.path,
		Line:   line,
		Column: col,
		Code:   parseErrorCode(err),
		Err:    err,
	}
}

// finish marks the source exhausted and releases the file.
func (s *DelimitedSource) finish() {
	if err := s.Close(); err != nil {
		s.log.WithError(err).WithField("path", s.path).Warn("closing file")
	}
}

// Close releases the file. Further reads return io.EOF.
func (s *DelimitedSource) Close() error {
	s.done = true
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.reader = nil
	return err
}
