// Package main provides the CLI entry point for tabload-go.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ukaji3/tabload-go/pkg/tabload"
	"github.com/ukaji3/tabload-go/pkg/tabload/output"
)

var (
	outputPath string
	pretty     bool
	lines      bool
	format     string
	logLevel   string
	logFormat  string

	sheet  string
	area   string
	header bool
	typed  bool

	comma      string
	skip       int
	skipPrefix string
	noHeader   bool
	encoding   string
	lazyQuotes bool

	skipBlank bool
	strict    bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tabload [input]",
		Short: "Read spreadsheet and delimited text records",
		Long: `tabload-go reads an Excel workbook or a delimited text file
record by record and outputs JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	flags.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	flags.BoolVar(&lines, "lines", false, "Write one JSON object per line")
	flags.StringVar(&format, "format", "", "Input format: spreadsheet, delimited, tabbed (default: by extension)")
	flags.StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	flags.StringVar(&logFormat, "log-format", "text", "Log format: text or json")

	flags.StringVar(&sheet, "sheet", "", "Worksheet to read (default: first)")
	flags.StringVar(&area, "area", "", "Cell range to read, e.g. B2:D10")
	flags.BoolVar(&header, "header", false, "Treat the first worksheet row as header")
	flags.BoolVar(&typed, "typed", false, "Convert numeric cells to numbers")

	flags.StringVar(&comma, "comma", "", "Field separator (default: , or tab for .tsv)")
	flags.IntVar(&skip, "skip", 0, "Number of leading lines to discard")
	flags.StringVar(&skipPrefix, "skip-prefix", "", "Discard leading lines starting with this prefix")
	flags.BoolVar(&noHeader, "no-header", false, "First line is data, not column names")
	flags.StringVar(&encoding, "encoding", "", "Input charset: utf-8, latin1, latin9, windows-1252")
	flags.BoolVar(&lazyQuotes, "lazy-quotes", false, "Tolerate stray quotes")

	flags.BoolVar(&skipBlank, "skip-blank", true, "Drop blank rows")
	flags.BoolVar(&strict, "strict", false, "Fail when the worksheet does not exist")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) (retErr error) {
	inputPath := args[0]

	logger, err := newLogger(logLevel, logFormat)
	if err != nil {
		return err
	}

	opts, err := buildOptions(logger)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil && retErr == nil {
				retErr = fmt.Errorf("failed to close output: %w", err)
			}
		}()
		w = f
	}
	bw := bufio.NewWriter(w)
	if err := writeRecords(bw, inputPath, opts); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func writeRecords(w io.Writer, inputPath string, opts tabload.Options) error {
	if lines {
		if _, err := tabload.Load(inputPath, opts, output.NewJSONLines(w)); err != nil {
			return fmt.Errorf("load failed: %w", err)
		}
		return nil
	}

	var c tabload.Collector
	if _, err := tabload.Load(inputPath, opts, &c); err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	jsonData, err := output.ToJSON(c.Records, c.Aliases, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if _, err := w.Write(append(jsonData, '\n')); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func buildOptions(logger logrus.FieldLogger) (tabload.Options, error) {
	opts := tabload.DefaultOptions()
	opts.Logger = logger
	opts.SkipBlank = skipBlank
	opts.Strict = strict

	switch tabload.Format(format) {
	case tabload.FormatAuto, tabload.FormatSpreadsheet, tabload.FormatDelimited, tabload.FormatTabbed:
		opts.Format = tabload.Format(format)
	default:
		return opts, fmt.Errorf("invalid format: %s (must be spreadsheet, delimited, or tabbed)", format)
	}

	opts.Spreadsheet.Sheet = sheet
	opts.Spreadsheet.Area = area
	opts.Spreadsheet.Header = header
	opts.Spreadsheet.Typed = typed

	if comma != "" {
		r, size := utf8.DecodeRuneInString(unescape(comma))
		if r == utf8.RuneError || size != len(unescape(comma)) {
			return opts, fmt.Errorf("invalid separator: %q", comma)
		}
		opts.Delimited.Comma = r
	}
	opts.Delimited.SkipLines = skip
	if skipPrefix != "" {
		prefix := skipPrefix
		opts.Delimited.SkipFunc = func(line string) bool {
			return strings.HasPrefix(line, prefix)
		}
	}
	opts.Delimited.NoHeader = noHeader
	opts.Delimited.Encoding = encoding
	opts.Delimited.LazyQuotes = lazyQuotes

	return opts, nil
}

// unescape lets "\t" be typed on the command line.
func unescape(s string) string {
	if s == `\t` {
		return "\t"
	}
	return s
}

func newLogger(level, format string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(lvl)

	switch format {
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid log format: %s (must be text or json)", format)
	}
	return logger, nil
}
