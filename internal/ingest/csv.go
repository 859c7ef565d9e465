// Package ingest loads delimited text files into datasets. It is the
// reference path from files on disk to the in-memory value model; callers that
// already hold rows can construct a dataset directly.
package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/datapeek/datapeek/dataset"
	"github.com/datapeek/datapeek/pkg/errors"
)

// Option configures CSV reading.
type Option func(*config)

type config struct {
	delimiter rune
	maxRows   int
}

// WithDelimiter sets the field delimiter. The zero value sniffs among
// comma, semicolon and tab based on the first line.
func WithDelimiter(d rune) Option {
	return func(c *config) { c.delimiter = d }
}

// WithMaxRows caps the number of data rows read. Zero means unlimited.
func WithMaxRows(n int) Option {
	return func(c *config) { c.maxRows = n }
}

// ReadFile loads a CSV file into a dataset. The first row is the header;
// every later row becomes one record keyed by the header names.
func ReadFile(path string, opts ...Option) (*dataset.Dataset, error) {
	const op = "ingest.ReadFile"

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: open %s", op, path)
	}
	defer f.Close()

	cfg := buildConfig(opts)
	if cfg.delimiter == 0 {
		cfg.delimiter, err = sniffDelimiter(f)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: sniff delimiter", op)
		}
	}
	return read(f, cfg)
}

// Read loads CSV content from a reader. Unlike ReadFile it does not sniff
// the delimiter and defaults to a comma.
func Read(r io.Reader, opts ...Option) (*dataset.Dataset, error) {
	cfg := buildConfig(opts)
	if cfg.delimiter == 0 {
		cfg.delimiter = ','
	}
	return read(r, cfg)
}

func buildConfig(opts []Option) config {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func read(r io.Reader, cfg config) (*dataset.Dataset, error) {
	const op = "ingest.Read"

	cr := csv.NewReader(r)
	cr.Comma = cfg.delimiter
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.WithStack(errors.ErrEmptyData)
		}
		return nil, errors.Wrapf(err, "%s: read header", op)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	var records []dataset.Record
	for {
		if cfg.maxRows > 0 && len(records) >= cfg.maxRows {
			break
		}
		row, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, errors.Wrapf(err, "%s: read row %d", op, len(records)+2)
		}
		rec := make(dataset.Record, len(columns))
		for i, name := range columns {
			// Short rows leave trailing columns missing; extra cells are
			// dropped.
			if i < len(row) {
				rec[name] = row[i]
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}

	return dataset.New(columns, records), nil
}

// sniffDelimiter inspects the first line and picks the candidate that splits
// it into the most fields. The reader is rewound afterwards.
func sniffDelimiter(f *os.File) (rune, error) {
	buf := make([]byte, 4096)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return 0, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	line := string(buf[:n])
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}

	best := ','
	bestCount := strings.Count(line, ",")
	for _, cand := range []rune{';', '\t'} {
		if c := strings.Count(line, string(cand)); c > bestCount {
			best, bestCount = cand, c
		}
	}
	return best, nil
}
