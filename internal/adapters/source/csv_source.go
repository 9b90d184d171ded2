package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"schedule-comparison-service/internal/domain"
)

// CSVFileSource reads a schedule export from a CSV file on disk.
// The first record is treated as the header.
type CSVFileSource struct {
	Path   string
	Format domain.SourceFormat
}

func NewCSVFileSource(path string, format domain.SourceFormat) *CSVFileSource {
	return &CSVFileSource{Path: path, Format: format}
}

func (s *CSVFileSource) Describe() string { return s.Path }

func (s *CSVFileSource) Fetch(ctx context.Context) (domain.RowSet, error) {
	if err := ctx.Err(); err != nil {
		return domain.RowSet{}, err
	}

	file, err := os.Open(s.Path)
	if err != nil {
		return domain.RowSet{}, fmt.Errorf("csv source: open %q: %w", s.Path, err)
	}
	defer file.Close()

	header, rows, err := ReadCSV(file)
	if err != nil {
		return domain.RowSet{}, fmt.Errorf("csv source: read %q: %w", s.Path, err)
	}

	return domain.RowSet{Format: s.Format, Label: s.Path, Header: header, Rows: rows}, nil
}

// ReadCSV splits a CSV stream into its header and data records. Records may
// have varying field counts; short rows are handled by the normalizer.
func ReadCSV(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("empty file: missing header")
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	rows := make([][]string, 0, 256)
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("read record: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		rows = append(rows, record)
	}

	return header, rows, nil
}
