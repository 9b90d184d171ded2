package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"schedule-comparison-service/internal/domain"

	"github.com/xuri/excelize/v2"
)

// XLSXFileSource reads a schedule export from an Excel workbook. Sheet
// defaults to the first sheet of the workbook.
type XLSXFileSource struct {
	Path   string
	Sheet  string
	Format domain.SourceFormat
}

func NewXLSXFileSource(path string, format domain.SourceFormat) *XLSXFileSource {
	return &XLSXFileSource{Path: path, Format: format}
}

func (s *XLSXFileSource) Describe() string {
	if s.Sheet != "" {
		return s.Path + "#" + s.Sheet
	}
	return s.Path
}

func (s *XLSXFileSource) Fetch(ctx context.Context) (domain.RowSet, error) {
	if err := ctx.Err(); err != nil {
		return domain.RowSet{}, err
	}

	file, err := excelize.OpenFile(s.Path)
	if err != nil {
		return domain.RowSet{}, fmt.Errorf("xlsx source: open %q: %w", s.Path, err)
	}
	defer file.Close()

	header, rows, err := readWorkbook(file, s.Sheet)
	if err != nil {
		return domain.RowSet{}, fmt.Errorf("xlsx source: %q: %w", s.Path, err)
	}

	return domain.RowSet{Format: s.Format, Label: s.Describe(), Header: header, Rows: rows}, nil
}

// ReadXLSX reads the first sheet of a workbook stream.
func ReadXLSX(r io.Reader) ([]string, [][]string, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer file.Close()

	return readWorkbook(file, "")
}

func readWorkbook(file *excelize.File, sheet string) ([]string, [][]string, error) {
	if sheet == "" {
		sheets := file.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	all, err := file.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("sheet %q is empty: missing header", sheet)
	}

	rows := make([][]string, 0, len(all)-1)
	for _, r := range all[1:] {
		if len(r) == 0 {
			continue
		}
		rows = append(rows, r)
	}

	return all[0], rows, nil
}
