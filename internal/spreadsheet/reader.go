// Package spreadsheet reads workbook rows keyed by their header row.
package spreadsheet

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/zombor/invoice-extractor/internal/invoice"
)

// Reader reads the first sheet of a workbook
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a Reader. A nil logger uses slog.Default().
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger}
}

// ReadRows opens the workbook at path and returns the rows of its first
// sheet, keyed by the header row. Blank cells and columns without a header
// are omitted from the row.
func (r *Reader) ReadRows(path string) ([]invoice.Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &invoice.UpstreamError{Source: "spreadsheet", Err: fmt.Errorf("opening workbook: %w", err)}
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, &invoice.UpstreamError{Source: "spreadsheet", Err: fmt.Errorf("workbook has no sheets")}
	}

	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, &invoice.UpstreamError{Source: "spreadsheet", Err: fmt.Errorf("reading sheet %q: %w", sheet, err)}
	}
	if len(cells) == 0 {
		r.logger.Debug("Spreadsheet headers", "sheet", sheet, "headers", []string{})
		return []invoice.Row{}, nil
	}

	headers := make([]string, len(cells[0]))
	for i, h := range cells[0] {
		headers[i] = strings.TrimSpace(h)
	}
	r.logger.Debug("Spreadsheet headers", "sheet", sheet, "headers", headers)

	rows := make([]invoice.Row, 0, len(cells)-1)
	for _, line := range cells[1:] {
		if isBlank(line) {
			continue
		}
		row := make(invoice.Row, len(headers))
		for i, value := range line {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			if strings.TrimSpace(value) == "" {
				continue
			}
			row[headers[i]] = value
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isBlank(line []string) bool {
	for _, v := range line {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
