package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXExporter renders datasets into a single-sheet workbook with a bold,
// filterable header row and content-sized columns.
type XLSXExporter struct{}

// NewXLSXExporter builds an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Render produces workbook bytes for the dataset.
func (e *XLSXExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one header")
	}
	sheet := data.Title
	if sheet == "" {
		sheet = "Report"
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	for col, header := range data.Headers {
		cell := fmt.Sprintf("%s1", colName(col+1))
		if err := f.SetCellStr(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	end := colName(len(data.Headers)) + "1"
	_ = f.SetCellStyle(sheet, "A1", end, bold)
	_ = f.AutoFilter(sheet, "A1:"+end, nil)

	for r, row := range data.Rows {
		for c := 0; c < len(data.Headers) && c < len(row); c++ {
			cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
			if err := f.SetCellStr(sheet, cell, row[c]); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	// Width heuristic over the header and the first rows.
	for c := 0; c < len(data.Headers); c++ {
		width := len(data.Headers[c])
		for r := 0; r < len(data.Rows) && r < 50; r++ {
			if c < len(data.Rows[r]) && len(data.Rows[r][c]) > width {
				width = len(data.Rows[r][c])
			}
		}
		w := float64(width) * 1.1
		if w < 12 {
			w = 12
		}
		if w > 48 {
			w = 48
		}
		col := colName(c + 1)
		_ = f.SetColWidth(sheet, col, col, w)
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}
