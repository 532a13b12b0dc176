package excel

import (
	"context"
	"fmt"

	"watchlist/domain/watchlist"

	"github.com/xuri/excelize/v2"
)

// Writer exports normalized records as a single-sheet workbook
type Writer struct {
	path      string
	sheetName string
}

// NewWriter writes to path; an empty sheetName falls back to DefaultOutputSheet
func NewWriter(path, sheetName string) *Writer {
	if sheetName == "" {
		sheetName = DefaultOutputSheet
	}
	return &Writer{path: path, sheetName: sheetName}
}

func (w *Writer) Name() string   { return "Excel" }
func (w *Writer) Target() string { return w.path }

// Export writes a header row followed by one row per record
func (w *Writer) Export(ctx context.Context, records []watchlist.NormalizedRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with the default sheet at index 0
	if err := f.SetSheetName(f.GetSheetName(0), w.sheetName); err != nil {
		return fmt.Errorf("failed to name sheet %q: %w", w.sheetName, err)
	}

	header := make([]interface{}, len(watchlist.Columns))
	for i, c := range watchlist.Columns {
		header[i] = c
	}
	if err := w.setRow(f, 1, header); err != nil {
		return err
	}

	for i, rec := range records {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := w.setRow(f, i+2, recordCells(rec)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", w.path, err)
	}
	return nil
}

func (w *Writer) setRow(f *excelize.File, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(w.sheetName, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

// recordCells keeps source_row numeric so spreadsheet users can sort on it
func recordCells(rec watchlist.NormalizedRecord) []interface{} {
	values := rec.Values()
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	cells[len(cells)-1] = rec.SourceRow
	return cells
}
