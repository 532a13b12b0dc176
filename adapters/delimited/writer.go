// Package delimited exports normalized watchlist records as comma-separated
// text and reads such exports back.
package delimited

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"watchlist/domain/watchlist"
)

// Writer exports records to a CSV file with a header row
type Writer struct {
	path string
}

// NewWriter creates a writer targeting path
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

func (w *Writer) Name() string   { return "CSV" }
func (w *Writer) Target() string { return w.path }

// Export writes watchlist.Columns then one line per record
func (w *Writer) Export(ctx context.Context, records []watchlist.NormalizedRecord) (err error) {
	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", w.path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", w.path, cerr)
		}
	}()

	cw := csv.NewWriter(file)
	if err := cw.Write(watchlist.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, rec := range records {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := cw.Write(rec.Values()); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", w.path, err)
	}
	return nil
}
