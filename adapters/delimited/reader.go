package delimited

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"watchlist/domain/core"
	"watchlist/domain/watchlist"
)

// ReadFile decodes a file produced by Writer
func ReadFile(path string) ([]watchlist.NormalizedRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file)
}

// Read decodes CSV produced by Writer. Columns are located by header name;
// an empty birth_date decodes to nil.
func Read(r io.Reader) ([]watchlist.NormalizedRecord, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, core.ErrNoHeader
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[h] = i
	}
	for _, col := range watchlist.Columns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	records := make([]watchlist.NormalizedRecord, 0, len(rows)-1)
	for n, row := range rows[1:] {
		get := func(col string) string { return row[index[col]] }

		rec := watchlist.NormalizedRecord{
			Name:               get(watchlist.ColumnName),
			SuspectedOf:        get(watchlist.ColumnSuspectedOf),
			Nationality:        get(watchlist.ColumnNationality),
			Address:            get(watchlist.ColumnAddress),
			Birthplace:         get(watchlist.ColumnBirthplace),
			ClassificationCode: get(watchlist.ColumnClassificationCode),
		}

		if s := get(watchlist.ColumnBirthDate); s != "" {
			ts, err := core.ParseISO(s)
			if err != nil {
				return nil, fmt.Errorf("line %d: birth_date: %w", n+2, err)
			}
			d := core.CalendarDate(ts)
			rec.BirthDate = &d
		}

		rec.SourceRow, err = strconv.Atoi(get(watchlist.ColumnSourceRow))
		if err != nil {
			return nil, fmt.Errorf("line %d: source_row: %w", n+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
