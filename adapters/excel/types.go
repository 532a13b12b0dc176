package excel

import "watchlist/domain/watchlist"

// SheetData represents one sheet read as header-keyed rows
type SheetData struct {
	Sheet   string                // Sheet the rows came from ("" for CSV input)
	Headers []string              // Column headers, trimmed
	Rows    []watchlist.RawRecord // Non-blank data rows in sheet order
}

// MissingFields lists the recognised watchlist headers absent from the sheet
func (d *SheetData) MissingFields() []string {
	present := make(map[string]bool, len(d.Headers))
	for _, h := range d.Headers {
		present[h] = true
	}
	var missing []string
	for _, f := range watchlist.SourceFields {
		if !present[f] {
			missing = append(missing, f)
		}
	}
	return missing
}
