package ports

import (
	"context"

	"watchlist/domain/watchlist"
)

// RecordSource yields the data rows of an input sheet in sheet order
type RecordSource interface {
	ReadRecords(ctx context.Context) ([]watchlist.RawRecord, error)
}

// RecordSink persists the full normalized sequence. Sinks are independent:
// one failing must not affect another.
type RecordSink interface {
	// Name identifies the sink in logs and summaries (e.g. "Excel", "CSV")
	Name() string
	// Target describes where records go (file path, table name)
	Target() string
	Export(ctx context.Context, records []watchlist.NormalizedRecord) error
}
