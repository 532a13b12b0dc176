package postgres

import (
	"context"

	"watchlist/domain/core"
	"watchlist/domain/watchlist"
	"watchlist/internal/migration"
)

// Sink connects, migrates and exports in one step, so an unreachable
// database fails only this export and not the run
type Sink struct {
	url   string
	table string
	runID core.RunID
}

// NewSink creates a database sink for one run
func NewSink(url, table string, runID core.RunID) *Sink {
	if table == "" {
		table = migration.DefaultTable
	}
	return &Sink{url: url, table: table, runID: runID}
}

func (s *Sink) Name() string   { return "Database" }
func (s *Sink) Target() string { return s.table }

// Export implements ports.RecordSink
func (s *Sink) Export(ctx context.Context, records []watchlist.NormalizedRecord) error {
	db, err := Open(ctx, s.url)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migration.NewRunner(s.table).Run(ctx, db); err != nil {
		return err
	}
	return NewRecordRepository(db, s.table, s.runID).Export(ctx, records)
}
