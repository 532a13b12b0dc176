package app

import (
	"context"
	"time"

	"watchlist/domain/core"
	"watchlist/domain/watchlist"
	"watchlist/internal"
	"watchlist/internal/errors"
	"watchlist/internal/report"
	"watchlist/ports"
)

// NormalizeService reads a watchlist sheet, expands every row and hands the
// concatenated result to each sink in turn
type NormalizeService struct {
	runID    core.RunID
	source   ports.RecordSource
	expander *watchlist.Expander
	sinks    []ports.RecordSink
	logger   *internal.Logger
}

// NewNormalizeService creates a service for one run
func NewNormalizeService(runID core.RunID, source ports.RecordSource, expander *watchlist.Expander, sinks []ports.RecordSink, logger *internal.Logger) *NormalizeService {
	if expander == nil {
		expander = watchlist.NewExpander(nil)
	}
	if logger == nil {
		logger = internal.Discard()
	}
	return &NormalizeService{
		runID:    runID,
		source:   source,
		expander: expander,
		sinks:    sinks,
		logger:   logger,
	}
}

// Run executes the whole pass. A read failure aborts before any sink runs.
// A sink failure is logged and the remaining sinks still run; the returned
// error then lists every failed sink. The summary is returned either way
// once reading succeeded.
func (s *NormalizeService) Run(ctx context.Context) (*report.Summary, error) {
	start := time.Now()
	s.logger.Info("Starting run %s", s.runID)

	raws, err := s.source.ReadRecords(ctx)
	if err != nil {
		return nil, errors.InputUnreadable(err)
	}

	records := s.expander.ExpandAll(raws)
	s.logger.Debug("Expanded %d rows into %d records", len(raws), len(records))

	summary, err := report.Build(s.runID, len(raws), records)
	if err != nil {
		return nil, errors.Wrap(err, "failed to summarize run")
	}

	for _, sink := range s.sinks {
		sinkStart := time.Now()
		err := sink.Export(ctx, records)
		summary.Record(sink.Name(), sink.Target(), err)
		if err != nil {
			s.logger.Error("Export to %s %s failed: %v", sink.Name(), sink.Target(), err)
			continue
		}
		s.logger.Info("Export to %s %s successfully (%d records in %.2fms)",
			sink.Name(), sink.Target(), len(records), float64(time.Since(sinkStart).Nanoseconds())/1e6)
	}

	summary.Duration = time.Since(start)
	s.logger.Info("%s", summary)

	failed := summary.Failed()
	if len(failed) == 0 {
		return summary, nil
	}
	causes := make([]error, len(failed))
	for i, o := range failed {
		causes[i] = core.NewExportError(o.Sink, o.Err)
	}
	return summary, errors.ExportFailed(causes...)
}
