// Package report summarizes a normalization run for the log.
package report

import (
	"fmt"
	"strings"
	"time"

	"watchlist/domain/core"
	"watchlist/domain/watchlist"

	"github.com/montanaflynn/stats"
)

// SinkOutcome records how one export went
type SinkOutcome struct {
	Sink   string
	Target string
	Err    error
}

// OK reports whether the export succeeded
func (o SinkOutcome) OK() bool { return o.Err == nil }

// Summary describes one run: row counts, expansion shape, exports
type Summary struct {
	RunID          core.RunID
	RawRows        int
	Records        int
	ExpandedRows   int     // raw rows that produced more than one record
	UnparsedDates  int     // records whose birth date is null
	MeanExpansion  float64 // records per raw row
	MedianExpanded float64
	MaxExpansion   float64
	Fingerprint    core.Hash // hash of the exported rows, stable across identical runs
	Sinks          []SinkOutcome
	Duration       time.Duration
}

// Build computes the summary for records expanded from rawRows raw rows
func Build(runID core.RunID, rawRows int, records []watchlist.NormalizedRecord) (*Summary, error) {
	s := &Summary{RunID: runID, RawRows: rawRows, Records: len(records)}

	perRow := make(map[int]int, rawRows)
	lines := make([]string, 0, len(records))
	for _, rec := range records {
		perRow[rec.SourceRow]++
		if rec.BirthDate == nil {
			s.UnparsedDates++
		}
		lines = append(lines, strings.Join(rec.Values(), "\x1f"))
	}
	s.Fingerprint = core.ComputeFingerprint(lines)

	if rawRows == 0 {
		return s, nil
	}

	counts := make(stats.Float64Data, 0, len(perRow))
	for _, n := range perRow {
		counts = append(counts, float64(n))
		if n > 1 {
			s.ExpandedRows++
		}
	}
	// Rows that expanded to nothing still count towards the mean
	for i := len(perRow); i < rawRows; i++ {
		counts = append(counts, 0)
	}

	var err error
	if s.MeanExpansion, err = stats.Mean(counts); err != nil {
		return nil, fmt.Errorf("mean expansion: %w", err)
	}
	if s.MedianExpanded, err = stats.Median(counts); err != nil {
		return nil, fmt.Errorf("median expansion: %w", err)
	}
	if s.MaxExpansion, err = stats.Max(counts); err != nil {
		return nil, fmt.Errorf("max expansion: %w", err)
	}
	return s, nil
}

// Record appends a sink outcome
func (s *Summary) Record(sink, target string, err error) {
	s.Sinks = append(s.Sinks, SinkOutcome{Sink: sink, Target: target, Err: err})
}

// Failed returns the outcomes that errored
func (s *Summary) Failed() []SinkOutcome {
	var out []SinkOutcome
	for _, o := range s.Sinks {
		if !o.OK() {
			out = append(out, o)
		}
	}
	return out
}

// String renders a single log line
func (s *Summary) String() string {
	var sinks []string
	for _, o := range s.Sinks {
		status := "ok"
		if !o.OK() {
			status = "failed"
		}
		sinks = append(sinks, fmt.Sprintf("%s=%s", o.Sink, status))
	}
	return fmt.Sprintf("run %s: %d rows -> %d records (%d expanded, mean %.2f, median %.1f, max %.0f), %d unparsed birth dates, fingerprint %s, exports [%s] in %s",
		s.RunID, s.RawRows, s.Records, s.ExpandedRows, s.MeanExpansion, s.MedianExpanded, s.MaxExpansion,
		s.UnparsedDates, s.Fingerprint.Short(), strings.Join(sinks, " "), s.Duration.Round(time.Millisecond))
}
