package app

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"watchlist/adapters/delimited"
	"watchlist/adapters/excel"
	"watchlist/domain/core"
	"watchlist/domain/watchlist"
	"watchlist/internal"
	apperrors "watchlist/internal/errors"
	"watchlist/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock implementations for testing
type MockRecordSource struct {
	mock.Mock
}

func (m *MockRecordSource) ReadRecords(ctx context.Context) ([]watchlist.RawRecord, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]watchlist.RawRecord)
	return rows, args.Error(1)
}

type MockRecordSink struct {
	mock.Mock
	name string
}

func (m *MockRecordSink) Name() string   { return m.name }
func (m *MockRecordSink) Target() string { return m.name + "-target" }

func (m *MockRecordSink) Export(ctx context.Context, records []watchlist.NormalizedRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

var sampleRows = []watchlist.RawRecord{
	{watchlist.FieldName: "Budi alias Budiman", watchlist.FieldBirthDate: "17 Agustus 1998 atau 18-08-1998"},
	{watchlist.FieldName: "Abu", watchlist.FieldAddress: "Jl;; Merdeka"},
}

func TestRunExportsToEverySink(t *testing.T) {
	ctx := context.Background()
	source := new(MockRecordSource)
	source.On("ReadRecords", ctx).Return(sampleRows, nil)

	expected := watchlist.NewExpander(nil).ExpandAll(sampleRows)
	first := &MockRecordSink{name: "first"}
	first.On("Export", ctx, expected).Return(nil)
	second := &MockRecordSink{name: "second"}
	second.On("Export", ctx, expected).Return(nil)

	svc := NewNormalizeService(core.NewRunID(), source, nil, []ports.RecordSink{first, second}, nil)
	summary, err := svc.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.RawRows)
	assert.Equal(t, 5, summary.Records)
	assert.Len(t, summary.Sinks, 2)
	assert.Empty(t, summary.Failed())
	source.AssertExpectations(t)
	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestRunContinuesAfterSinkFailure(t *testing.T) {
	ctx := context.Background()
	source := new(MockRecordSource)
	source.On("ReadRecords", ctx).Return(sampleRows, nil)

	diskFull := errors.New("disk full")
	failing := &MockRecordSink{name: "Excel"}
	failing.On("Export", ctx, mock.Anything).Return(diskFull)
	healthy := &MockRecordSink{name: "CSV"}
	healthy.On("Export", ctx, mock.Anything).Return(nil)

	var logs bytes.Buffer
	logger := internal.NewLoggerTo(&logs, internal.LogLevelInfo)

	svc := NewNormalizeService(core.NewRunID(), source, nil, []ports.RecordSink{failing, healthy}, logger)
	summary, err := svc.Run(ctx)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeExportFailed, apperrors.GetCode(err))
	assert.True(t, errors.Is(err, core.ErrExportFailed))
	require.NotNil(t, summary)
	require.Len(t, summary.Failed(), 1)
	assert.Equal(t, "Excel", summary.Failed()[0].Sink)

	healthy.AssertCalled(t, "Export", ctx, mock.Anything)
	assert.Contains(t, logs.String(), "[ERROR] Export to Excel Excel-target failed: disk full")
	assert.Contains(t, logs.String(), "Export to CSV CSV-target successfully")
}

func TestRunReadFailureSkipsSinks(t *testing.T) {
	ctx := context.Background()
	source := new(MockRecordSource)
	source.On("ReadRecords", ctx).Return(nil, core.ErrNoSheets)
	sink := &MockRecordSink{name: "CSV"}

	svc := NewNormalizeService(core.NewRunID(), source, nil, []ports.RecordSink{sink}, nil)
	summary, err := svc.Run(ctx)

	assert.Nil(t, summary)
	assert.Equal(t, apperrors.CodeInputUnreadable, apperrors.GetCode(err))
	assert.True(t, errors.Is(err, core.ErrNoSheets))
	sink.AssertNotCalled(t, "Export", mock.Anything, mock.Anything)
}

// TestRunEndToEndFiles drives the real adapters through a temp directory
func TestRunEndToEndFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "hasil")

	records := watchlist.NewExpander(nil).ExpandAll(sampleRows)

	src := filepath.Join(dir, "source.csv")
	require.NoError(t, writeSourceCSV(src, sampleRows))

	sinks := []ports.RecordSink{
		excel.NewWriter(base+".xlsx", "Data"),
		delimited.NewWriter(base + ".csv"),
	}
	svc := NewNormalizeService(core.NewRunID(), excel.NewDataReader(src, "", nil), nil, sinks, nil)
	summary, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(records), summary.Records)

	back, err := delimited.ReadFile(base + ".csv")
	require.NoError(t, err)
	require.Len(t, back, len(records))
	for i := range records {
		assert.Equal(t, records[i].Values(), back[i].Values())
	}

	data, err := excel.NewDataReader(base+".xlsx", "", nil).ReadData()
	require.NoError(t, err)
	assert.Equal(t, "Data", data.Sheet)
	assert.Len(t, data.Rows, len(records))
}

func writeSourceCSV(path string, rows []watchlist.RawRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(watchlist.SourceFields); err != nil {
		return err
	}
	for _, row := range rows {
		line := make([]string, len(watchlist.SourceFields))
		for i, field := range watchlist.SourceFields {
			line[i] = row.Get(field)
		}
		if err := w.Write(line); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
