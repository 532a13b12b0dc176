package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"watchlist/domain/core"
	"watchlist/domain/watchlist"
	"watchlist/internal"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading watchlist sheets from Excel and CSV files
type DataReader struct {
	filePath  string
	fileType  string // "xlsx" or "csv"
	sheetName string
	logger    *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files.
// An empty sheetName selects the first sheet of the workbook.
func NewDataReader(filePath, sheetName string, logger *internal.Logger) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	if logger == nil {
		logger = internal.Discard()
	}
	return &DataReader{filePath: filePath, fileType: fileType, sheetName: sheetName, logger: logger}
}

// ReadRecords implements ports.RecordSource
func (r *DataReader) ReadRecords(ctx context.Context) ([]watchlist.RawRecord, error) {
	data, err := r.ReadData()
	if err != nil {
		return nil, err
	}
	return data.Rows, nil
}

// ReadData reads the sheet into header-keyed rows
func (r *DataReader) ReadData() (*SheetData, error) {
	r.logger.Debug("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, core.NewInputNotFoundError(r.filePath)
	}

	var (
		data *SheetData
		err  error
	)
	switch r.fileType {
	case "csv":
		data, err = r.readCSVData()
	default:
		data, err = r.readExcelData()
	}
	if err != nil {
		return nil, err
	}

	if missing := data.MissingFields(); len(missing) > 0 {
		r.logger.Warn("[DataReader] %s is missing columns %s; they will be read as empty",
			r.filePath, strings.Join(missing, ", "))
	}
	return data, nil
}

// readExcelData reads the configured (or first) sheet
func (r *DataReader) readExcelData() (*SheetData, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUnreadableInput, err)
	}
	defer f.Close()
	r.logger.Debug("[DataReader] Excel file opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	sheet := r.sheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, core.ErrNoSheets
		}
		sheet = sheets[0]
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", core.ErrUnreadableInput, sheet, err)
	}
	r.logger.Debug("[DataReader] %s read in %.2fms (%d rows)", sheet, float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	data, err := r.processRows(rows)
	if err != nil {
		return nil, err
	}
	data.Sheet = sheet
	return data, nil
}

// readCSVData reads CSV data into structured format
func (r *DataReader) readCSVData() (*SheetData, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUnreadableInput, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUnreadableInput, err)
	}

	return r.processRows(rows)
}

// processRows converts raw string rows into SheetData. The first row is the
// header and its names are trimmed; data cells are not. Rows holding only
// whitespace are skipped so they do not count towards row indexes.
func (r *DataReader) processRows(rows [][]string) (*SheetData, error) {
	if len(rows) == 0 {
		return nil, core.ErrNoHeader
	}

	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([]watchlist.RawRecord, 0, len(rows)-1)
	skipped := 0
	for i, row := range rows[1:] {
		rowData := make(watchlist.RawRecord)
		blank := true

		for j, cell := range row {
			if j >= len(headers) || headers[j] == "" {
				continue
			}
			// Cells are kept verbatim; surrounding spaces decide alias
			// splitting and strict date matching downstream.
			if strings.TrimSpace(cell) != "" {
				blank = false
			}
			rowData[headers[j]] = cell
		}

		if blank {
			r.logger.Trace("[DataReader] skipping blank sheet row %d", i+2)
			skipped++
			continue
		}
		dataRows = append(dataRows, rowData)
	}

	r.logger.Info("[DataReader] %s file processed (%d columns, %d rows, %d blank rows skipped)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows), skipped)

	return &SheetData{
		Headers: headers,
		Rows:    dataRows,
	}, nil
}
