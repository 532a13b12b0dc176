package watchlist

import (
	"strconv"

	"watchlist/domain/core"
)

// Source column headers, case- and spelling-sensitive
const (
	FieldName               = "Nama"
	FieldSuspectedOf        = "Terduga"
	FieldNationality        = "WN"
	FieldAddress            = "Alamat"
	FieldBirthplace         = "Tpt Lahir"
	FieldBirthDate          = "Tgl Lahir"
	FieldClassificationCode = "Kode Densus"
)

// SourceFields lists the seven recognised input headers in sheet order
var SourceFields = []string{
	FieldName,
	FieldSuspectedOf,
	FieldNationality,
	FieldAddress,
	FieldBirthplace,
	FieldBirthDate,
	FieldClassificationCode,
}

// Output column names, in export order
const (
	ColumnName               = "name"
	ColumnSuspectedOf        = "suspected_of"
	ColumnNationality        = "nationality"
	ColumnAddress            = "address"
	ColumnBirthplace         = "birthplace"
	ColumnBirthDate          = "birth_date"
	ColumnClassificationCode = "classification_code"
	ColumnSourceRow          = "source_row"
)

// Columns is the header row shared by every exported artifact
var Columns = []string{
	ColumnName,
	ColumnSuspectedOf,
	ColumnNationality,
	ColumnAddress,
	ColumnBirthplace,
	ColumnBirthDate,
	ColumnClassificationCode,
	ColumnSourceRow,
}

// RawRecord is one data row of the source sheet keyed by header.
// A missing key reads as empty text.
type RawRecord map[string]string

// Get returns the value for field, or "" when absent
func (r RawRecord) Get(field string) string {
	if r == nil {
		return ""
	}
	return r[field]
}

// NormalizedRecord is one output row. BirthDate is nil when the source
// date was absent or did not match any accepted layout.
type NormalizedRecord struct {
	Name               string             `json:"name" db:"name"`
	SuspectedOf        string             `json:"suspected_of" db:"suspected_of"`
	Nationality        string             `json:"nationality" db:"nationality"`
	Address            string             `json:"address" db:"address"`
	Birthplace         string             `json:"birthplace" db:"birthplace"`
	BirthDate          *core.CalendarDate `json:"birth_date" db:"-"`
	ClassificationCode string             `json:"classification_code" db:"classification_code"`
	SourceRow          int                `json:"source_row" db:"source_row"`
}

// BirthDateISO renders BirthDate as an ISO-8601 timestamp, "" for null
func (r NormalizedRecord) BirthDateISO() string {
	if r.BirthDate == nil {
		return ""
	}
	return r.BirthDate.ISO()
}

// Values returns the record as text cells in Columns order
func (r NormalizedRecord) Values() []string {
	return []string{
		r.Name,
		r.SuspectedOf,
		r.Nationality,
		r.Address,
		r.Birthplace,
		r.BirthDateISO(),
		r.ClassificationCode,
		strconv.Itoa(r.SourceRow),
	}
}

// SourceRowFor maps a 0-based raw row index to the exported source_row.
// Data starts on sheet row 2 beneath the header, so index 0 maps to 2.
func SourceRowFor(rowIndex int) int {
	return rowIndex + 1 + 1
}
