package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"watchlist/domain/core"
	"watchlist/domain/watchlist"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// recordRow is the table shape of one normalized record
type recordRow struct {
	RunID              string     `db:"run_id"`
	Name               string     `db:"name"`
	SuspectedOf        string     `db:"suspected_of"`
	Nationality        string     `db:"nationality"`
	Address            string     `db:"address"`
	Birthplace         string     `db:"birthplace"`
	BirthDate          *time.Time `db:"birth_date"`
	ClassificationCode string     `db:"classification_code"`
	SourceRow          int        `db:"source_row"`
}

var recordColumns = []string{
	"run_id", "name", "suspected_of", "nationality", "address",
	"birthplace", "birth_date", "classification_code", "source_row",
}

func toRow(runID core.RunID, rec watchlist.NormalizedRecord) recordRow {
	row := recordRow{
		RunID:              runID.String(),
		Name:               rec.Name,
		SuspectedOf:        rec.SuspectedOf,
		Nationality:        rec.Nationality,
		Address:            rec.Address,
		Birthplace:         rec.Birthplace,
		ClassificationCode: rec.ClassificationCode,
		SourceRow:          rec.SourceRow,
	}
	if rec.BirthDate != nil {
		t := rec.BirthDate.Time()
		row.BirthDate = &t
	}
	return row
}

func fromRow(row recordRow) watchlist.NormalizedRecord {
	rec := watchlist.NormalizedRecord{
		Name:               row.Name,
		SuspectedOf:        row.SuspectedOf,
		Nationality:        row.Nationality,
		Address:            row.Address,
		Birthplace:         row.Birthplace,
		ClassificationCode: row.ClassificationCode,
		SourceRow:          row.SourceRow,
	}
	if row.BirthDate != nil {
		u := row.BirthDate.UTC()
		d := core.NewCalendarDate(u.Year(), u.Month(), u.Day())
		rec.BirthDate = &d
	}
	return rec
}

// RecordRepository stores a run's normalized records in one table
type RecordRepository struct {
	db    *sqlx.DB
	table string
	runID core.RunID
}

// NewRecordRepository creates a repository writing rows tagged with runID
func NewRecordRepository(db *sqlx.DB, table string, runID core.RunID) *RecordRepository {
	return &RecordRepository{db: db, table: table, runID: runID}
}

func (r *RecordRepository) Name() string   { return "Database" }
func (r *RecordRepository) Target() string { return r.table }

func (r *RecordRepository) insertQuery() string {
	named := make([]string, len(recordColumns))
	for i, c := range recordColumns {
		named[i] = ":" + c
	}
	return fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		pq.QuoteIdentifier(r.table), strings.Join(recordColumns, ", "), strings.Join(named, ", "))
}

// Export inserts all records in a single transaction; nothing is kept on failure
func (r *RecordRepository) Export(ctx context.Context, records []watchlist.NormalizedRecord) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareNamedContext(ctx, r.insertQuery())
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		if _, err = stmt.ExecContext(ctx, toRow(r.runID, rec)); err != nil {
			return fmt.Errorf("failed to insert record %d (source row %d): %w", i, rec.SourceRow, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// listByRun returns a run's records in insertion order
func (r *RecordRepository) listByRun(ctx context.Context, runID core.RunID) ([]watchlist.NormalizedRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE run_id = $1 ORDER BY id`,
		strings.Join(recordColumns, ", "), pq.QuoteIdentifier(r.table))

	var rows []recordRow
	if err := r.db.SelectContext(ctx, &rows, query, runID.String()); err != nil {
		return nil, fmt.Errorf("failed to list records for run %s: %w", runID, err)
	}

	out := make([]watchlist.NormalizedRecord, len(rows))
	for i, row := range rows {
		out[i] = fromRow(row)
	}
	return out, nil
}

// Open connects to url with the postgres driver and verifies the connection
func Open(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
