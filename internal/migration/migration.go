package migration

import (
	"context"
	"fmt"

	"watchlist/internal/errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// DefaultTable receives normalized records when no table is configured
const DefaultTable = "watchlist_records"

// MigrationRunner handles the schema of the watchlist sink table
type MigrationRunner struct {
	version string
	table   string
}

// NewRunner creates a new migration runner for table
func NewRunner(table string) *MigrationRunner {
	if table == "" {
		table = DefaultTable
	}
	return &MigrationRunner{
		version: "1.0.0",
		table:   table,
	}
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range r.Statements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.DatabaseError(fmt.Sprintf("migration %s of %s failed", r.version, r.table), err)
		}
	}
	return nil
}

// Statements returns the DDL Run executes, in order
func (r *MigrationRunner) Statements() []string {
	table := pq.QuoteIdentifier(r.table)
	runIndex := pq.QuoteIdentifier(r.table + "_run_id_idx")
	nameIndex := pq.QuoteIdentifier(r.table + "_name_idx")

	return []string{
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			run_id UUID NOT NULL,
			name TEXT NOT NULL,
			suspected_of TEXT NOT NULL DEFAULT '',
			nationality TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			birthplace TEXT NOT NULL DEFAULT '',
			birth_date TIMESTAMP WITH TIME ZONE,
			classification_code TEXT NOT NULL DEFAULT '',
			source_row INTEGER NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)`, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (run_id, source_row)`, runIndex, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (lower(name))`, nameIndex, table),
	}
}
