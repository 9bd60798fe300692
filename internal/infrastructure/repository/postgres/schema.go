package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var requiredTables = []string{
	daySnapshotsTable,
	syncMetaTable,
	teamIndexTable,
	teamNamesTable,
	teamNameFailuresTable,
	translationStatesTable,
	translationEntriesTable,
}

// CheckSchema fails fast when migrations have not been applied.
func CheckSchema(ctx context.Context, db *sqlx.DB) error {
	for _, table := range requiredTables {
		if _, err := db.ExecContext(ctx, "SELECT 1 FROM "+table+" LIMIT 0"); err != nil {
			if isUndefinedTable(err) {
				return fmt.Errorf("table %s is missing, run cmd/migration up: %w", table, err)
			}
			return fmt.Errorf("check table %s: %w", table, err)
		}
	}
	return nil
}
