package sqlstore

import (
	"context"
	"fmt"
)

const createEventsTableSQL = `
CREATE TABLE IF NOT EXISTS events (
    id %s,
    event_name TEXT NOT NULL,
    start_date TEXT NOT NULL DEFAULT '',
    end_date   TEXT NOT NULL DEFAULT ''
);
`

// Migrate creates the events table when it does not exist.
func Migrate(ctx context.Context, db DB, dialect Dialect) error {
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if dialect == DialectPostgres {
		idColumn = "BIGSERIAL PRIMARY KEY"
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf(createEventsTableSQL, idColumn)); err != nil {
		return fmt.Errorf("create events table: %w", err)
	}
	return nil
}
