package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// Dates are stored as YYYY-MM-DD text so they compare and sort lexically.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    id                INTEGER PRIMARY KEY AUTOINCREMENT,
    name              TEXT NOT NULL CHECK (length(trim(name)) > 0),
    warranty_duration INTEGER NOT NULL CHECK (warranty_duration > 0),
    duration_unit     TEXT NOT NULL DEFAULT 'months' CHECK (duration_unit IN ('days', 'months')),
    date_bought       TEXT NOT NULL,
    thumbnail         TEXT NOT NULL DEFAULT '',
    expiration_date   TEXT NOT NULL,
    created_at        TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_items_expiration_date ON items(expiration_date);
`

// EnsureSchema creates the items table and its indexes when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
