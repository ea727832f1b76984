package sqlite

import (
	"database/sql"
	"fmt"

	"warranty-tracker/internal/warranty/repository"
	"warranty-tracker/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New creates a new SQLite-backed Repository for the warranty domain.
// The schema must already exist, see EnsureSchema.
func New(db *sql.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("warranty/repository/sqlite: db is required")
	}
	return &implRepository{db: db, l: l}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("warranty/repository/sqlite.%s", method)
}
