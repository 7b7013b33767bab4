// Package testsupport holds helpers for integration tests that exercise the
// bun-backed repositories against an in-memory SQLite database.
package testsupport

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"

	"github.com/pagehaven/go-builder/blocks"
	"github.com/pagehaven/go-builder/pages"
	"github.com/pagehaven/go-builder/projects"
	"github.com/pagehaven/go-builder/themes"
)

func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", "file::memory:?cache=shared")
}

// CreateBuilderTables creates the tables for every builder model. Intended
// for tests and throwaway environments; production schemas are managed by
// migrations outside this module.
func CreateBuilderTables(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*projects.Project)(nil),
		(*pages.Page)(nil),
		(*blocks.Block)(nil),
		(*themes.Theme)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
