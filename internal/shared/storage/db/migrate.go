package db

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

// Migrations ship inside the binary so the migrate command needs no
// files on disk next to it.
//
//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations applies any pending embedded migrations via goose. A
// nil database (memory-repo mode) is a no-op.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	if database == nil {
		return nil
	}
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, database, "migrations")
}
