package db

import (
	"context"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// Migrate applies the embedded schema migrations for the store's dialect.
func (d *DB) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(d.Dialect.gooseDialect()); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, d.SQL, "migrations/"+string(d.Dialect)); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}
