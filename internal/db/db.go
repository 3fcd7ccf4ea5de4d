package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type DB struct {
	SQL     *sql.DB
	Dialect Dialect
}

// Options describes how to reach the store and how to size its pool.
type Options struct {
	Driver      string
	URL         string
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
}

func Open(ctx context.Context, opts Options) (*DB, error) {
	dialect, err := ParseDialect(opts.Driver)
	if err != nil {
		return nil, err
	}

	dsn := opts.URL
	if dialect == SQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if dialect == SQLite {
		// A single connection that is never recycled keeps :memory:
		// databases alive and serialises writers.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	} else {
		db.SetMaxOpenConns(opts.MaxOpen)
		db.SetMaxIdleConns(opts.MaxIdle)
		db.SetConnMaxLifetime(opts.MaxLifetime)
		db.SetConnMaxIdleTime(opts.MaxIdleTime)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return &DB{SQL: db, Dialect: dialect}, nil
}

func (d *DB) Close() error {
	return d.SQL.Close()
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_time_format=sqlite"
}
