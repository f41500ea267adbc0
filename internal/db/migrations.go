package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx"
	"github.com/jackc/pgx/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

func openMigrationDB(ctx context.Context, databaseURL string) (*sql.DB, error) {
	config, err := pgx.ParseConnectionString(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	sqldb := stdlib.OpenDB(config)
	if err := sqldb.PingContext(ctx); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	goose.SetBaseFS(migrationsFS)

	return sqldb, nil
}

// RunMigrations applies every pending embedded migration.
func RunMigrations(ctx context.Context, databaseURL string) error {
	sqldb, err := openMigrationDB(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := goose.UpContext(ctx, sqldb, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

// MigrationStatus prints the state of every embedded migration through goose's logger.
func MigrationStatus(ctx context.Context, databaseURL string) error {
	sqldb, err := openMigrationDB(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := goose.StatusContext(ctx, sqldb, migrationsDir); err != nil {
		return fmt.Errorf("goose status: %w", err)
	}

	return nil
}
