// Package dbtest prepares a PostgreSQL database for integration tests.
//
// When TEST_DB_URL is set the database behind it is used, otherwise a
// throwaway container is started with testcontainers.
package dbtest

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/daniilsolovey/blogicum/internal/db"
	"github.com/go-pg/pg/v10"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Tables lists every table created by the migrations.
var Tables = []string{"users", "profiles", "categories", "locations", "posts", "comments"}

// Setup connects to the test database, recreates the public schema and applies migrations.
// The returned cleanup closes the connection and stops the container if one was started.
func Setup(ctx context.Context) (*pg.DB, func(), error) {
	dsn := os.Getenv("TEST_DB_URL")
	terminate := func() {}

	if dsn == "" {
		container, err := postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("blogicum_test"),
			postgres.WithUsername("test_user"),
			postgres.WithPassword("test_password"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second)),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to start postgres container: %w", err)
		}

		terminate = func() {
			if err := container.Terminate(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "failed to terminate container: %v\n", err)
			}
		}

		dsn, err = container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			terminate()
			return nil, nil, fmt.Errorf("failed to get connection string: %w", err)
		}
	}

	opt, err := pg.ParseURL(dsn)
	if err != nil {
		terminate()
		return nil, nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	database := pg.Connect(opt)
	cleanup := func() {
		if err := database.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close database connection: %v\n", err)
		}
		terminate()
	}

	if err := database.Ping(ctx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	if err := ResetPublicSchema(ctx, database); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to reset schema: %w", err)
	}

	if err := db.RunMigrations(ctx, dsn); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := EnsureTablesExist(ctx, database, Tables); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("schema verification failed: %w", err)
	}

	return database, cleanup, nil
}

// ResetPublicSchema drops and recreates the public schema
func ResetPublicSchema(ctx context.Context, database *pg.DB) error {
	_, err := database.ExecContext(ctx, `DROP SCHEMA IF EXISTS public CASCADE; CREATE SCHEMA public;`)
	if err != nil {
		return fmt.Errorf("reset public schema: %w", err)
	}
	return nil
}

// EnsureTablesExist verifies that the specified tables exist in the database
func EnsureTablesExist(ctx context.Context, database *pg.DB, tables []string) error {
	for _, tbl := range tables {
		var exists bool
		_, err := database.QueryOneContext(ctx, pg.Scan(&exists), `
			SELECT EXISTS (
				SELECT 1
				FROM information_schema.tables
				WHERE table_schema = 'public' AND table_name = ?
			)`, tbl)
		if err != nil {
			return fmt.Errorf("check table %s exists: %w", tbl, err)
		}
		if !exists {
			return fmt.Errorf("table %q does not exist after migrations", tbl)
		}
	}
	return nil
}

// Begin opens a transaction that is rolled back when the test finishes.
func Begin(t *testing.T, database *pg.DB) *pg.Tx {
	t.Helper()

	tx, err := database.Begin()
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Errorf("failed to rollback transaction: %v", err)
		}
	})

	return tx
}
