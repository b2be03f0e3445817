// Package migrations applies the SQL files under migrations/ to the database
// submission store, on postgres or sqlite.
package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultDir   = "migrations"
	defaultTable = "schema_migrations"
)

type migrator interface {
	Up() error
	Steps(n int) error
	Close() (sourceErr error, databaseErr error)
}

var driverFactory = func(db *sql.DB, cfg Config) (database.Driver, error) {
	switch cfg.Driver {
	case DriverSQLite:
		return sqlite3.WithInstance(db, &sqlite3.Config{MigrationsTable: cfg.MigrationsTable})
	default:
		return postgres.WithInstance(db, &postgres.Config{MigrationsTable: cfg.MigrationsTable})
	}
}

var migratorFactory = func(sourceURL string, cfg Config, driver database.Driver) (migrator, error) {
	return migrate.NewWithDatabaseInstance(sourceURL, cfg.Driver, driver)
}

type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Config selects the driver and the migration files. Zero values mean
// postgres, ./migrations and the schema_migrations table.
type Config struct {
	Driver          string
	Dir             string
	MigrationsTable string
	Logger          Logger
}

func (c Config) normalized() (Config, error) {
	switch strings.ToLower(strings.TrimSpace(c.Driver)) {
	case "", DriverPostgres:
		c.Driver = DriverPostgres
	case DriverSQLite:
		c.Driver = DriverSQLite
	default:
		return c, fmt.Errorf("migrations: unsupported driver %q", c.Driver)
	}

	if strings.TrimSpace(c.Dir) == "" {
		c.Dir = defaultDir
	}
	if strings.TrimSpace(c.MigrationsTable) == "" {
		c.MigrationsTable = defaultTable
	}
	return c, nil
}

func (c Config) info(msg string, args ...any) {
	if c.Logger != nil {
		c.Logger.Info(msg, args...)
	}
}

func (c Config) warn(msg string, args ...any) {
	if c.Logger != nil {
		c.Logger.Warn(msg, args...)
	}
}

// sourceURL turns dir into a file:// URL; spaces and Windows separators survive.
func sourceURL(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("migrations: resolve dir: %w", err)
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String(), nil
}

// Up applies every pending migration. The migrator closes db when it is done.
func Up(ctx context.Context, db *sql.DB, cfg Config) error {
	return run(ctx, db, cfg, "up", func(m migrator) error { return m.Up() })
}

// Down rolls back the last steps migrations.
func Down(ctx context.Context, db *sql.DB, cfg Config, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("migrations: down needs a positive step count, got %d", steps)
	}
	return run(ctx, db, cfg, "down", func(m migrator) error { return m.Steps(-steps) })
}

func run(ctx context.Context, db *sql.DB, cfg Config, direction string, apply func(migrator) error) error {
	if db == nil {
		return errors.New("migrations: db is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg, err := cfg.normalized()
	if err != nil {
		return err
	}

	source, err := sourceURL(cfg.Dir)
	if err != nil {
		return err
	}

	driver, err := driverFactory(db, cfg)
	if err != nil {
		return fmt.Errorf("migrations: %s driver: %w", cfg.Driver, err)
	}

	m, err := migratorFactory(source, cfg, driver)
	if err != nil {
		return fmt.Errorf("migrations: init: %w", err)
	}

	var closeOnce sync.Once
	closeMigrator := func() {
		closeOnce.Do(func() {
			srcErr, dbErr := m.Close()
			if srcErr != nil {
				cfg.warn("Migrations source close error", "error", srcErr)
			}
			if dbErr != nil {
				cfg.warn("Migrations db close error", "error", dbErr)
			}
		})
	}
	defer closeMigrator()

	cfg.info("Running SQL migrations", "direction", direction, "driver", cfg.Driver, "source", source, "table", cfg.MigrationsTable)

	done := make(chan error, 1)
	go func() { done <- apply(m) }()

	select {
	case <-ctx.Done():
		// Closing is the only way to interrupt a running migrate operation.
		closeMigrator()
		return ctx.Err()
	case err := <-done:
		switch {
		case errors.Is(err, migrate.ErrNoChange):
			cfg.info("No migrations to apply")
			return nil
		case err != nil:
			return fmt.Errorf("migrations: %s: %w", direction, err)
		}
	}

	cfg.info("Migrations applied successfully", "direction", direction)
	return nil
}
