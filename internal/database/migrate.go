package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"webapp-template/internal/config"
	"webapp-template/internal/database/migrations"
)

const migrationsTable = "schema_migrations"

// Migrate applies every pending migration for the database's driver.
func Migrate(ctx context.Context, db *sqlx.DB, log zerolog.Logger) (err error) {
	log = log.With().Str("component", "migrate").Str("driver", db.DriverName()).Logger()

	source, err := iofs.New(migrations.FS, db.DriverName())
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	defer func() {
		if closeErr := source.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close migration source: %w", closeErr)
		}
	}()

	driver, release, err := migrationDriver(ctx, db)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := release(); err == nil && closeErr != nil {
			err = fmt.Errorf("close migration connection: %w", closeErr)
		}
	}()

	migrator, err := migrate.NewWithInstance("iofs", source, db.DriverName(), driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	version, dirty, err := migrator.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		log.Info().Msg("no migrations applied yet")
	case err != nil:
		return fmt.Errorf("read migration version: %w", err)
	default:
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("current migration state")
	}

	if dirty {
		log.Warn().Uint("version", version).Msg("database is dirty, forcing version")
		if err := migrator.Force(int(version)); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("no new migrations to apply")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	if v, _, err := migrator.Version(); err == nil {
		log.Info().Uint("version", v).Msg("migrations applied")
	}
	return nil
}

// migrationDriver returns the golang-migrate driver and a release func. The
// sqlite3 driver closes the whole *sql.DB on Close, so it is never closed
// here; postgres runs on a dedicated connection that is.
func migrationDriver(ctx context.Context, db *sqlx.DB) (database.Driver, func() error, error) {
	switch db.DriverName() {
	case config.DriverSQLite:
		driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{MigrationsTable: migrationsTable})
		if err != nil {
			return nil, nil, fmt.Errorf("initialize sqlite3 driver: %w", err)
		}
		return driver, func() error { return nil }, nil
	case config.DriverPostgres:
		conn, err := db.Conn(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("acquire dedicated connection: %w", err)
		}
		driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{MigrationsTable: migrationsTable})
		if err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("initialize postgres driver: %w", err)
		}
		return driver, driver.Close, nil
	}
	return nil, nil, fmt.Errorf("no migrations for driver %q", db.DriverName())
}
