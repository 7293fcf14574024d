package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"webapp-template/internal/config"
)

// Open connects to a SQL database described by dbURL and verifies the
// connection. CouchDB URLs are not handled here.
func Open(ctx context.Context, cfg config.DatabaseConfig, dbURL config.DatabaseURL) (*sqlx.DB, error) {
	switch dbURL.Driver {
	case config.DriverSQLite, config.DriverPostgres:
	default:
		return nil, fmt.Errorf("driver %q is not a sql driver", dbURL.Driver)
	}

	db, err := sqlx.Open(dbURL.Driver, dbURL.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dbURL.Driver, err)
	}

	if dbURL.Driver == config.DriverSQLite {
		// one writer; also keeps :memory: databases on a single connection
		db.SetMaxOpenConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if cfg.ConnLifetime > 0 {
			db.SetConnMaxLifetime(cfg.ConnLifetime)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s database: %w", dbURL.Driver, err)
	}

	return db, nil
}
