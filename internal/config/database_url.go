package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverCouchDB  = "couchdb"
)

// DatabaseURL is a parsed DATABASE_URL.
//
// For sqlite3 the DSN is a file path (or ":memory:"). For postgres it is the
// given URL, which lib/pq accepts as-is. For couchdb the DSN is the
// server address without the database path, and Name holds the database.
type DatabaseURL struct {
	Driver string
	DSN    string
	Name   string
}

var errUnsupportedScheme = errors.New("unsupported database scheme")

func ParseDatabaseURL(raw string) (DatabaseURL, error) {
	raw = strings.TrimSpace(raw)
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return DatabaseURL{}, fmt.Errorf("missing scheme in %q", raw)
	}

	switch strings.ToLower(scheme) {
	case "sqlite", "sqlite3":
		return parseSQLite(rest)
	case "postgres", "postgresql", "pgsql":
		u, err := url.Parse(raw)
		if err != nil {
			return DatabaseURL{}, err
		}
		u.Scheme = "postgres"
		return DatabaseURL{
			Driver: DriverPostgres,
			DSN:    u.String(),
			Name:   strings.TrimPrefix(u.Path, "/"),
		}, nil
	case "couchdb", "couchdbs":
		return parseCouchDB(raw, strings.ToLower(scheme) == "couchdbs")
	}

	return DatabaseURL{}, fmt.Errorf("%w: %s", errUnsupportedScheme, scheme)
}

// sqlite:///db.sqlite3 is relative, sqlite:////var/db.sqlite3 is absolute and
// sqlite://:memory: is an in-memory database.
func parseSQLite(rest string) (DatabaseURL, error) {
	path, query, _ := strings.Cut(rest, "?")
	if path == "" || path == ":memory:" {
		return DatabaseURL{Driver: DriverSQLite, DSN: ":memory:", Name: ":memory:"}, nil
	}
	if !strings.HasPrefix(path, "/") {
		return DatabaseURL{}, fmt.Errorf("sqlite url must not carry a host: %q", rest)
	}
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return DatabaseURL{Driver: DriverSQLite, DSN: ":memory:", Name: ":memory:"}, nil
	}

	dsn := path
	if query != "" {
		dsn = "file:" + path + "?" + query
	}
	return DatabaseURL{Driver: DriverSQLite, DSN: dsn, Name: path}, nil
}

func parseCouchDB(raw string, tls bool) (DatabaseURL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return DatabaseURL{}, err
	}
	name := strings.Trim(u.Path, "/")
	if name == "" {
		return DatabaseURL{}, errors.New("couchdb url requires a database name")
	}

	u.Scheme = "http"
	if tls {
		u.Scheme = "https"
	}
	u.Path = ""
	u.RawQuery = ""

	return DatabaseURL{Driver: DriverCouchDB, DSN: u.String(), Name: name}, nil
}
