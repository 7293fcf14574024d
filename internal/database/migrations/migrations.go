package migrations

import "embed"

// FS holds one directory of migrations per SQL driver name.
//
//go:embed sqlite3/*.sql postgres/*.sql
var FS embed.FS
