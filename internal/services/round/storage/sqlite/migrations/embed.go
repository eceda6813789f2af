package migrations

import "embed"

// FS contains embedded SQLite migrations for round storage.
//
//go:embed *.sql
var FS embed.FS
