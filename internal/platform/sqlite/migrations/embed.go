// Package migrations embeds the SQLite schema migrations.
package migrations

import "embed"

// FS holds the goose SQL migrations for SQLite.
//
//go:embed *.sql
var FS embed.FS
