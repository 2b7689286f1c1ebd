// Package migrations embeds the PostgreSQL schema migrations.
package migrations

import "embed"

// FS holds the goose SQL migrations for PostgreSQL.
//
//go:embed *.sql
var FS embed.FS
