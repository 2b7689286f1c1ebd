// Package migrate applies the embedded SQL migrations of a storage backend
// using goose. Each backend ships its own migration set because the DDL for
// identity columns and timestamp defaults differs between dialects.
package migrate
