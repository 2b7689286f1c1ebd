// Package postgres implements the store interfaces on PostgreSQL through the
// pgx database/sql driver. Identity and creation time are assigned by the
// database (identity column and column default); schema migrations are
// embedded in the migrations subpackage.
package postgres
