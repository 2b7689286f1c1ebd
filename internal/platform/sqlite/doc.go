// Package sqlite implements the store interfaces on an embedded SQLite
// database using the pure-Go modernc.org/sqlite driver. It backs local
// development and the test suites that must run without external services.
package sqlite
