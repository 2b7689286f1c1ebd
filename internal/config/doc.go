// Package config loads the server settings from defaults, an optional
// config.yaml and KNOWNISSUES_* environment variables, then validates them.
//
// Nested keys map to environment variables by upper-casing and replacing
// dots with underscores: database.url becomes KNOWNISSUES_DATABASE_URL.
package config
