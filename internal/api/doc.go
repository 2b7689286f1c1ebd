// Package api handles incoming HTTP requests for known issues: it decodes
// and validates input, calls the store, and maps results and errors to
// HTTP responses.
package api
