// Package domain holds the KnownIssue entity and the validation errors
// shared by the store and HTTP layers. It has no infrastructure imports.
package domain
