// Package store declares the persistence contract for known issues and the
// errors every implementation reports. Implementations live under
// internal/platform; storetest holds the suite they all must pass.
package store
