// Package testdb provides utilities for database testing.
//
// NewSQLite returns a migrated SQLite database in a temporary directory and
// needs nothing outside the test process. NewPostgres, available with the
// integration build tag, starts a disposable PostgreSQL container through
// testcontainers-go, or connects to KNOWNISSUES_TEST_DATABASE_URL when it is
// set.
//
// WithTx runs a test body in a transaction that is always rolled back:
//
//	func TestMyFeature(t *testing.T) {
//	    db := testdb.NewSQLite(t)
//
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        s := sqlite.NewSQLiteKnownIssueStore(tx, nil)
//	        // ...
//	    })
//	}
package testdb
