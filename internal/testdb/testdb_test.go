package testdb_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/phrazzld/knownissues-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLite(t *testing.T) {
	db := testdb.NewSQLite(t)

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM known_issues").Scan(&n))
	assert.Zero(t, n)
}

func TestWithTxRollsBack(t *testing.T) {
	db := testdb.NewSQLite(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		_, err := tx.ExecContext(context.Background(),
			"INSERT INTO known_issues (regex_pattern) VALUES ('inside tx')")
		require.NoError(t, err)
	})

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM known_issues").Scan(&n))
	assert.Zero(t, n, "rows written in WithTx are rolled back")
}

func TestWithTxAlreadyCommitted(t *testing.T) {
	db := testdb.NewSQLite(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		require.NoError(t, tx.Commit())
	})
}
