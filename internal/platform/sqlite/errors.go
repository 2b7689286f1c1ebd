package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/phrazzld/knownissues-api/internal/store"
	modernc "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// MapError classifies a driver error as one of the store sentinels, the
// same way postgres.MapError does for SQLSTATE codes. Errors with no
// mapping come back unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var liteErr *modernc.Error
	if !errors.As(err, &liteErr) {
		return err
	}

	switch code := liteErr.Code(); code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		return fmt.Errorf("%w: row fails check: %v", store.ErrInvalidEntity, err)
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return fmt.Errorf("%w: null column: %v", store.ErrInvalidEntity, err)
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return fmt.Errorf("%w: foreign key violation: %v", store.ErrInvalidEntity, err)
	default:
		// primary result code in the low byte
		if code&0xff == sqlite3.SQLITE_CONSTRAINT {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
		return err
	}
}
