package storage

import (
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"badminton/internal/domain/ledger"
)

// TranslateError maps SQLite constraint failures onto the ledger error taxonomy.
// Other errors are returned unchanged.
// PRE: subject names the record being written, for the message
// POST: unique/PK → ErrDuplicateKey, check → ErrValidation, FK → ErrReferentialIntegrity
func TranslateError(err error, subject string) error {
	if err == nil {
		return nil
	}
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return err
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return fmt.Errorf("%w: %s already exists", ledger.ErrDuplicateKey, subject)
	case sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return fmt.Errorf("%w: %s violates a constraint: %v", ledger.ErrValidation, subject, se)
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return fmt.Errorf("%w: %s breaks a player reference", ledger.ErrReferentialIntegrity, subject)
	}
	return err
}
