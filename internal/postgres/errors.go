package postgres

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrConflict covers unique violations and serialization failures.
	// Callers may retry the whole unit of work.
	ErrConflict = errors.New("conflict: concurrent update or unique violation")

	// ErrForeignKey is returned when an insert references a missing row.
	ErrForeignKey = errors.New("referenced row does not exist")
)

const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// MapError translates driver-level Postgres errors into the package's
// sentinel errors, leaving anything unrecognized untouched.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case codeUniqueViolation, codeSerializationFailure, codeDeadlockDetected:
		return errors.Join(ErrConflict, err)
	case codeForeignKeyViolation:
		return errors.Join(ErrForeignKey, err)
	}

	return err
}
