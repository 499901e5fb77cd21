package storage

import (
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// Storage error taxonomy. Callers test with errors.Is.
var (
	// ErrNotFound indicates an update or lookup targeting a nonexistent id.
	ErrNotFound = errors.New("not found")
	// ErrIntegrityViolation indicates a missing foreign-key target or a
	// restrict-on-delete rejection.
	ErrIntegrityViolation = errors.New("integrity violation")
	// ErrStorageUnavailable indicates the underlying database could not be
	// opened or accessed.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// wrapConstraint translates SQLite constraint failures into
// ErrIntegrityViolation, leaving other errors untouched.
func wrapConstraint(err error, op string) error {
	if err == nil {
		return nil
	}
	var se sqlite3.Error
	if errors.As(err, &se) && se.Code == sqlite3.ErrConstraint {
		switch se.ExtendedCode {
		case sqlite3.ErrConstraintForeignKey, sqlite3.ErrConstraintTrigger:
			return fmt.Errorf("%w: %s: %v", ErrIntegrityViolation, op, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
