package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

var (
	// ErrNotFound means the requested row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate means an insert would violate a uniqueness constraint.
	// Concurrent attach/share races surface here, never as a raw driver error.
	ErrDuplicate = errors.New("duplicate record")
	// ErrInvalidReference means a foreign key points at a missing row.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// MapError translates GORM and PostgreSQL driver errors into the package's
// domain errors so callers never have to inspect driver types.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: %v", ErrDuplicate, err)
		case foreignKeyViolationCode:
			return fmt.Errorf("%w (%s): %v", ErrInvalidReference, pgErr.ConstraintName, err)
		}
	}

	return err
}
