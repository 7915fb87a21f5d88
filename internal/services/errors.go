package services

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

var (
	// ErrNotFound means the requested entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput means the request failed validation
	ErrInvalidInput = errors.New("invalid input")
)

// asNotFound maps a missing row to ErrNotFound, described by format/args.
// Any other store error (a connection failure, a bad query) passes through
// untouched so it surfaces as a persistence error, not a 404.
func asNotFound(err error, format string, args ...any) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
	}
	return err
}
