package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrNotPending = errors.New("not pending")
)

// DuplicateError is returned when a unique index rejects a write.
// Field is "email", "username", "membership_id" or "" when unknown.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return "duplicate record"
	}
	return fmt.Sprintf("duplicate %s", e.Field)
}

const uniqueViolation = "23505"

// mapPQError turns unique violations into *DuplicateError and leaves everything else as is.
func mapPQError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != uniqueViolation {
		return err
	}
	c := pqErr.Constraint
	switch {
	case strings.Contains(c, "username"):
		return &DuplicateError{Field: "username"}
	case strings.Contains(c, "email"):
		return &DuplicateError{Field: "email"}
	case strings.Contains(c, "membership_id"):
		return &DuplicateError{Field: "membership_id"}
	case strings.Contains(c, "name"):
		return &DuplicateError{Field: "name"}
	}
	return &DuplicateError{}
}
