package services

import (
	"errors"
	"fmt"

	"memberhub/internal/repositories"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidOrExpiredOTP  = errors.New("invalid or expired code")
	ErrTooManyAttempts      = errors.New("too many attempts")
	ErrResendThrottled      = errors.New("resend throttled")
	ErrVerificationRequired = errors.New("contact verification required")
	ErrConflict             = errors.New("conflict")
	ErrNotFound             = errors.New("not found")
	ErrAlreadyProcessed     = errors.New("already processed")
	ErrMissingCredentials   = errors.New("request has no applicant credentials")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrForbidden            = errors.New("forbidden")
	ErrDependency           = errors.New("dependency failure")
)

// FieldError is an ErrInvalidInput that names the offending field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string        { return e.Field + " " + e.Reason }
func (e *FieldError) Is(target error) bool { return target == ErrInvalidInput }

func required(field string) error {
	return &FieldError{Field: field, Reason: "is required"}
}

// ConflictError is an ErrConflict for a duplicate email/username/etc.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return "record already exists"
	}
	return fmt.Sprintf("an account with this %s already exists", e.Field)
}
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// DependencyError wraps a database or transport failure with the step that hit it.
type DependencyError struct {
	Step string
	Err  error
}

func (e *DependencyError) Error() string        { return e.Step + ": " + e.Err.Error() }
func (e *DependencyError) Unwrap() error        { return e.Err }
func (e *DependencyError) Is(target error) bool { return target == ErrDependency }

func dependency(step string, err error) error {
	return &DependencyError{Step: step, Err: err}
}

// fromRepo maps repository errors onto the service taxonomy.
func fromRepo(step string, err error) error {
	var dup *repositories.DuplicateError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &dup):
		return &ConflictError{Field: dup.Field}
	case errors.Is(err, repositories.ErrNotFound):
		return fmt.Errorf("%s: %w", step, ErrNotFound)
	case errors.Is(err, repositories.ErrNotPending):
		return fmt.Errorf("%s: %w", step, ErrAlreadyProcessed)
	}
	return dependency(step, err)
}
