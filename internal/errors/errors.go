package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Error categories shared by every package. Domain packages mark their own
// sentinels with one of these so callers can branch on the category alone.
var (
	ErrNotFound         = new(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists    = new(ErrCodeAlreadyExists, "resource already exists")
	ErrValidation       = new(ErrCodeValidation, "validation error")
	ErrInvalidOperation = new(ErrCodeInvalidOperation, "invalid operation")
	ErrDatabase         = new(ErrCodeDatabase, "database error")
	ErrDataIntegrity    = new(ErrCodeDataIntegrity, "data integrity error")
	ErrSystem           = new(ErrCodeSystemError, "system error")

	// ordered from most to least specific
	categories = []*InternalError{
		ErrDataIntegrity,
		ErrNotFound,
		ErrAlreadyExists,
		ErrValidation,
		ErrInvalidOperation,
		ErrDatabase,
		ErrSystem,
	}
)

const (
	ErrCodeSystemError      = "system_error"
	ErrCodeNotFound         = "not_found"
	ErrCodeAlreadyExists    = "already_exists"
	ErrCodeValidation       = "validation_error"
	ErrCodeInvalidOperation = "invalid_operation"
	ErrCodeDatabase         = "database_error"
	ErrCodeDataIntegrity    = "data_integrity_error"
)

// InternalError represents an error category
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is reports whether any error in err's chain matches target, including marks.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsDatabase checks if an error is a database error
func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

// IsDataIntegrity checks if an error is a data integrity fault.
// These are never retried.
func IsDataIntegrity(err error) bool {
	return errors.Is(err, ErrDataIntegrity)
}

// CodeFromErr returns the machine-readable code of the first category err is marked with.
func CodeFromErr(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range categories {
		if errors.Is(err, c) {
			return c.Code
		}
	}
	return ErrCodeSystemError
}

// HintsFromErr returns the user-facing hints attached along err's chain.
func HintsFromErr(err error) []string {
	return errors.GetAllHints(err)
}
