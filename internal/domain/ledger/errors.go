// Package ledger holds the error taxonomy shared by every club ledger concept.
package ledger

import (
	"errors"
	"fmt"
)

// Error categories. Concrete errors wrap one of these so callers can branch with errors.Is.
var (
	ErrValidation           = errors.New("validation error")
	ErrDuplicateKey         = errors.New("duplicate key")
	ErrNotFound             = errors.New("not found")
	ErrReferentialIntegrity = errors.New("referential integrity violation")
)

// Validationf returns an error wrapping ErrValidation.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// DuplicateKeyf returns an error wrapping ErrDuplicateKey.
func DuplicateKeyf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDuplicateKey, fmt.Sprintf(format, args...))
}

// NotFoundf returns an error wrapping ErrNotFound.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// ReferentialIntegrityf returns an error wrapping ErrReferentialIntegrity.
func ReferentialIntegrityf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrReferentialIntegrity, fmt.Sprintf(format, args...))
}
