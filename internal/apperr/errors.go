// Package apperr defines the error taxonomy shared by the service and API
// layers. Handlers match with errors.Is and map onto HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals that no record matches the given identifier.
	ErrNotFound = errors.New("not found")
	// ErrValidation signals that client-supplied data violates a
	// required-field or enum constraint.
	ErrValidation = errors.New("validation failed")
)

// Validationf wraps ErrValidation with a message describing the violated
// constraint. The message surfaces verbatim in the 400 response body.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
