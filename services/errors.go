// Common service-level error values and types. Controllers translate
// these into HTTP status codes; services never write HTTP responses.
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidCredentials is returned on a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionExpired is returned when a session token is unknown or
	// past its expiry.
	ErrSessionExpired = errors.New("session expired or invalid")
)

// ValidationError reports a request that fails field-level validation
// (missing required field, category outside the enumerated set,
// non-positive price). The message is safe to show to the caller.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StorageError wraps a failed file or database operation. The cause is
// logged server-side; callers see a generic message.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

// UpstreamError reports a failed external price lookup.
type UpstreamError struct {
	URL string
	Err error
}

func (e *UpstreamError) Error() string { return fmt.Sprintf("upstream: %s: %v", e.URL, e.Err) }
func (e *UpstreamError) Unwrap() error { return e.Err }
