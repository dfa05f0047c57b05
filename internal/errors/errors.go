package errors

import (
	"errors"
	"fmt"
)

// Common error types for the inventory auth server
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMalformedRecord    = errors.New("malformed user record")
	ErrUserNotFound       = errors.New("user not found")

	// Session token errors. All three collapse to a single 401 response;
	// the distinction exists for server-side diagnostics only.
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenSignature = errors.New("invalid token signature")
	ErrTokenExpired   = errors.New("token expired")

	// Authorization errors
	ErrForbidden = errors.New("forbidden")

	// Delegated access errors
	ErrSigning = errors.New("signing failure")

	// General errors
	ErrInternal = errors.New("internal error")
)

// UpstreamAuthError reports a non-success response from the external
// authorization server during a token exchange.
type UpstreamAuthError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamAuthError) Error() string {
	return fmt.Sprintf("upstream auth error: status %d", e.StatusCode)
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
