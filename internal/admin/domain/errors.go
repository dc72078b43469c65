package domain

import (
	"github.com/nexusai/backoffice/internal/errors"
)

// Admin authentication error definitions.
var (
	// ErrUserNotFound indicates no user exists with the given identifier.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrInvalidLogin indicates the username/password pair did not match.
	// One message for both cases to avoid user enumeration.
	ErrInvalidLogin = errors.Wrap(errors.ErrUnauthorized, "invalid username or password")

	// ErrSessionInvalid indicates a missing, unknown or expired session token.
	ErrSessionInvalid = errors.Wrap(errors.ErrUnauthorized, "invalid or expired session")

	// ErrNotAdmin indicates the authenticated user lacks admin privileges.
	ErrNotAdmin = errors.Wrap(errors.ErrForbidden, "admin privileges required")
)
