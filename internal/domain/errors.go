package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, malformed tc number).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrNoActiveVisitor is returned by the check-out path when no visitor with
// the given tc number is currently inside. This covers both "never checked
// in" and "already checked out" — the caller cannot distinguish the two,
// which is exactly what makes the conditional-update check-out race-safe.
// Handlers should map this to HTTP 404.
var ErrNoActiveVisitor = errors.New("no active visitor")

// ErrAlreadyExited is returned when a check-out is attempted on a specific
// record whose ExitedAt is already set. Handlers should map this to HTTP 409.
var ErrAlreadyExited = errors.New("visitor already exited")

// ErrConflict is returned when a uniqueness constraint would be violated
// (duplicate admin email, tc number, or phone number).
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrInvalidCredentials is returned by the login path on an unknown email or
// a wrong password. The two cases are deliberately indistinguishable.
// Handlers should map this to HTTP 401.
var ErrInvalidCredentials = errors.New("invalid credentials")
