package model

import "errors"

// Error taxonomy shared by the repository and service layers. Handlers map
// these onto HTTP status codes; everything else is treated as internal.
var (
	// ErrValidation marks a request with a missing or empty required field.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a referenced message id or username that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a uniqueness violation on insert.
	ErrConflict = errors.New("already exists")

	// ErrStorage marks an unavailable store or a failed query.
	ErrStorage = errors.New("storage unavailable")
)
