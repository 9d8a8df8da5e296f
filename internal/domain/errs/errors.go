package errs

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrInvalidPayload    = errors.New("invalid payload")
	ErrValidation        = errors.New("validation failed")

	// ErrStatusExists is returned when a second status record is created for one user.
	ErrStatusExists = errors.New("user status already exists")
)
