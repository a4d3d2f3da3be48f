package repositories

import "errors"

var (
	// ErrNotFound is returned when an id does not resolve, or resolves to a
	// row the caller has no rights over. Handlers map it to 404 without
	// distinguishing the two cases.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a unique constraint rejects a write
	// (duplicate email or username).
	ErrConflict = errors.New("already exists")

	// ErrSelfFollow is returned before any write when a user tries to
	// follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")
)
