package relationships

import "errors"

// Error kinds surfaced by relationship mutations. Handlers map these to
// HTTP status codes; read operations never return them.
var (
	// ErrNotFound means the referenced user, relationship, or block is absent
	ErrNotFound = errors.New("relationship not found")

	// ErrConflict means a relationship or block already exists for the pair
	ErrConflict = errors.New("relationship already exists")

	// ErrBlocked means a block is in effect between the two users
	ErrBlocked = errors.New("blocked")

	// ErrNotAllowed means the caller may not act on this record
	ErrNotAllowed = errors.New("not allowed")
)
