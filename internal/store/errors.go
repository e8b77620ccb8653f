package store

import "errors"

// Error kinds surfaced by the store. Callers branch with errors.Is; the
// HTTP layer maps them to status codes. Repositories never catch their own
// errors, they wrap and propagate.
var (
	// ErrNotFound reports an update, delete or get against an id that does
	// not exist in its table.
	ErrNotFound = errors.New("not found")

	// ErrValidation reports an invariant violation in the payload, e.g. a
	// negative result without a rejection reason.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable reports a store-level failure: the database could not
	// be opened, locked or migrated. During startup it is fatal.
	ErrUnavailable = errors.New("store unavailable")
)

func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
