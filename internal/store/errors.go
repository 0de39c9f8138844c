package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested record does not exist in the
	// store, or when an ownership-filtered query matched nothing. This is a
	// generic version of the record-specific not found errors.
	ErrNotFound = errors.New("record not found")

	// ErrEmptyResult is returned when a write that requested the resulting
	// representation came back with no rows. For inserts this is distinct
	// from an upstream error; for filtered updates it collapses to the same
	// user-visible outcome as not-found.
	ErrEmptyResult = errors.New("write returned no rows")

	// ErrUpstream is returned when the record store itself rejected or
	// failed the call. The wrapped error carries the upstream message.
	ErrUpstream = errors.New("record store request failed")

	// Record-specific "not found" errors

	// ErrProductNotFound indicates that the requested product does not exist.
	ErrProductNotFound = fmt.Errorf("%w: product", ErrNotFound)

	// ErrCartItemNotFound indicates that the requested cart item does not
	// exist or is not owned by the caller.
	ErrCartItemNotFound = fmt.Errorf("%w: cart item", ErrNotFound)

	// ErrProfileNotFound indicates that no profile row exists for the user.
	// This is a valid state for new users; readers substitute identity
	// metadata instead of failing.
	ErrProfileNotFound = fmt.Errorf("%w: profile", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
