package identity

import "errors"

// Common identity provider errors.
var (
	// ErrInvalidToken is returned when the provider rejects a bearer token
	// or resolves it to no user.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrInvalidCredentials is returned when a password sign-in fails.
	ErrInvalidCredentials = errors.New("invalid login credentials")

	// ErrEmailTaken is returned when registration collides with an
	// existing account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUpstream is returned for any other provider failure. The wrapped
	// error carries the provider's message.
	ErrUpstream = errors.New("identity provider request failed")
)
