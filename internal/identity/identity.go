// Package identity defines the interface to the external identity
// provider: the service that issues and validates bearer tokens and owns
// the user records. The gateway never implements credential handling
// itself; every operation here is a pass-through to the provider.
package identity

import (
	"context"

	"github.com/stallhq/storefront-api/internal/domain"
)

// Session is the raw session object the provider returns on a successful
// password sign-in. It is relayed to the client unchanged.
type Session struct {
	AccessToken  string           `json:"access_token"`
	TokenType    string           `json:"token_type"`
	ExpiresIn    int              `json:"expires_in"`
	ExpiresAt    int64            `json:"expires_at,omitempty"`
	RefreshToken string           `json:"refresh_token"`
	User         *domain.Identity `json:"user"`
}

// Provider is the set of identity-provider operations the gateway
// consumes. Implementations classify provider rejections into the
// sentinel errors in errors.go so handlers can map them onto the HTTP
// error taxonomy.
type Provider interface {
	// SignUp registers a new user with the given credentials and initial
	// user metadata. No session is issued; the provider may require email
	// confirmation before the first sign-in.
	SignUp(ctx context.Context, email, password string, metadata map[string]any) (*domain.Identity, error)

	// SignInWithPassword performs a password grant and returns the
	// provider's session.
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)

	// SendMagicLink asks the provider to deliver a one-time login link to
	// the email address, creating the user if absent. The link itself is
	// delivered out-of-band and never returned to the caller.
	SendMagicLink(ctx context.Context, email, redirectTo string) error

	// AuthorizeURL returns the provider-hosted redirect URL that starts an
	// OAuth flow with the named external provider.
	AuthorizeURL(provider, redirectTo string) (string, error)

	// GetUser resolves a bearer token to its identity.
	// Returns ErrInvalidToken when the provider rejects the token or
	// returns no user.
	GetUser(ctx context.Context, accessToken string) (*domain.Identity, error)

	// SignOut revokes every session belonging to the token's user.
	SignOut(ctx context.Context, accessToken string) error

	// UpdateUserMetadata merges the given fields into the token's user
	// metadata. Used as a best-effort mirror of profile edits.
	UpdateUserMetadata(ctx context.Context, accessToken string, metadata map[string]any) error
}
