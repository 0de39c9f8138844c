package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/stallhq/storefront-api/internal/domain"
	"github.com/stallhq/storefront-api/internal/identity"
)

// authPath is the identity provider's REST root.
const authPath = "/auth/v1"

// AuthProvider implements identity.Provider against the platform's
// bundled GoTrue-style identity service. Operations that act on a
// specific session (GetUser, SignOut, UpdateUserMetadata) authorize with
// the end user's token; the rest use the client's own key.
type AuthProvider struct {
	client *Client
}

// NewAuthProvider creates an AuthProvider on top of the given client.
func NewAuthProvider(client *Client) *AuthProvider {
	return &AuthProvider{client: client}
}

// signUpResponse tolerates both provider responses to a sign-up: the bare
// user record when email confirmation is required, or a full session with
// an embedded user when it is not.
type signUpResponse struct {
	domain.Identity
	User *domain.Identity `json:"user"`
}

// SignUp implements identity.Provider.
func (p *AuthProvider) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*domain.Identity, error) {
	body := map[string]any{
		"email":    email,
		"password": password,
		"data":     metadata,
	}

	var resp signUpResponse
	if err := p.client.do(ctx, http.MethodPost, authPath+"/signup", nil, nil, body, &resp); err != nil {
		if messageContains(err, "already registered") || messageContains(err, "already been registered") {
			return nil, fmt.Errorf("%w: %w", identity.ErrEmailTaken, err)
		}
		return nil, fmt.Errorf("%w: %w", identity.ErrUpstream, err)
	}

	if resp.User != nil {
		return resp.User, nil
	}
	return &resp.Identity, nil
}

// SignInWithPassword implements identity.Provider.
func (p *AuthProvider) SignInWithPassword(ctx context.Context, email, password string) (*identity.Session, error) {
	params := url.Values{}
	params.Set("grant_type", "password")

	body := map[string]any{
		"email":    email,
		"password": password,
	}

	var session identity.Session
	if err := p.client.do(ctx, http.MethodPost, authPath+"/token", params, nil, body, &session); err != nil {
		var perr *PlatformError
		if errors.As(err, &perr) && perr.Status == http.StatusBadRequest {
			return nil, fmt.Errorf("%w: %w", identity.ErrInvalidCredentials, err)
		}
		return nil, fmt.Errorf("%w: %w", identity.ErrUpstream, err)
	}
	return &session, nil
}

// SendMagicLink implements identity.Provider. The provider delivers the
// one-time link out-of-band; nothing about the link is returned here.
func (p *AuthProvider) SendMagicLink(ctx context.Context, email, redirectTo string) error {
	params := url.Values{}
	if redirectTo != "" {
		params.Set("redirect_to", redirectTo)
	}

	body := map[string]any{
		"email":       email,
		"create_user": true,
	}

	if err := p.client.do(ctx, http.MethodPost, authPath+"/otp", params, nil, body, nil); err != nil {
		return fmt.Errorf("%w: %w", identity.ErrUpstream, err)
	}
	return nil
}

// AuthorizeURL implements identity.Provider. The authorize endpoint is a
// browser redirect, so the URL is constructed rather than requested.
func (p *AuthProvider) AuthorizeURL(provider, redirectTo string) (string, error) {
	if provider == "" {
		return "", fmt.Errorf("%w: missing provider name", identity.ErrUpstream)
	}

	params := url.Values{}
	params.Set("provider", provider)
	if redirectTo != "" {
		params.Set("redirect_to", redirectTo)
	}
	return p.client.BaseURL() + authPath + "/authorize?" + params.Encode(), nil
}

// GetUser implements identity.Provider.
func (p *AuthProvider) GetUser(ctx context.Context, accessToken string) (*domain.Identity, error) {
	scoped := p.client.WithToken(accessToken)

	var user domain.Identity
	if err := scoped.do(ctx, http.MethodGet, authPath+"/user", nil, nil, nil, &user); err != nil {
		var perr *PlatformError
		if errors.As(err, &perr) &&
			(perr.Status == http.StatusUnauthorized || perr.Status == http.StatusForbidden) {
			return nil, fmt.Errorf("%w: %w", identity.ErrInvalidToken, err)
		}
		return nil, fmt.Errorf("%w: %w", identity.ErrUpstream, err)
	}

	// A 2xx with no usable user is still an invalid token.
	if user.ID == uuid.Nil {
		return nil, identity.ErrInvalidToken
	}
	return &user, nil
}

// SignOut implements identity.Provider. Revokes every session belonging
// to the token's user.
func (p *AuthProvider) SignOut(ctx context.Context, accessToken string) error {
	params := url.Values{}
	params.Set("scope", "global")

	scoped := p.client.WithToken(accessToken)
	if err := scoped.do(ctx, http.MethodPost, authPath+"/logout", params, nil, nil, nil); err != nil {
		return fmt.Errorf("%w: %w", identity.ErrUpstream, err)
	}
	return nil
}

// UpdateUserMetadata implements identity.Provider.
func (p *AuthProvider) UpdateUserMetadata(ctx context.Context, accessToken string, metadata map[string]any) error {
	body := map[string]any{"data": metadata}

	scoped := p.client.WithToken(accessToken)
	if err := scoped.do(ctx, http.MethodPut, authPath+"/user", nil, nil, body, nil); err != nil {
		return fmt.Errorf("%w: %w", identity.ErrUpstream, err)
	}
	return nil
}
