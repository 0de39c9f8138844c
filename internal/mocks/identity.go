package mocks

import (
	"context"

	"github.com/stallhq/storefront-api/internal/domain"
	"github.com/stallhq/storefront-api/internal/identity"
)

// Provider is a function-field mock of identity.Provider. Unset lookup
// fields reject with ErrInvalidToken; unset write fields succeed.
type Provider struct {
	SignUpFn             func(ctx context.Context, email, password string, metadata map[string]any) (*domain.Identity, error)
	SignInWithPasswordFn func(ctx context.Context, email, password string) (*identity.Session, error)
	SendMagicLinkFn      func(ctx context.Context, email, redirectTo string) error
	AuthorizeURLFn       func(provider, redirectTo string) (string, error)
	GetUserFn            func(ctx context.Context, accessToken string) (*domain.Identity, error)
	SignOutFn            func(ctx context.Context, accessToken string) error
	UpdateUserMetadataFn func(ctx context.Context, accessToken string, metadata map[string]any) error
}

var _ identity.Provider = (*Provider)(nil)

func (m *Provider) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*domain.Identity, error) {
	if m.SignUpFn != nil {
		return m.SignUpFn(ctx, email, password, metadata)
	}
	return &domain.Identity{Email: email}, nil
}

func (m *Provider) SignInWithPassword(ctx context.Context, email, password string) (*identity.Session, error) {
	if m.SignInWithPasswordFn != nil {
		return m.SignInWithPasswordFn(ctx, email, password)
	}
	return nil, identity.ErrInvalidCredentials
}

func (m *Provider) SendMagicLink(ctx context.Context, email, redirectTo string) error {
	if m.SendMagicLinkFn != nil {
		return m.SendMagicLinkFn(ctx, email, redirectTo)
	}
	return nil
}

func (m *Provider) AuthorizeURL(provider, redirectTo string) (string, error) {
	if m.AuthorizeURLFn != nil {
		return m.AuthorizeURLFn(provider, redirectTo)
	}
	return "https://auth.example.com/authorize?provider=" + provider, nil
}

func (m *Provider) GetUser(ctx context.Context, accessToken string) (*domain.Identity, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, accessToken)
	}
	return nil, identity.ErrInvalidToken
}

func (m *Provider) SignOut(ctx context.Context, accessToken string) error {
	if m.SignOutFn != nil {
		return m.SignOutFn(ctx, accessToken)
	}
	return nil
}

func (m *Provider) UpdateUserMetadata(ctx context.Context, accessToken string, metadata map[string]any) error {
	if m.UpdateUserMetadataFn != nil {
		return m.UpdateUserMetadataFn(ctx, accessToken, metadata)
	}
	return nil
}
