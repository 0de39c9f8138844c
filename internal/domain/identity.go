package domain

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the user record owned by the external identity provider.
// It is read-only from this system's perspective, except for a best-effort
// metadata merge when a profile is edited.
type Identity struct {
	ID               uuid.UUID      `json:"id"`
	Email            string         `json:"email"`
	UserMetadata     map[string]any `json:"user_metadata"`
	CreatedAt        time.Time      `json:"created_at"`
	LastSignInAt     *time.Time     `json:"last_sign_in_at"`
	EmailConfirmedAt *time.Time     `json:"email_confirmed_at"`
}

// MetadataString returns the named user-metadata value when it is a
// non-empty string, and "" otherwise.
func (i *Identity) MetadataString(key string) string {
	if i.UserMetadata == nil {
		return ""
	}
	if s, ok := i.UserMetadata[key].(string); ok {
		return s
	}
	return ""
}

// DisplayName returns the identity's display name, falling back to the
// email address when no name metadata is set.
func (i *Identity) DisplayName() string {
	if name := i.MetadataString("full_name"); name != "" {
		return name
	}
	if name := i.MetadataString("name"); name != "" {
		return name
	}
	return i.Email
}

// AvatarURL returns the avatar URL from identity metadata, if any.
func (i *Identity) AvatarURL() string {
	return i.MetadataString("avatar_url")
}

// ProviderID returns the external provider's own id for this identity
// (e.g. the Google subject), if the provider recorded one.
func (i *Identity) ProviderID() string {
	return i.MetadataString("provider_id")
}

// UserSummary is the normalized identity shape returned by auth endpoints.
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
}

// Summary normalizes the identity into the response shape shared by the
// login and session endpoints.
func (i *Identity) Summary() UserSummary {
	return UserSummary{
		ID:        i.ID,
		Email:     i.Email,
		Name:      i.DisplayName(),
		AvatarURL: i.AvatarURL(),
	}
}
