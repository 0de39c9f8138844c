package domain

import (
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// MaxUsernameLength bounds the profile username.
const MaxUsernameLength = 50

// Common validation errors for Profile
var (
	ErrUsernameTooLong = errors.New("username must be 50 characters or less")
)

// Profile holds the user-editable display data for an identity. A profile
// row is optional: new users have none until their first upsert, and
// readers substitute identity metadata for missing fields.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Website   string    `json:"website"`
	AvatarURL string    `json:"avatar_url"`
	GoogleID  string    `json:"google_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks if the Profile has valid data. Empty website and avatar
// values are valid; non-empty ones must be well-formed http(s) URLs.
func (p *Profile) Validate() error {
	if len(p.Username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}
	if err := validateOptionalURL("website", p.Website); err != nil {
		return err
	}
	if err := validateOptionalURL("avatar_url", p.AvatarURL); err != nil {
		return err
	}
	return nil
}

// validateOptionalURL accepts the empty string, otherwise requires an
// absolute http or https URL with a host.
func validateOptionalURL(field, raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return NewValidationError(field, "must be a valid http(s) URL", ErrInvalidURL)
	}
	return nil
}
