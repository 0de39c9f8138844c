package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		profile Profile
		wantErr error
	}{
		{
			name:    "empty profile is valid",
			profile: Profile{},
		},
		{
			name:    "username at limit",
			profile: Profile{Username: strings.Repeat("a", MaxUsernameLength)},
		},
		{
			name:    "username over limit",
			profile: Profile{Username: strings.Repeat("a", MaxUsernameLength+1)},
			wantErr: ErrUsernameTooLong,
		},
		{
			name:    "https website",
			profile: Profile{Website: "https://example.com/shop"},
		},
		{
			name:    "http website",
			profile: Profile{Website: "http://example.com"},
		},
		{
			name:    "website without scheme",
			profile: Profile{Website: "example.com"},
			wantErr: ErrInvalidURL,
		},
		{
			name:    "website with bad scheme",
			profile: Profile{Website: "ftp://example.com"},
			wantErr: ErrInvalidURL,
		},
		{
			name:    "avatar without host",
			profile: Profile{AvatarURL: "https://"},
			wantErr: ErrInvalidURL,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.profile.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewValidationError("website", "must be a valid http(s) URL", ErrInvalidURL)
	assert.Equal(t, "website must be a valid http(s) URL", err.Error())
	assert.ErrorIs(t, err, ErrInvalidURL)
}
