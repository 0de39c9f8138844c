package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIdentityDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		identity Identity
		want     string
	}{
		{
			name: "prefers full_name",
			identity: Identity{
				Email:        "a@example.com",
				UserMetadata: map[string]any{"full_name": "Ada", "name": "Other"},
			},
			want: "Ada",
		},
		{
			name: "falls back to name",
			identity: Identity{
				Email:        "a@example.com",
				UserMetadata: map[string]any{"name": "Ada"},
			},
			want: "Ada",
		},
		{
			name:     "falls back to email",
			identity: Identity{Email: "a@example.com"},
			want:     "a@example.com",
		},
		{
			name: "ignores non-string metadata",
			identity: Identity{
				Email:        "a@example.com",
				UserMetadata: map[string]any{"full_name": 42},
			},
			want: "a@example.com",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.identity.DisplayName())
		})
	}
}

func TestIdentitySummary(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	ident := Identity{
		ID:    id,
		Email: "seller@example.com",
		UserMetadata: map[string]any{
			"full_name":  "Seller",
			"avatar_url": "https://cdn.example.com/a.png",
		},
	}

	summary := ident.Summary()
	assert.Equal(t, id, summary.ID)
	assert.Equal(t, "seller@example.com", summary.Email)
	assert.Equal(t, "Seller", summary.Name)
	assert.Equal(t, "https://cdn.example.com/a.png", summary.AvatarURL)
}
