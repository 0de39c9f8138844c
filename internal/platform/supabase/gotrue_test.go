package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stallhq/storefront-api/internal/identity"
)

func TestAuthProviderSignUp(t *testing.T) {
	t.Parallel()

	t.Run("bare user response", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/signup", r.URL.Path)

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "new@example.com", body["email"])

			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":    userID.String(),
				"email": "new@example.com",
			})
		})
		p := NewAuthProvider(c)

		user, err := p.SignUp(context.Background(), "new@example.com", "secret123", nil)
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
	})

	t.Run("session response with embedded user", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token": "tok",
				"user": map[string]any{
					"id":    userID.String(),
					"email": "new@example.com",
				},
			})
		})
		p := NewAuthProvider(c)

		user, err := p.SignUp(context.Background(), "new@example.com", "secret123", nil)
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
	})

	t.Run("duplicate email classified", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"msg": "User already registered",
			})
		})
		p := NewAuthProvider(c)

		_, err := p.SignUp(context.Background(), "taken@example.com", "secret123", nil)
		assert.ErrorIs(t, err, identity.ErrEmailTaken)
	})
}

func TestAuthProviderSignIn(t *testing.T) {
	t.Parallel()

	t.Run("password grant returns session", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/token", r.URL.Path)
			assert.Equal(t, "password", r.URL.Query().Get("grant_type"))

			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token":  "access",
				"token_type":    "bearer",
				"expires_in":    3600,
				"refresh_token": "refresh",
				"user":          map[string]any{"id": uuid.NewString(), "email": "u@example.com"},
			})
		})
		p := NewAuthProvider(c)

		session, err := p.SignInWithPassword(context.Background(), "u@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "access", session.AccessToken)
		require.NotNil(t, session.User)
		assert.Equal(t, "u@example.com", session.User.Email)
	})

	t.Run("400 classified as bad credentials", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error_description": "Invalid login credentials",
			})
		})
		p := NewAuthProvider(c)

		_, err := p.SignInWithPassword(context.Background(), "u@example.com", "wrong")
		assert.ErrorIs(t, err, identity.ErrInvalidCredentials)
	})

	t.Run("5xx classified as upstream", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		p := NewAuthProvider(c)

		_, err := p.SignInWithPassword(context.Background(), "u@example.com", "secret123")
		assert.ErrorIs(t, err, identity.ErrUpstream)
	})
}

func TestAuthProviderMagicLink(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/otp", r.URL.Path)
		assert.Equal(t, "http://localhost:3000/auth/callback", r.URL.Query().Get("redirect_to"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["create_user"])
		w.WriteHeader(http.StatusOK)
	})
	p := NewAuthProvider(c)

	err := p.SendMagicLink(context.Background(), "u@example.com", "http://localhost:3000/auth/callback")
	require.NoError(t, err)
}

func TestAuthProviderAuthorizeURL(t *testing.T) {
	t.Parallel()

	c := NewClient("https://project.supabase.co", testAPIKey, nil, nil)
	p := NewAuthProvider(c)

	url, err := p.AuthorizeURL("google", "http://localhost:3000/auth/callback")
	require.NoError(t, err)
	assert.Equal(t,
		"https://project.supabase.co/auth/v1/authorize?provider=google&redirect_to=http%3A%2F%2Flocalhost%3A3000%2Fauth%2Fcallback",
		url)

	_, err = p.AuthorizeURL("", "")
	assert.Error(t, err)
}

func TestAuthProviderGetUser(t *testing.T) {
	t.Parallel()

	t.Run("resolves token to identity", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/v1/user", r.URL.Path)
			assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))

			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":    userID.String(),
				"email": "u@example.com",
				"user_metadata": map[string]any{
					"full_name": "User",
				},
			})
		})
		p := NewAuthProvider(c)

		ident, err := p.GetUser(context.Background(), "user-token")
		require.NoError(t, err)
		assert.Equal(t, userID, ident.ID)
		assert.Equal(t, "User", ident.DisplayName())
	})

	t.Run("401 is invalid token", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"msg": "invalid JWT"})
		})
		p := NewAuthProvider(c)

		_, err := p.GetUser(context.Background(), "bad")
		assert.ErrorIs(t, err, identity.ErrInvalidToken)
	})

	t.Run("2xx with empty user is invalid token", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		})
		p := NewAuthProvider(c)

		_, err := p.GetUser(context.Background(), "odd")
		assert.ErrorIs(t, err, identity.ErrInvalidToken)
	})
}

func TestAuthProviderSignOut(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/logout", r.URL.Path)
		assert.Equal(t, "global", r.URL.Query().Get("scope"))
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})
	p := NewAuthProvider(c)

	require.NoError(t, p.SignOut(context.Background(), "user-token"))
}

func TestAuthProviderUpdateUserMetadata(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/auth/v1/user", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		data, ok := body["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Shopkeeper", data["full_name"])
		w.WriteHeader(http.StatusOK)
	})
	p := NewAuthProvider(c)

	err := p.UpdateUserMetadata(context.Background(), "user-token",
		map[string]any{"full_name": "Shopkeeper"})
	require.NoError(t, err)
}
