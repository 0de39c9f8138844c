package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/stallhq/storefront-api/internal/api/shared"
	"github.com/stallhq/storefront-api/internal/domain"
)

const testToken = "test-access-token"

// testIdentity builds a deterministic authenticated caller.
func testIdentity() *domain.Identity {
	return &domain.Identity{
		ID:    uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Email: "caller@example.com",
		UserMetadata: map[string]any{
			"full_name": "Caller",
		},
	}
}

// newRequest builds a request with an optional JSON body.
func newRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, target, reader)
	r.Header.Set("Content-Type", "application/json")
	return r
}

// authed attaches the identity and token the auth guard would have set.
func authed(r *http.Request, ident *domain.Identity) *http.Request {
	ctx := shared.WithIdentity(r.Context(), ident, testToken)
	return r.WithContext(ctx)
}

// withPathID injects a chi route parameter named "id".
func withPathID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// decodeBody unmarshals the recorded response body into v.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

// errorBody returns the decoded error envelope.
func errorBody(t *testing.T, w *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	decodeBody(t, w, &resp)
	return resp
}

func ptr[T any](v T) *T {
	return &v
}
