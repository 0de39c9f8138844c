package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	Health(w, newRequest(t, http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "ok", resp.Status)
	assert.Contains(t, resp.Endpoints, "GET /api/posts")
	assert.Contains(t, resp.Endpoints, "POST /api/auth/login")
	assert.Len(t, resp.Endpoints, 20)
}
