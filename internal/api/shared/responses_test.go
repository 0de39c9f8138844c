package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)

	RespondWithJSON(w, r, http.StatusCreated, map[string]string{"message": "ok"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["message"])
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	t.Run("includes trace id when present", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/test", nil)
		r = r.WithContext(SetTraceID(r.Context()))

		RespondWithError(w, r, http.StatusNotFound, "Product not found")

		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Product not found", resp.Error)
		assert.NotEmpty(t, resp.TraceID)
		assert.Empty(t, resp.Details)
	})

	t.Run("details carried through", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/test", nil)

		RespondWithErrorDetails(w, r, http.StatusBadRequest, "Database operation failed", "duplicate key")

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Database operation failed", resp.Error)
		assert.Equal(t, "duplicate key", resp.Details)
	})
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)

	RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
		"An unexpected error occurred", "", errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "An unexpected error occurred", resp.Error)
}
