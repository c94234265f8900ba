package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	resp := rec.Result()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHandler_Index(t *testing.T) {
	resp, body := get(t, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Little Lab Coats")
	require.Contains(t, body, "app.js")
}

func TestHandler_Script(t *testing.T) {
	resp, body := get(t, "/app.js")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, SavedStorageKey)
	require.Contains(t, body, "/api/generate-project")
	require.Contains(t, body, "Please select at least one material to start your lab experiment!")
	require.Contains(t, body, "Oops! Our idea brain needs a moment. Try again!")
}

func TestHandler_ScriptReadsSavedListOnce(t *testing.T) {
	_, body := get(t, "/app.js")
	require.Equal(t, 1, strings.Count(body, "localStorage.getItem("))
	// one definition, one call in init
	require.Equal(t, 2, strings.Count(body, "loadSaved()"))
	require.Contains(t, body, "JSON.stringify(state.saved)")
}

func TestHandler_Missing(t *testing.T) {
	resp, _ := get(t, "/nope.js")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
