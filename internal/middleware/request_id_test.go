package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDGenerated(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetRequestIDFromContext(r.Context())
		require.True(t, ok)
		seen = id
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
}

func TestRequestIDPreserved(t *testing.T) {
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := GetRequestIDFromContext(r.Context())
		assert.Equal(t, "upstream-id", id)
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Request-ID", "upstream-id")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, "upstream-id", w.Header().Get("X-Request-ID"))
}
