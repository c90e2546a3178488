package utils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos-backend/internal/apperrors"
)

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperrors.Validation("quantity must be positive"), 400},
		{"not found", apperrors.NotFound("shop 9 not found"), 404},
		{"insufficient stock", &apperrors.InsufficientStockError{InventoryID: 1, Available: 0, Requested: 1}, 409},
		{"conflict", apperrors.Conflict("retry the sale"), 409},
		{"internal", apperrors.Internal(errors.New("pg: connection refused")), 500},
		{"unknown error", errors.New("boom"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			Error(w, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, apperrors.KindOf(tt.err), resp.Kind)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestErrorHidesInternalCause(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, apperrors.Internal(errors.New("password=hunter2 dial failed")))

	assert.NotContains(t, w.Body.String(), "hunter2")
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x","bogus":1}`))
	err := DecodeJSON(r, &dst)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	r = httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "x", dst.Name)
}
