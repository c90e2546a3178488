package utils

import (
	"encoding/json"
	"log"
	"net/http"

	"pos-backend/internal/apperrors"
)

// JSON writes data as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// ErrorResponse is the wire shape for all failures.
type ErrorResponse struct {
	Kind    apperrors.Kind `json:"kind"`
	Message string         `json:"message"`
}

// Error maps an application error to an HTTP status and writes it.
// Internal causes are logged here and never sent to the client.
func Error(w http.ResponseWriter, err error) {
	kind := apperrors.KindOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case apperrors.KindValidation:
		status = http.StatusBadRequest
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	case apperrors.KindInsufficientStock, apperrors.KindConflict:
		status = http.StatusConflict
	case apperrors.KindInternal:
		log.Printf("[Error] %v", err)
	}

	JSON(w, status, ErrorResponse{Kind: kind, Message: apperrors.Message(err)})
}

// DecodeJSON decodes a request body into dst, rejecting unknown fields
// so malformed shapes fail before any business logic runs.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperrors.Validation("invalid request body: %v", err)
	}
	return nil
}
