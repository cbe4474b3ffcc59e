package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// decodeJSON decodes the request body into v, rejecting unknown fields so a
// typo in a client's request surfaces as an error instead of silently
// applying defaults.
func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}
	return nil
}

// writeJSON writes v as a JSON response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the shared {error, message, details} error body.
func writeError(w http.ResponseWriter, status int, errCode, message string, details []FieldError) {
	writeJSON(w, status, ErrorResponse{Error: errCode, Message: message, Details: details})
}
