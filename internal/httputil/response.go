package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// RespondJSON sends a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondError sends {"error", "code"} with the given status.
func RespondError(w http.ResponseWriter, message, code string, statusCode int) {
	RespondJSON(w, ErrorResponse{Error: message, Code: code}, statusCode)
}

// RespondInternal hides the cause behind a generic message. Callers log it.
func RespondInternal(w http.ResponseWriter) {
	RespondError(w, "internal server error", CodeInternal, http.StatusInternalServerError)
}

// MaxJSONBodySize caps request bodies read by DecodeJSON.
const MaxJSONBodySize = 1 << 20

// DecodeJSON decodes the request body into dst. Bodies over MaxJSONBodySize
// fail with *http.MaxBytesError.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBodySize)
	return json.NewDecoder(r.Body).Decode(dst)
}
