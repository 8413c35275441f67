package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// Request body caps
const (
	MaxJSONBodyBytes      = 1 << 20
	MaxMultipartBodyBytes = 8 << 20
)

// ErrorResponse is the JSON body of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a standardized JSON error response
func WriteError(w http.ResponseWriter, statusCode int, errorType, message string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error:   errorType,
		Message: message,
	})
}

// WriteJSON writes v as a JSON response with the given status
func WriteJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; nothing left to do but log
		slog.Warn("failed to encode response", slog.String("error", err.Error()))
	}
}

// DecodeJSON reads a size-capped JSON body into v, writing the error reply itself on failure.
// Returns false when the handler should stop.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge", "Request body too large (max 1MB)")
			return false
		}
		WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return false
	}
	return true
}

// WriteInternalError logs err and writes a 500 without leaking details
func WriteInternalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("unexpected handler error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
}

// RequireUserID is a guard for handlers behind RequireAuth; it writes a 401 when id is zero
func RequireUserID(w http.ResponseWriter, id int64) bool {
	if id == 0 {
		WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return false
	}
	return true
}
