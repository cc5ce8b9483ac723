// internal/app/system/respond/respond.go

// Package respond writes the API's JSON envelope: every response body is
// {message, data?, errors?} and the HTTP status carries the error class.
package respond

import (
	"encoding/json"
	"net/http"
)

// Envelope is the body shape shared by every endpoint.
type Envelope struct {
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// JSON writes an envelope with the given status code.
func JSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// OK writes a 200 success envelope. data may be nil.
func OK(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, Envelope{Message: message, Data: data})
}

// BadRequest writes a 400 with a single human-readable message.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, Envelope{Message: message})
}

// ValidationFailed writes a 400 carrying per-field messages.
func ValidationFailed(w http.ResponseWriter, errs []string) {
	JSON(w, http.StatusBadRequest, Envelope{Message: "Validation error", Errors: errs})
}

// NotFound writes a 404 with the given message.
func NotFound(w http.ResponseWriter, message string) {
	JSON(w, http.StatusNotFound, Envelope{Message: message})
}

// Unauthorized writes a 401 with the given message.
func Unauthorized(w http.ResponseWriter, message string) {
	JSON(w, http.StatusUnauthorized, Envelope{Message: message})
}

// Forbidden writes a 403 with the given message.
func Forbidden(w http.ResponseWriter, message string) {
	JSON(w, http.StatusForbidden, Envelope{Message: message})
}

// ServerError writes the generic 500 envelope. The caller is expected to
// have logged the underlying error already.
func ServerError(w http.ResponseWriter) {
	JSON(w, http.StatusInternalServerError, Envelope{Message: "Internal server error"})
}
