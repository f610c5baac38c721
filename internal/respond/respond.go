// Package respond implements the uniform response envelope: every route
// returns {error, flash, ...} JSON, where error is null or an ErrorDescriptor
// and flash is a one-shot user-facing message.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorDescriptor is the public error shape. Error carries the HTTP status
// message; Message carries an intentionally-thrown domain message, never raw
// internals.
type ErrorDescriptor struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

func NewError(status int, message string) *ErrorDescriptor {
	if message == "" {
		message = http.StatusText(status)
	}
	return &ErrorDescriptor{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    message,
	}
}

// Flash wraps a message for an envelope field that must serialize to null
// when absent.
func Flash(message string) *string {
	return &message
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(payload)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Envelope is the minimal {error, flash} response used by routes with no
// route-specific data and by middleware rejections.
type Envelope struct {
	Error *ErrorDescriptor `json:"error"`
	Flash *string          `json:"flash"`
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{
		Error: NewError(status, message),
		Flash: Flash(message),
	})
}
