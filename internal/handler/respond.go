package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/inkwellcms/inkwell/internal/respond"
	"github.com/inkwellcms/inkwell/internal/service"
)

// decodeJSON parses a request body into dst. Returns false after writing a
// 400 envelope when the body is malformed.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request payload.")
		return false
	}
	return true
}

// statusFor maps domain errors to HTTP statuses. Anything unrecognized is an
// upstream failure and gets a generic message, never the raw error text.
func statusFor(err error) (status int, message string) {
	switch {
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrSlugConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTokenInvalidOrExpired),
		errors.Is(err, service.ErrPageNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrEmailNotVerified):
		return http.StatusForbidden, err.Error()
	default:
		return http.StatusInternalServerError, "An internal server error occurred."
	}
}

// failWith logs the real error and builds the public envelope fields for it.
func failWith(r *http.Request, err error) (status int, desc *respond.ErrorDescriptor, flash *string) {
	status, message := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "path", r.URL.Path, "error", err)
	} else {
		slog.Warn("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	return status, respond.NewError(status, message), respond.Flash(message)
}
