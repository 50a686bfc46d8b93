package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"aiahub/internal/bootstrap/logging"
	"aiahub/internal/domain/assessment"
	"aiahub/internal/domain/rbac"
	"aiahub/internal/errs"
	"aiahub/internal/ports"
	"aiahub/internal/usecase/users"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	// The status line is already written, so encode failures cannot be
	// reported to the client anymore.
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		logging.Error(r.Context(), "request failed",
			slog.Any("err", errs.Loggable(errs.WithStack(err))))
	}
	respondJSON(w, status, errorResponse{Error: err.Error()})
}

// statusForError maps service errors onto HTTP statuses. Anything
// unrecognized is treated as a server fault.
func statusForError(err error) int {
	switch {
	case errors.Is(err, users.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, ports.ErrSystemNotFound),
		errors.Is(err, ports.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ports.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, assessment.ErrInvalidArgument),
		errors.Is(err, ports.ErrInvalidUser),
		errors.Is(err, rbac.ErrUnknownRole):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads the body into dst, rejecting unknown fields so typos in
// payloads fail loudly instead of silently dropping data.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errs.Wrap(err, "decode request body")
	}
	return nil
}

func respondBadRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}
