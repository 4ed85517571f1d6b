package web

// errors.go provides unified error response handling for the web layer.
//
// Handlers call respondError with whatever the engine returned. The error
// is mapped via core.MapError to an operator-facing message, the technical
// error is logged with the request ID for correlation, and the client gets
// a JSON body with message, action and support code.

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"mailmerge/backend/internal/core"
	"mailmerge/backend/internal/logging"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs the technical error server-side and writes the mapped
// operator message. The HTTP status is derived from the engine sentinel.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	userMsg := core.MapError(err)
	status := statusForError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	})
}

// statusForError maps engine sentinels to HTTP status codes. Unknown
// errors are treated as server faults.
func statusForError(err error) int {
	switch {
	case errors.Is(err, core.ErrSessionNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, core.ErrRowIndex):
		return http.StatusNotFound
	case errors.Is(err, core.ErrNoHeaders),
		errors.Is(err, core.ErrMissingRecipient),
		errors.Is(err, core.ErrInvalidMapping),
		errors.Is(err, core.ErrNoTable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
