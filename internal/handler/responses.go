package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dogukancykrn/ziyaretci-takip-api/internal/domain"
)

// envelope is the JSON shape of every response: the admin dashboard keys on
// success/message/data regardless of status code.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// respondOK writes a 200 envelope.
func respondOK(w http.ResponseWriter, message string, data any) {
	respond(w, http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

// respondCreated writes a 201 envelope.
func respondCreated(w http.ResponseWriter, message string, data any) {
	respond(w, http.StatusCreated, envelope{Success: true, Message: message, Data: data})
}

// respondErr maps a service/repo error to a conventional status code and
// writes a failure envelope. Unexpected errors become an opaque 500; the
// detail goes to the log, not the client.
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		respondFailure(w, http.StatusUnprocessableEntity, unwrapMessage(err))
	case errors.Is(err, domain.ErrNoActiveVisitor):
		respondFailure(w, http.StatusNotFound, "no active visitor for this tc number")
	case errors.Is(err, domain.ErrNotFound):
		respondFailure(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrAlreadyExited):
		respondFailure(w, http.StatusConflict, "visitor already exited")
	case errors.Is(err, domain.ErrConflict):
		respondFailure(w, http.StatusConflict, "email, tc number, or phone number already in use")
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondFailure(w, http.StatusUnauthorized, "invalid email or password")
	default:
		slog.ErrorContext(r.Context(), "request failed", "error", err, "path", r.URL.Path)
		respondFailure(w, http.StatusInternalServerError, "internal server error")
	}
}

// respondBadRequest writes a 400 failure envelope for malformed input
// rejected before reaching the service layer.
func respondBadRequest(w http.ResponseWriter, message string) {
	respondFailure(w, http.StatusBadRequest, message)
}

func respondFailure(w http.ResponseWriter, status int, message string) {
	respond(w, status, envelope{Success: false, Message: message, Data: nil})
}

func respond(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// decodeJSON decodes a request body into dest and runs struct validation.
// Returns a user-facing message on failure.
func (s *Server) decodeJSON(r *http.Request, dest any) (string, bool) {
	if r.Body == nil {
		return "request body is required", false
	}
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return "invalid JSON body", false
	}
	if err := s.validate.Struct(dest); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return strings.ToLower(verrs[0].Field()) + " failed validation on rule '" + verrs[0].Tag() + "'", false
		}
		return "validation failed", false
	}
	return "", true
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error, e.g. "service.VisitorService.CheckIn: validation error: tc number
// must be 11 digits" becomes "tc number must be 11 digits".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	const marker = "validation error: "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
