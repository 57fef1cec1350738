package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/pkordes/tripcrew/internal/auth"
	"github.com/pkordes/tripcrew/internal/domain"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// conflictCodes maps specific conflict kinds to their machine codes.
// Anything else wrapping domain.ErrConflict is reported as "conflict".
var conflictCodes = []struct {
	err  error
	code string
}{
	{domain.ErrInvalidCode, "invalid_code"},
	{domain.ErrTripFull, "trip_full"},
	{domain.ErrAlreadyParticipant, "already_participant"},
	{domain.ErrVersionConflict, "version_conflict"},
	{domain.ErrLastAdmin, "last_admin"},
}

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorBody(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// writeError maps a service error to its HTTP status and error code.
// Errors outside the domain taxonomy are logged and reported as 500 without
// leaking their text.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeErrorBody(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrNotFound):
		writeErrorBody(w, http.StatusNotFound, "not_found", unwrapMessage(err, nil))
	case errors.Is(err, domain.ErrNotAuthorized):
		writeErrorBody(w, http.StatusForbidden, "forbidden", unwrapMessage(err, nil))
	case errors.Is(err, domain.ErrConflict):
		code := "conflict"
		for _, c := range conflictCodes {
			if errors.Is(err, c.err) {
				code = c.code
				break
			}
		}
		writeErrorBody(w, http.StatusConflict, code, unwrapMessage(err, nil))
	default:
		s.log.ErrorContext(r.Context(), "unhandled error",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
		writeErrorBody(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// unwrapMessage strips the origin prefixes ("service.TripService.Join: ")
// from a wrapped error, leaving the domain message. When sentinel is given
// its own text is stripped too, so "validation error: title is required"
// becomes "title is required".
func unwrapMessage(err error, sentinel error) string {
	msg := err.Error()
	for {
		head, rest, ok := strings.Cut(msg, ": ")
		if !ok || !isOrigin(head) {
			break
		}
		msg = rest
	}
	if sentinel != nil {
		msg = strings.TrimPrefix(msg, sentinel.Error()+": ")
	}
	return msg
}

// isOrigin reports whether s looks like a "pkg.Type.Method" wrapping prefix.
func isOrigin(s string) bool {
	return strings.Count(s, ".") >= 1 && !strings.ContainsAny(s, " \t")
}

// decodeJSON decodes the request body into dst, writing a 400 or 413 and
// returning false when the body is missing, malformed or too large.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err == nil {
		return true
	}

	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		writeErrorBody(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body too large")
	case errors.Is(err, io.EOF):
		writeErrorBody(w, http.StatusBadRequest, "bad_request", "request body is required")
	default:
		writeErrorBody(w, http.StatusBadRequest, "bad_request", fmt.Sprintf("malformed request body: %v", err))
	}
	return false
}

// pathUUID parses the named chi URL parameter, writing a 400 and returning
// false when it is not a UUID.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeErrorBody(w, http.StatusBadRequest, "bad_request", fmt.Sprintf("%s must be a UUID", name))
		return uuid.Nil, false
	}
	return id, true
}

// requester returns the authenticated user. The auth middleware guarantees
// one on protected routes; the 401 covers a router wired without it.
func requester(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := auth.UserIDFrom(r.Context())
	if !ok {
		writeErrorBody(w, http.StatusUnauthorized, "missing_token", auth.ErrMissingToken.Error())
	}
	return id, ok
}
