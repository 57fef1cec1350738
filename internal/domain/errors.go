package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrNotAuthorized is returned when the caller's role or membership does not
// permit the operation. Handlers should map this to HTTP 403.
var ErrNotAuthorized = errors.New("not authorized")

// ErrConflict is returned when the operation clashes with current state.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// Specific conflict kinds. Each wraps ErrConflict so callers can match either
// the category or the exact kind with errors.Is.
var (
	ErrInvalidCode        = fmt.Errorf("%w: invalid trip code", ErrConflict)
	ErrTripFull           = fmt.Errorf("%w: trip is full", ErrConflict)
	ErrAlreadyParticipant = fmt.Errorf("%w: user is already a participant", ErrConflict)
	ErrLastAdmin          = fmt.Errorf("%w: cannot remove the only admin", ErrConflict)
	ErrVersionConflict    = fmt.Errorf("%w: trip was modified concurrently", ErrConflict)
	ErrCodeTaken          = fmt.Errorf("%w: trip code already in use", ErrConflict)
)

// Specific not-found kinds for entities nested inside a trip.
var (
	ErrParticipantNotFound = fmt.Errorf("participant %w", ErrNotFound)
	ErrItemNotFound        = fmt.Errorf("packing item %w", ErrNotFound)
	ErrChecklistNotFound   = fmt.Errorf("checklist item %w", ErrNotFound)
)
