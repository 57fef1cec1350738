package domain

import (
	"time"

	"github.com/google/uuid"
)

// Membership is the user-side mirror of a Participant: the entry a user's
// trip list holds for one trip. It is written after the trip itself and may
// briefly disagree with the trip's participant list.
type Membership struct {
	UserID   uuid.UUID         `json:"user_id"`
	TripID   uuid.UUID         `json:"trip_id"`
	Role     ParticipantRole   `json:"role"`
	Status   ParticipantStatus `json:"status"`
	JoinedAt time.Time         `json:"joined_at"`
}

// TripScope selects which of a user's trips a listing returns.
type TripScope string

const (
	// ScopeAll returns every trip the user participates in, in any status.
	ScopeAll TripScope = "all"
	// ScopeUpcoming returns accepted trips that start after Now.
	ScopeUpcoming TripScope = "upcoming"
	// ScopePast returns accepted trips that started at or before Now.
	ScopePast TripScope = "past"
)

// TripListFilter narrows a trip listing to one user's trips.
type TripListFilter struct {
	UserID uuid.UUID
	Scope  TripScope
	Now    time.Time
}
