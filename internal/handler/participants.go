package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/tripcrew/internal/domain"
)

// JoinByCode handles POST /trips/join/{code}. The caller becomes a pending
// participant of the trip the code belongs to.
func (s *Server) JoinByCode(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}

	t, err := s.trips.JoinByCode(r.Context(), userID, chi.URLParam(r, "code"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(t, s.now()))
}

// JoinTrip handles POST /trips/{id}/join with body {"code": "..."}.
func (s *Server) JoinTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req JoinRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	t, err := s.trips.Join(r.Context(), userID, id, req.Code)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(t, s.now()))
}

// AcceptParticipant handles POST /trips/{id}/participants/{userId}/accept. Admin only.
func (s *Server) AcceptParticipant(w http.ResponseWriter, r *http.Request) {
	s.changeParticipant(w, r, s.trips.Accept)
}

// DeclineParticipant handles POST /trips/{id}/participants/{userId}/decline. Admin only.
func (s *Server) DeclineParticipant(w http.ResponseWriter, r *http.Request) {
	s.changeParticipant(w, r, s.trips.Decline)
}

// RemoveParticipant handles DELETE /trips/{id}/participants/{userId}.
// Admin only; returns 204.
func (s *Server) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	target, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}

	if err := s.trips.Remove(r.Context(), userID, id, target); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type participantChange func(ctx context.Context, requester, id, target uuid.UUID) (domain.Participant, error)

func (s *Server) changeParticipant(w http.ResponseWriter, r *http.Request, change participantChange) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	target, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}

	p, err := change(r.Context(), userID, id, target)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
