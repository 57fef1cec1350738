package handler

import (
	"net/http"
	"strconv"

	"github.com/pkordes/tripcrew/internal/domain"
)

// CreateTrip handles POST /trips. The caller becomes the trip's first admin.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	var req CreateTripRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	created, err := s.trips.Create(r.Context(), userID, req.toDraft())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created, s.now()))
}

// ListTrips handles GET /trips.
// Supports ?scope=all|upcoming|past (default all), ?page= and ?limit=
// (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	scope := domain.TripScope(q.Get("scope"))
	if scope == "" {
		scope = domain.ScopeAll
	}
	page, ok := queryInt(w, q.Get("page"), "page")
	if !ok {
		return
	}
	limit, ok := queryInt(w, q.Get("limit"), "limit")
	if !ok {
		return
	}
	params := domain.NewPaginationParams(page, limit)

	trips, total, err := s.trips.List(r.Context(), userID, scope, params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	now := s.now()
	data := make([]TripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t, now)
	}
	writeJSON(w, http.StatusOK, TripListResponse{
		Data:       data,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// MyTrips handles GET /me/trips: the caller's membership entries.
func (s *Server) MyTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	ms, err := s.trips.MyTrips(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MembershipListResponse{Data: nonNil(ms)})
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	t, err := s.trips.Get(r.Context(), userID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(t, s.now()))
}

// GetSummary handles GET /trips/{id}/summary.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	sum, err := s.trips.Summary(r.Context(), userID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// UpdateTrip handles PATCH /trips/{id}. Admin only.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateTripRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := s.trips.Update(r.Context(), userID, id, req.toPatch())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated, s.now()))
}

// CancelTrip handles POST /trips/{id}/cancel. Admin only.
func (s *Server) CancelTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	cancelled, err := s.trips.Cancel(r.Context(), userID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(cancelled, s.now()))
}

// queryInt parses an optional integer query parameter. An empty value
// yields nil; a malformed one writes a 400.
func queryInt(w http.ResponseWriter, raw, name string) (*int, bool) {
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeErrorBody(w, http.StatusBadRequest, "bad_request", name+" must be an integer")
		return nil, false
	}
	return &n, true
}
