package handler

import (
	"net/http"

	"github.com/pkordes/tripcrew/internal/trip"
)

// Every packing endpoint answers with the caller's member view so the client
// can re-render its checklist from a single response.

// GetPackingStatus handles GET /trips/{id}/packing-status.
func (s *Server) GetPackingStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	view, err := s.trips.PackingView(r.Context(), userID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memberView(view))
}

// SetPackingStatus handles PUT /trips/{id}/packing-status/{itemId}.
func (s *Server) SetPackingStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemId")
	if !ok {
		return
	}
	var req SetPackingStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := s.trips.SetPackingStatus(r.Context(), userID, id, itemID, trip.StatusUpdate{
		Packed:   req.Packed,
		Quantity: req.Quantity,
		Notes:    req.Notes,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memberView(view))
}

// AddPackingItem handles POST /trips/{id}/packing-items.
func (s *Server) AddPackingItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req AddPackingItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := s.trips.AddPackingItem(r.Context(), userID, id, trip.NewPackingItem{
		Name:           req.Name,
		Quantity:       req.Quantity,
		Category:       req.Category,
		Notes:          req.Notes,
		AssignedTo:     req.AssignedTo,
		IsShared:       req.IsShared,
		SharedQuantity: req.SharedQuantity,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, memberView(view))
}

func memberView(v trip.MemberView) trip.MemberView {
	v.Items = nonNil(v.Items)
	return v
}
