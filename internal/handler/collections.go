package handler

import (
	"net/http"

	"github.com/pkordes/tripcrew/internal/trip"
)

// UpcomingActivities handles GET /trips/{id}/activities/upcoming.
func (s *Server) UpcomingActivities(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	acts, err := s.trips.UpcomingActivities(r.Context(), userID, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ActivityListResponse{Data: nonNil(acts)})
}

// AddActivity handles POST /trips/{id}/activities.
func (s *Server) AddActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req AddActivityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	a, err := s.trips.AddActivity(r.Context(), userID, id, trip.NewActivity{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		Cost:        req.Cost,
		Status:      req.Status,
		Notes:       req.Notes,
		Attachments: req.Attachments,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// AddExpense handles POST /trips/{id}/expenses.
func (s *Server) AddExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req AddExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	e, err := s.trips.AddExpense(r.Context(), userID, id, trip.NewExpense{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		PaidBy:      req.PaidBy,
		SharedWith:  req.SharedWith,
		Date:        req.Date,
		Receipt:     req.Receipt,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// AddChecklist handles POST /trips/{id}/checklists.
func (s *Server) AddChecklist(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req AddChecklistRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	in := trip.NewChecklist{Title: req.Title, Items: make([]trip.NewChecklistItem, len(req.Items))}
	for i, it := range req.Items {
		in.Items[i] = trip.NewChecklistItem{
			Text:       it.Text,
			AssignedTo: it.AssignedTo,
			DueDate:    dateTime(it.DueDate),
		}
	}

	c, err := s.trips.AddChecklist(r.Context(), userID, id, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// SetChecklistItem handles PUT /trips/{id}/checklists/{checklistId}/items/{itemId}.
func (s *Server) SetChecklistItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	checklistID, ok := pathUUID(w, r, "checklistId")
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemId")
	if !ok {
		return
	}
	var req SetChecklistItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := s.trips.SetChecklistItem(r.Context(), userID, id, checklistID, itemID, req.Completed)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// AddNote handles POST /trips/{id}/notes.
func (s *Server) AddNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := requester(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req AddNoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	n, err := s.trips.AddNote(r.Context(), userID, id, trip.NewNote{Title: req.Title, Content: req.Content})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}
