package handler

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tripcrew/internal/domain"
	"github.com/pkordes/tripcrew/internal/trip"
)

// Trip dates travel as calendar dates ("2026-07-01"); instants inside child
// collections (activity dates, packed_at, joined_at) travel as RFC 3339.

// CreateTripRequest is the body of POST /trips.
type CreateTripRequest struct {
	Title               string              `json:"title"`
	Description         string              `json:"description"`
	DetailedDescription string              `json:"detailed_description"`
	Location            string              `json:"location"`
	Coordinates         *domain.Coordinates `json:"coordinates"`
	StartDate           openapi_types.Date  `json:"start_date"`
	EndDate             openapi_types.Date  `json:"end_date"`
	MaxParticipants     *int                `json:"max_participants"`
	IsPrivate           bool                `json:"is_private"`
	Tags                []string            `json:"tags"`
	CoverImage          string              `json:"cover_image"`
}

func (req CreateTripRequest) toDraft() trip.Draft {
	return trip.Draft{
		Title:               req.Title,
		Description:         req.Description,
		DetailedDescription: req.DetailedDescription,
		Location:            req.Location,
		Coordinates:         req.Coordinates,
		StartDate:           req.StartDate.Time,
		EndDate:             req.EndDate.Time,
		MaxParticipants:     req.MaxParticipants,
		IsPrivate:           req.IsPrivate,
		Tags:                req.Tags,
		CoverImage:          req.CoverImage,
	}
}

// UpdateTripRequest is the body of PATCH /trips/{id}. Absent fields are left unchanged.
type UpdateTripRequest struct {
	Title               *string                    `json:"title"`
	Description         *string                    `json:"description"`
	DetailedDescription *string                    `json:"detailed_description"`
	Location            *string                    `json:"location"`
	Coordinates         *domain.Coordinates        `json:"coordinates"`
	StartDate           *openapi_types.Date        `json:"start_date"`
	EndDate             *openapi_types.Date        `json:"end_date"`
	MaxParticipants     *int                       `json:"max_participants"`
	IsPrivate           *bool                      `json:"is_private"`
	Tags                *[]string                  `json:"tags"`
	CoverImage          *string                    `json:"cover_image"`
	EmergencyContacts   *[]domain.EmergencyContact `json:"emergency_contacts"`
}

func (req UpdateTripRequest) toPatch() trip.Patch {
	return trip.Patch{
		Title:               req.Title,
		Description:         req.Description,
		DetailedDescription: req.DetailedDescription,
		Location:            req.Location,
		Coordinates:         req.Coordinates,
		StartDate:           dateTime(req.StartDate),
		EndDate:             dateTime(req.EndDate),
		MaxParticipants:     req.MaxParticipants,
		IsPrivate:           req.IsPrivate,
		Tags:                req.Tags,
		CoverImage:          req.CoverImage,
		EmergencyContacts:   req.EmergencyContacts,
	}
}

// TripResponse is a trip as returned by the API, with its derived summary.
type TripResponse struct {
	ID                  openapi_types.UUID        `json:"id"`
	Code                string                    `json:"trip_code"`
	Title               string                    `json:"title"`
	Description         string                    `json:"description,omitempty"`
	DetailedDescription string                    `json:"detailed_description,omitempty"`
	Location            string                    `json:"location"`
	Coordinates         *domain.Coordinates       `json:"coordinates,omitempty"`
	StartDate           openapi_types.Date        `json:"start_date"`
	EndDate             openapi_types.Date        `json:"end_date"`
	CreatorID           openapi_types.UUID        `json:"creator"`
	MaxParticipants     int                       `json:"max_participants"`
	IsPrivate           bool                      `json:"is_private"`
	Tags                []string                  `json:"tags"`
	CoverImage          string                    `json:"cover_image,omitempty"`
	Participants        []domain.Participant      `json:"participants"`
	Activities          []domain.Activity         `json:"activities"`
	Checklists          []domain.Checklist        `json:"checklists"`
	Expenses            []domain.Expense          `json:"expenses"`
	PackingList         []domain.PackingItem      `json:"packing_list"`
	Gallery             []domain.GalleryImage     `json:"gallery"`
	EmergencyContacts   []domain.EmergencyContact `json:"emergency_contacts"`
	ImportantNotes      []domain.ImportantNote    `json:"important_notes"`
	Documents           []domain.TripDocument     `json:"documents"`
	Summary             trip.Summary              `json:"summary"`
	Version             int64                     `json:"version"`
	CreatedAt           time.Time                 `json:"created_at"`
	UpdatedAt           time.Time                 `json:"updated_at"`
}

// tripToResponse converts a domain.Trip into its response shape, computing
// the summary at now.
func tripToResponse(t domain.Trip, now time.Time) TripResponse {
	return TripResponse{
		ID:                  t.ID,
		Code:                t.Code,
		Title:               t.Title,
		Description:         t.Description,
		DetailedDescription: t.DetailedDescription,
		Location:            t.Location,
		Coordinates:         t.Coordinates,
		StartDate:           openapi_types.Date{Time: t.StartDate},
		EndDate:             openapi_types.Date{Time: t.EndDate},
		CreatorID:           t.CreatorID,
		MaxParticipants:     t.MaxParticipants,
		IsPrivate:           t.IsPrivate,
		Tags:                nonNil(t.Tags),
		CoverImage:          t.CoverImage,
		Participants:        nonNil(t.Participants),
		Activities:          nonNil(t.Activities),
		Checklists:          nonNil(t.Checklists),
		Expenses:            nonNil(t.Expenses),
		PackingList:         nonNil(t.PackingList),
		Gallery:             nonNil(t.Gallery),
		EmergencyContacts:   nonNil(t.EmergencyContacts),
		ImportantNotes:      nonNil(t.ImportantNotes),
		Documents:           nonNil(t.Documents),
		Summary:             trip.Summarize(t, now),
		Version:             t.Version,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

// TripListResponse is the body of GET /trips.
type TripListResponse struct {
	Data       []TripResponse `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// Pagination describes the page returned and the total number of matches.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// MembershipListResponse is the body of GET /me/trips.
type MembershipListResponse struct {
	Data []domain.Membership `json:"data"`
}

// JoinRequest is the body of POST /trips/{id}/join.
type JoinRequest struct {
	Code string `json:"code"`
}

// AddPackingItemRequest is the body of POST /trips/{id}/packing-items.
type AddPackingItemRequest struct {
	Name           string                 `json:"name"`
	Quantity       int                    `json:"quantity"`
	Category       domain.PackingCategory `json:"category"`
	Notes          string                 `json:"notes"`
	AssignedTo     *openapi_types.UUID    `json:"assigned_to"`
	IsShared       bool                   `json:"is_shared"`
	SharedQuantity int                    `json:"shared_quantity"`
}

// SetPackingStatusRequest is the body of PUT /trips/{id}/packing-status/{itemId}.
type SetPackingStatusRequest struct {
	Packed   bool    `json:"packed"`
	Quantity *int    `json:"quantity"`
	Notes    *string `json:"notes"`
}

// AddActivityRequest is the body of POST /trips/{id}/activities.
type AddActivityRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Date        time.Time             `json:"date"`
	StartTime   string                `json:"start_time"`
	EndTime     string                `json:"end_time"`
	Location    string                `json:"location"`
	Cost        float64               `json:"cost"`
	Status      domain.ActivityStatus `json:"status"`
	Notes       string                `json:"notes"`
	Attachments []string              `json:"attachments"`
}

// ActivityListResponse is the body of GET /trips/{id}/activities/upcoming.
type ActivityListResponse struct {
	Data []domain.Activity `json:"data"`
}

// AddExpenseRequest is the body of POST /trips/{id}/expenses.
type AddExpenseRequest struct {
	Description string                 `json:"description"`
	Amount      float64                `json:"amount"`
	Category    domain.ExpenseCategory `json:"category"`
	PaidBy      *openapi_types.UUID    `json:"paid_by"`
	SharedWith  []domain.ExpenseShare  `json:"shared_with"`
	Date        *time.Time             `json:"date"`
	Receipt     string                 `json:"receipt"`
}

// AddChecklistRequest is the body of POST /trips/{id}/checklists.
type AddChecklistRequest struct {
	Title string                    `json:"title"`
	Items []AddChecklistItemRequest `json:"items"`
}

// AddChecklistItemRequest is one item of an AddChecklistRequest.
type AddChecklistItemRequest struct {
	Text       string              `json:"text"`
	AssignedTo *openapi_types.UUID `json:"assigned_to"`
	DueDate    *openapi_types.Date `json:"due_date"`
}

// SetChecklistItemRequest is the body of PUT /trips/{id}/checklists/{checklistId}/items/{itemId}.
type SetChecklistItemRequest struct {
	Completed bool `json:"completed"`
}

// AddNoteRequest is the body of POST /trips/{id}/notes.
type AddNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func dateTime(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// nonNil keeps empty collections rendering as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
