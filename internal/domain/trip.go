// Package domain contains the core data types for the TripCrew application.
// Types here carry data only; the rules that govern them live in package trip.
// This package is imported by every other internal package (trip, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus is the lifecycle state of a trip.
// Planning, ongoing and completed are derived from the trip dates on every save;
// cancelled is set explicitly and is never overwritten.
type TripStatus string

const (
	TripPlanning  TripStatus = "planning"
	TripOngoing   TripStatus = "ongoing"
	TripCompleted TripStatus = "completed"
	TripCancelled TripStatus = "cancelled"
)

// Trip is the aggregate root. One Trip is one stored document and one unit of
// concurrency: every child collection below is owned by the trip and is read
// and written together with it.
type Trip struct {
	ID                  uuid.UUID    `json:"id"`
	Code                string       `json:"trip_code"`
	Title               string       `json:"title"`
	Description         string       `json:"description,omitempty"`
	DetailedDescription string       `json:"detailed_description,omitempty"`
	Location            string       `json:"location"`
	Coordinates         *Coordinates `json:"coordinates,omitempty"`
	StartDate           time.Time    `json:"start_date"`
	EndDate             time.Time    `json:"end_date"`
	CreatorID           uuid.UUID    `json:"creator"`
	MaxParticipants     int          `json:"max_participants"`
	Status              TripStatus   `json:"status"`
	IsPrivate           bool         `json:"is_private"`
	Tags                []string     `json:"tags"`
	CoverImage          string       `json:"cover_image,omitempty"`

	Participants      []Participant      `json:"participants"`
	Activities        []Activity         `json:"activities"`
	Checklists        []Checklist        `json:"checklists"`
	Expenses          []Expense          `json:"expenses"`
	PackingList       []PackingItem      `json:"packing_list"`
	Gallery           []GalleryImage     `json:"gallery"`
	EmergencyContacts []EmergencyContact `json:"emergency_contacts"`
	ImportantNotes    []ImportantNote    `json:"important_notes"`
	Documents         []TripDocument     `json:"documents"`

	// Version is the optimistic-concurrency token. The repo only accepts a
	// write whose Version matches the stored one, then increments it.
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Coordinates is an optional map position for the trip location.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ParticipantRole is a member's role within one trip.
type ParticipantRole string

const (
	RoleAdmin  ParticipantRole = "admin"
	RoleMember ParticipantRole = "member"
)

// ParticipantStatus is the invitation state of a participant.
type ParticipantStatus string

const (
	ParticipantPending  ParticipantStatus = "pending"
	ParticipantAccepted ParticipantStatus = "accepted"
	ParticipantDeclined ParticipantStatus = "declined"
)

// Participant is one user's membership record for one trip.
// UserID is a weak reference: the trip never owns or loads the user.
type Participant struct {
	UserID   uuid.UUID         `json:"user"`
	Role     ParticipantRole   `json:"role"`
	Status   ParticipantStatus `json:"status"`
	JoinedAt time.Time         `json:"joined_at"`
}

// PackingCategory groups packing items in the member view.
type PackingCategory string

const (
	PackingEssentials  PackingCategory = "Essentials"
	PackingClothing    PackingCategory = "Clothing"
	PackingElectronics PackingCategory = "Electronics"
	PackingDocuments   PackingCategory = "Documents"
	PackingOther       PackingCategory = "Other"
)

// PackingItem is one shared entry on the trip packing list.
// MemberStatus holds at most one entry per user, created the first time that
// user records a status for the item.
type PackingItem struct {
	ID             uuid.UUID             `json:"id"`
	Name           string                `json:"name"`
	Quantity       int                   `json:"quantity"`
	Category       PackingCategory       `json:"category"`
	Notes          string                `json:"notes,omitempty"`
	AssignedTo     *uuid.UUID            `json:"assigned_to,omitempty"`
	IsShared       bool                  `json:"is_shared"`
	SharedQuantity int                   `json:"shared_quantity"`
	MemberStatus   []MemberPackingStatus `json:"member_packing_status"`
}

// MemberPackingStatus is one participant's own packed/quantity/notes record
// for a packing item. PackedAt is nil unless Packed is true.
type MemberPackingStatus struct {
	UserID   uuid.UUID  `json:"user"`
	Packed   bool       `json:"packed"`
	Quantity int        `json:"quantity"`
	PackedAt *time.Time `json:"packed_at"`
	Notes    string     `json:"notes,omitempty"`
}

// ActivityStatus tracks whether an itinerary activity is going ahead.
type ActivityStatus string

const (
	ActivityPlanned   ActivityStatus = "planned"
	ActivityConfirmed ActivityStatus = "confirmed"
	ActivityCompleted ActivityStatus = "completed"
	ActivityCancelled ActivityStatus = "cancelled"
)

// Activity is a scheduled itinerary entry.
type Activity struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Date        time.Time      `json:"date"`
	StartTime   string         `json:"start_time,omitempty"`
	EndTime     string         `json:"end_time,omitempty"`
	Location    string         `json:"location"`
	Cost        float64        `json:"cost"`
	Status      ActivityStatus `json:"status"`
	Notes       string         `json:"notes,omitempty"`
	Attachments []string       `json:"attachments,omitempty"`
}

// Checklist is a titled list of to-do items.
type Checklist struct {
	ID    uuid.UUID       `json:"id"`
	Title string          `json:"title"`
	Items []ChecklistItem `json:"items"`
}

// ChecklistItem is a single to-do entry, optionally assigned and dated.
type ChecklistItem struct {
	ID         uuid.UUID  `json:"id"`
	Text       string     `json:"text"`
	Completed  bool       `json:"completed"`
	AssignedTo *uuid.UUID `json:"assigned_to,omitempty"`
	DueDate    *time.Time `json:"due_date,omitempty"`
}

// ExpenseCategory classifies an expense.
type ExpenseCategory string

const (
	ExpenseTransportation ExpenseCategory = "Transportation"
	ExpenseAccommodation  ExpenseCategory = "Accommodation"
	ExpenseFood           ExpenseCategory = "Food"
	ExpenseActivities     ExpenseCategory = "Activities"
	ExpenseShopping       ExpenseCategory = "Shopping"
	ExpenseOther          ExpenseCategory = "Other"
)

// Expense is a single ledger entry. Sharing is recorded as data only;
// no balances are derived from it.
type Expense struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Category    ExpenseCategory `json:"category"`
	PaidBy      uuid.UUID       `json:"paid_by"`
	SharedWith  []ExpenseShare  `json:"shared_with,omitempty"`
	Date        time.Time       `json:"date"`
	Receipt     string          `json:"receipt,omitempty"`
}

// ExpenseShare records the portion of an expense attributed to one user.
type ExpenseShare struct {
	UserID uuid.UUID `json:"user"`
	Amount float64   `json:"amount"`
}

// GalleryImage is an uploaded photo reference.
type GalleryImage struct {
	URL        string    `json:"url"`
	Caption    string    `json:"caption,omitempty"`
	UploadedBy uuid.UUID `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// EmergencyContact is a person to call if something goes wrong.
type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship,omitempty"`
}

// ImportantNote is a free-form note pinned to the trip.
type ImportantNote struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy uuid.UUID `json:"created_by"`
}

// TripDocument is a reference to an uploaded file (tickets, bookings).
type TripDocument struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Type       string    `json:"type,omitempty"`
	UploadedBy uuid.UUID `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}
