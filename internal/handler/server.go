// Package handler implements the HTTP handlers for the TripCrew API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, participants.go, packing.go, ...) but share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/tripcrew/internal/domain"
	"github.com/pkordes/tripcrew/internal/trip"
)

// TripServicer defines the business operations the handlers depend on.
// *service.TripService satisfies it; handler tests inject a mock.
type TripServicer interface {
	Create(ctx context.Context, requester uuid.UUID, d trip.Draft) (domain.Trip, error)
	Get(ctx context.Context, requester, id uuid.UUID) (domain.Trip, error)
	Summary(ctx context.Context, requester, id uuid.UUID) (trip.Summary, error)
	List(ctx context.Context, requester uuid.UUID, scope domain.TripScope, page domain.PaginationParams) ([]domain.Trip, int, error)
	MyTrips(ctx context.Context, requester uuid.UUID) ([]domain.Membership, error)
	Update(ctx context.Context, requester, id uuid.UUID, p trip.Patch) (domain.Trip, error)
	Cancel(ctx context.Context, requester, id uuid.UUID) (domain.Trip, error)

	Join(ctx context.Context, requester, id uuid.UUID, code string) (domain.Trip, error)
	JoinByCode(ctx context.Context, requester uuid.UUID, code string) (domain.Trip, error)
	Accept(ctx context.Context, requester, id, target uuid.UUID) (domain.Participant, error)
	Decline(ctx context.Context, requester, id, target uuid.UUID) (domain.Participant, error)
	Remove(ctx context.Context, requester, id, target uuid.UUID) error

	AddPackingItem(ctx context.Context, requester, id uuid.UUID, in trip.NewPackingItem) (trip.MemberView, error)
	SetPackingStatus(ctx context.Context, requester, id, itemID uuid.UUID, u trip.StatusUpdate) (trip.MemberView, error)
	PackingView(ctx context.Context, requester, id uuid.UUID) (trip.MemberView, error)

	UpcomingActivities(ctx context.Context, requester, id uuid.UUID) ([]domain.Activity, error)
	AddActivity(ctx context.Context, requester, id uuid.UUID, in trip.NewActivity) (domain.Activity, error)
	AddExpense(ctx context.Context, requester, id uuid.UUID, in trip.NewExpense) (domain.Expense, error)
	AddChecklist(ctx context.Context, requester, id uuid.UUID, in trip.NewChecklist) (domain.Checklist, error)
	SetChecklistItem(ctx context.Context, requester, id, checklistID, itemID uuid.UUID, completed bool) (domain.ChecklistItem, error)
	AddNote(ctx context.Context, requester, id uuid.UUID, in trip.NewNote) (domain.ImportantNote, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	trips TripServicer
	log   *slog.Logger
	now   func() time.Time
}

// NewServer constructs the Server. A nil logger discards handler logs.
func NewServer(trips TripServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Server{trips: trips, log: log, now: time.Now}
}

// WithClock replaces the clock used for derived response fields.
func (s *Server) WithClock(now func() time.Time) *Server {
	s.now = now
	return s
}

// Register mounts every route on r. Health and the OpenAPI document are
// public; everything else runs behind requireAuth.
func (s *Server) Register(r chi.Router, requireAuth func(http.Handler) http.Handler) {
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/me/trips", s.MyTrips)

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)
			r.Post("/join/{code}", s.JoinByCode)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Patch("/", s.UpdateTrip)
				r.Post("/cancel", s.CancelTrip)
				r.Get("/summary", s.GetSummary)

				r.Post("/join", s.JoinTrip)
				r.Post("/participants/{userId}/accept", s.AcceptParticipant)
				r.Post("/participants/{userId}/decline", s.DeclineParticipant)
				r.Delete("/participants/{userId}", s.RemoveParticipant)

				r.Get("/packing-status", s.GetPackingStatus)
				r.Put("/packing-status/{itemId}", s.SetPackingStatus)
				r.Post("/packing-items", s.AddPackingItem)

				r.Get("/activities/upcoming", s.UpcomingActivities)
				r.Post("/activities", s.AddActivity)
				r.Post("/expenses", s.AddExpense)
				r.Post("/checklists", s.AddChecklist)
				r.Put("/checklists/{checklistId}/items/{itemId}", s.SetChecklistItem)
				r.Post("/notes", s.AddNote)
			})
		})
	})
}
