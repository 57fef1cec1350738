package handler_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/tripcrew/internal/domain"
	"github.com/pkordes/tripcrew/internal/handler"
	"github.com/pkordes/tripcrew/internal/trip"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs; an unset field panics when called.
type mockTripServicer struct {
	create             func(ctx context.Context, requester uuid.UUID, d trip.Draft) (domain.Trip, error)
	get                func(ctx context.Context, requester, id uuid.UUID) (domain.Trip, error)
	summary            func(ctx context.Context, requester, id uuid.UUID) (trip.Summary, error)
	list               func(ctx context.Context, requester uuid.UUID, scope domain.TripScope, page domain.PaginationParams) ([]domain.Trip, int, error)
	myTrips            func(ctx context.Context, requester uuid.UUID) ([]domain.Membership, error)
	update             func(ctx context.Context, requester, id uuid.UUID, p trip.Patch) (domain.Trip, error)
	cancel             func(ctx context.Context, requester, id uuid.UUID) (domain.Trip, error)
	join               func(ctx context.Context, requester, id uuid.UUID, code string) (domain.Trip, error)
	joinByCode         func(ctx context.Context, requester uuid.UUID, code string) (domain.Trip, error)
	accept             func(ctx context.Context, requester, id, target uuid.UUID) (domain.Participant, error)
	decline            func(ctx context.Context, requester, id, target uuid.UUID) (domain.Participant, error)
	remove             func(ctx context.Context, requester, id, target uuid.UUID) error
	addPackingItem     func(ctx context.Context, requester, id uuid.UUID, in trip.NewPackingItem) (trip.MemberView, error)
	setPackingStatus   func(ctx context.Context, requester, id, itemID uuid.UUID, u trip.StatusUpdate) (trip.MemberView, error)
	packingView        func(ctx context.Context, requester, id uuid.UUID) (trip.MemberView, error)
	upcomingActivities func(ctx context.Context, requester, id uuid.UUID) ([]domain.Activity, error)
	addActivity        func(ctx context.Context, requester, id uuid.UUID, in trip.NewActivity) (domain.Activity, error)
	addExpense         func(ctx context.Context, requester, id uuid.UUID, in trip.NewExpense) (domain.Expense, error)
	addChecklist       func(ctx context.Context, requester, id uuid.UUID, in trip.NewChecklist) (domain.Checklist, error)
	setChecklistItem   func(ctx context.Context, requester, id, checklistID, itemID uuid.UUID, completed bool) (domain.ChecklistItem, error)
	addNote            func(ctx context.Context, requester, id uuid.UUID, in trip.NewNote) (domain.ImportantNote, error)
}

func (m *mockTripServicer) Create(ctx context.Context, requester uuid.UUID, d trip.Draft) (domain.Trip, error) {
	return m.create(ctx, requester, d)
}
func (m *mockTripServicer) Get(ctx context.Context, requester, id uuid.UUID) (domain.Trip, error) {
	return m.get(ctx, requester, id)
}
func (m *mockTripServicer) Summary(ctx context.Context, requester, id uuid.UUID) (trip.Summary, error) {
	return m.summary(ctx, requester, id)
}
func (m *mockTripServicer) List(ctx context.Context, requester uuid.UUID, scope domain.TripScope, page domain.PaginationParams) ([]domain.Trip, int, error) {
	return m.list(ctx, requester, scope, page)
}
func (m *mockTripServicer) MyTrips(ctx context.Context, requester uuid.UUID) ([]domain.Membership, error) {
	return m.myTrips(ctx, requester)
}
func (m *mockTripServicer) Update(ctx context.Context, requester, id uuid.UUID, p trip.Patch) (domain.Trip, error) {
	return m.update(ctx, requester, id, p)
}
func (m *mockTripServicer) Cancel(ctx context.Context, requester, id uuid.UUID) (domain.Trip, error) {
	return m.cancel(ctx, requester, id)
}
func (m *mockTripServicer) Join(ctx context.Context, requester, id uuid.UUID, code string) (domain.Trip, error) {
	return m.join(ctx, requester, id, code)
}
func (m *mockTripServicer) JoinByCode(ctx context.Context, requester uuid.UUID, code string) (domain.Trip, error) {
	return m.joinByCode(ctx, requester, code)
}
func (m *mockTripServicer) Accept(ctx context.Context, requester, id, target uuid.UUID) (domain.Participant, error) {
	return m.accept(ctx, requester, id, target)
}
func (m *mockTripServicer) Decline(ctx context.Context, requester, id, target uuid.UUID) (domain.Participant, error) {
	return m.decline(ctx, requester, id, target)
}
func (m *mockTripServicer) Remove(ctx context.Context, requester, id, target uuid.UUID) error {
	return m.remove(ctx, requester, id, target)
}
func (m *mockTripServicer) AddPackingItem(ctx context.Context, requester, id uuid.UUID, in trip.NewPackingItem) (trip.MemberView, error) {
	return m.addPackingItem(ctx, requester, id, in)
}
func (m *mockTripServicer) SetPackingStatus(ctx context.Context, requester, id, itemID uuid.UUID, u trip.StatusUpdate) (trip.MemberView, error) {
	return m.setPackingStatus(ctx, requester, id, itemID, u)
}
func (m *mockTripServicer) PackingView(ctx context.Context, requester, id uuid.UUID) (trip.MemberView, error) {
	return m.packingView(ctx, requester, id)
}
func (m *mockTripServicer) UpcomingActivities(ctx context.Context, requester, id uuid.UUID) ([]domain.Activity, error) {
	return m.upcomingActivities(ctx, requester, id)
}
func (m *mockTripServicer) AddActivity(ctx context.Context, requester, id uuid.UUID, in trip.NewActivity) (domain.Activity, error) {
	return m.addActivity(ctx, requester, id, in)
}
func (m *mockTripServicer) AddExpense(ctx context.Context, requester, id uuid.UUID, in trip.NewExpense) (domain.Expense, error) {
	return m.addExpense(ctx, requester, id, in)
}
func (m *mockTripServicer) AddChecklist(ctx context.Context, requester, id uuid.UUID, in trip.NewChecklist) (domain.Checklist, error) {
	return m.addChecklist(ctx, requester, id, in)
}
func (m *mockTripServicer) SetChecklistItem(ctx context.Context, requester, id, checklistID, itemID uuid.UUID, completed bool) (domain.ChecklistItem, error) {
	return m.setChecklistItem(ctx, requester, id, checklistID, itemID, completed)
}
func (m *mockTripServicer) AddNote(ctx context.Context, requester, id uuid.UUID, in trip.NewNote) (domain.ImportantNote, error) {
	return m.addNote(ctx, requester, id, in)
}

// compile-time check: mockTripServicer must satisfy handler.TripServicer.
var _ handler.TripServicer = (*mockTripServicer)(nil)
