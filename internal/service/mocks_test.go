package service_test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/pkordes/tripcrew/internal/domain"
	"github.com/pkordes/tripcrew/internal/repo"
	"github.com/pkordes/tripcrew/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	create      func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	save        func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID     func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	getByCode   func(ctx context.Context, code string) (domain.Trip, error)
	listForUser func(ctx context.Context, f domain.TripListFilter, p domain.PaginationParams) ([]domain.Trip, int, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) Save(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.save(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) GetByCode(ctx context.Context, code string) (domain.Trip, error) {
	return m.getByCode(ctx, code)
}
func (m *mockTripRepo) ListForUser(ctx context.Context, f domain.TripListFilter, p domain.PaginationParams) ([]domain.Trip, int, error) {
	return m.listForUser(ctx, f, p)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// mockMembershipRepo is a hand-written test double for repo.MembershipRepo.
type mockMembershipRepo struct {
	upsert     func(ctx context.Context, m domain.Membership) error
	delete     func(ctx context.Context, userID, tripID uuid.UUID) error
	listByUser func(ctx context.Context, userID uuid.UUID) ([]domain.Membership, error)
}

func (m *mockMembershipRepo) Upsert(ctx context.Context, ms domain.Membership) error {
	return m.upsert(ctx, ms)
}
func (m *mockMembershipRepo) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	return m.delete(ctx, userID, tripID)
}
func (m *mockMembershipRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Membership, error) {
	return m.listByUser(ctx, userID)
}

var _ repo.MembershipRepo = (*mockMembershipRepo)(nil)

// fakeCodeIndex is an in-memory service.CodeIndex that counts lookups.
type fakeCodeIndex struct {
	mu      sync.Mutex
	entries map[string]uuid.UUID
	lookups int
	err     error
}

func newFakeCodeIndex() *fakeCodeIndex {
	return &fakeCodeIndex{entries: map[string]uuid.UUID{}}
}

func (f *fakeCodeIndex) Lookup(_ context.Context, code string) (uuid.UUID, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.err != nil {
		return uuid.Nil, false, f.err
	}
	id, ok := f.entries[code]
	return id, ok, nil
}

func (f *fakeCodeIndex) Remember(_ context.Context, code string, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[code] = id
	return nil
}

func (f *fakeCodeIndex) Forget(_ context.Context, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, code)
	return nil
}

var _ service.CodeIndex = (*fakeCodeIndex)(nil)

// countingTripRepo wraps a TripRepo and counts the calls the service makes.
// beforeSave, when set, runs once ahead of the first Save.
type countingTripRepo struct {
	repo.TripRepo
	mu         sync.Mutex
	saves      int
	codeReads  int
	beforeSave func()
	fired      atomic.Bool
}

func (r *countingTripRepo) Save(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	// beforeSave may call Save itself, so it must not run under a lock.
	if r.beforeSave != nil && r.fired.CompareAndSwap(false, true) {
		r.beforeSave()
	}
	r.mu.Lock()
	r.saves++
	r.mu.Unlock()
	return r.TripRepo.Save(ctx, t)
}

func (r *countingTripRepo) GetByCode(ctx context.Context, code string) (domain.Trip, error) {
	r.mu.Lock()
	r.codeReads++
	r.mu.Unlock()
	return r.TripRepo.GetByCode(ctx, code)
}
