package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripcrew/internal/domain"
)

// memoryTripRepo keeps trip documents in a map. Documents are stored and
// returned as deep copies, so callers can never mutate stored state except
// through Save.
type memoryTripRepo struct {
	mu     sync.RWMutex
	trips  map[uuid.UUID][]byte
	byCode map[string]uuid.UUID
	meta   map[uuid.UUID]docMeta
	now    func() time.Time
}

type docMeta struct {
	version int64
	created time.Time
	updated time.Time
}

// NewMemoryTripRepo returns a TripRepo held entirely in process memory.
// It enforces the same code uniqueness and version checks as the Postgres
// implementation and is used for STORAGE_DRIVER=memory and service tests.
func NewMemoryTripRepo() TripRepo {
	return &memoryTripRepo{
		trips:  make(map[uuid.UUID][]byte),
		byCode: make(map[string]uuid.UUID),
		meta:   make(map[uuid.UUID]docMeta),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *memoryTripRepo) Create(_ context.Context, trip domain.Trip) (domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	if _, taken := r.byCode[trip.Code]; taken {
		return domain.Trip{}, fmt.Errorf("repo.MemoryTripRepo.Create: %w", domain.ErrCodeTaken)
	}
	if _, exists := r.trips[trip.ID]; exists {
		return domain.Trip{}, fmt.Errorf("repo.MemoryTripRepo.Create: %w: duplicate id", domain.ErrConflict)
	}
	created := trip.CreatedAt
	if created.IsZero() {
		created = r.now()
	}
	m := docMeta{version: 1, created: created, updated: created}
	if err := r.put(trip, m); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.MemoryTripRepo.Create: %w", err)
	}
	r.byCode[trip.Code] = trip.ID
	return r.get(trip.ID)
}

func (r *memoryTripRepo) Save(_ context.Context, trip domain.Trip) (domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.meta[trip.ID]
	if !ok {
		return domain.Trip{}, fmt.Errorf("repo.MemoryTripRepo.Save: %w", domain.ErrNotFound)
	}
	if m.version != trip.Version {
		return domain.Trip{}, fmt.Errorf("repo.MemoryTripRepo.Save: %w", domain.ErrVersionConflict)
	}
	m.version++
	m.updated = trip.UpdatedAt
	if m.updated.IsZero() {
		m.updated = r.now()
	}
	if err := r.put(trip, m); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.MemoryTripRepo.Save: %w", err)
	}
	return r.get(trip.ID)
}

func (r *memoryTripRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, err := r.get(id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.MemoryTripRepo.GetByID: %w", err)
	}
	return t, nil
}

func (r *memoryTripRepo) GetByCode(_ context.Context, code string) (domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byCode[code]
	if !ok {
		return domain.Trip{}, fmt.Errorf("repo.MemoryTripRepo.GetByCode: %w", domain.ErrNotFound)
	}
	t, err := r.get(id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.MemoryTripRepo.GetByCode: %w", err)
	}
	return t, nil
}

func (r *memoryTripRepo) ListForUser(_ context.Context, f domain.TripListFilter, p domain.PaginationParams) ([]domain.Trip, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.Trip
	for id := range r.trips {
		t, err := r.get(id)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.MemoryTripRepo.ListForUser: %w", err)
		}
		ok, err := inScope(t, f)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.MemoryTripRepo.ListForUser: %w", err)
		}
		if ok {
			matched = append(matched, t)
		}
	}

	slices.SortFunc(matched, func(a, b domain.Trip) int {
		c := a.StartDate.Compare(b.StartDate)
		if f.Scope == domain.ScopePast {
			c = -c
		}
		if c == 0 {
			c = slices.Compare(a.ID[:], b.ID[:])
		}
		return c
	})

	total := len(matched)
	start := max(0, min(p.Offset(), total))
	end := min(start+p.Limit, total)
	return append([]domain.Trip{}, matched[start:end]...), total, nil
}

// inScope mirrors the WHERE clause of the Postgres ListForUser query.
func inScope(t domain.Trip, f domain.TripListFilter) (bool, error) {
	i := slices.IndexFunc(t.Participants, func(p domain.Participant) bool { return p.UserID == f.UserID })
	if i < 0 {
		return false, nil
	}
	accepted := t.Participants[i].Status == domain.ParticipantAccepted
	switch f.Scope {
	case domain.ScopeAll, "":
		return true, nil
	case domain.ScopeUpcoming:
		return accepted && t.StartDate.After(f.Now), nil
	case domain.ScopePast:
		return accepted && !t.StartDate.After(f.Now), nil
	}
	return false, fmt.Errorf("%w: unknown scope %q", domain.ErrValidation, f.Scope)
}

// put stores an encoded copy of trip. Callers hold the write lock.
func (r *memoryTripRepo) put(trip domain.Trip, m docMeta) error {
	doc, err := json.Marshal(trip)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	r.trips[trip.ID] = doc
	r.meta[trip.ID] = m
	return nil
}

// get decodes a fresh copy of the stored trip. Callers hold a lock.
func (r *memoryTripRepo) get(id uuid.UUID) (domain.Trip, error) {
	doc, ok := r.trips[id]
	if !ok {
		return domain.Trip{}, domain.ErrNotFound
	}
	var t domain.Trip
	if err := json.Unmarshal(doc, &t); err != nil {
		return domain.Trip{}, fmt.Errorf("decode: %w", err)
	}
	m := r.meta[id]
	t.Version = m.version
	t.CreatedAt = m.created
	t.UpdatedAt = m.updated
	return t, nil
}

// memoryMembershipRepo is the in-process MembershipRepo.
type memoryMembershipRepo struct {
	mu   sync.RWMutex
	rows map[membershipKey]domain.Membership
}

type membershipKey struct {
	user, trip uuid.UUID
}

// NewMemoryMembershipRepo returns a MembershipRepo held in process memory.
func NewMemoryMembershipRepo() MembershipRepo {
	return &memoryMembershipRepo{rows: make(map[membershipKey]domain.Membership)}
}

func (r *memoryMembershipRepo) Upsert(_ context.Context, m domain.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[membershipKey{m.UserID, m.TripID}] = m
	return nil
}

func (r *memoryMembershipRepo) Delete(_ context.Context, userID, tripID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, membershipKey{userID, tripID})
	return nil
}

func (r *memoryMembershipRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Membership{}
	for k, m := range r.rows {
		if k.user == userID {
			out = append(out, m)
		}
	}
	slices.SortFunc(out, func(a, b domain.Membership) int {
		if c := b.JoinedAt.Compare(a.JoinedAt); c != 0 {
			return c
		}
		return slices.Compare(a.TripID[:], b.TripID[:])
	})
	return out, nil
}
