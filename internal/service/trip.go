// Package service orchestrates one request per operation: load the trip,
// apply a pure mutation from package trip, refresh its lifecycle status and
// save it under an optimistic version check, retrying on conflict. After a
// successful write the user-side membership mirror is updated best-effort.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripcrew/internal/domain"
	"github.com/pkordes/tripcrew/internal/metrics"
	"github.com/pkordes/tripcrew/internal/repo"
	"github.com/pkordes/tripcrew/internal/trip"
)

// DefaultMaxAttempts bounds the load-mutate-save loop when no option overrides it.
const DefaultMaxAttempts = 5

// codeAttempts bounds how often Create draws a fresh join code after a clash.
const codeAttempts = 5

// CodeIndex resolves join codes to trip ids ahead of the repo.
// *cache.CodeIndex satisfies it.
type CodeIndex interface {
	Lookup(ctx context.Context, code string) (uuid.UUID, bool, error)
	Remember(ctx context.Context, code string, id uuid.UUID) error
	Forget(ctx context.Context, code string) error
}

// TripService implements every trip operation exposed by the API.
type TripService struct {
	trips       repo.TripRepo
	members     repo.MembershipRepo
	codes       CodeIndex
	metrics     *metrics.Metrics
	log         *slog.Logger
	now         func() time.Time
	newCode     func() (string, error)
	maxAttempts int
}

// Option configures a TripService.
type Option func(*TripService)

// WithClock replaces time.Now. Tests use it to pin the lifecycle.
func WithClock(now func() time.Time) Option {
	return func(s *TripService) { s.now = now }
}

// WithLogger sets the logger used for retries and mirror failures.
func WithLogger(log *slog.Logger) Option {
	return func(s *TripService) { s.log = log }
}

// WithMetrics records write conflicts and cache outcomes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *TripService) { s.metrics = m }
}

// WithCodeIndex consults idx before the repo when joining by code.
func WithCodeIndex(idx CodeIndex) Option {
	return func(s *TripService) { s.codes = idx }
}

// WithMaxAttempts bounds the optimistic retry loop. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(s *TripService) {
		if n >= 1 {
			s.maxAttempts = n
		}
	}
}

// WithCodeGenerator replaces trip.NewCode.
func WithCodeGenerator(gen func() (string, error)) Option {
	return func(s *TripService) { s.newCode = gen }
}

// NewTripService constructs a TripService over the given repos.
func NewTripService(trips repo.TripRepo, members repo.MembershipRepo, opts ...Option) *TripService {
	s := &TripService{
		trips:       trips,
		members:     members,
		log:         slog.Default(),
		now:         func() time.Time { return time.Now().UTC() },
		newCode:     trip.NewCode,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// mutate runs fn against a freshly loaded trip and saves the result. When the
// save loses a version race the whole cycle, including fn, runs again on the
// newer document, so fn must derive everything from the trip it is given.
// An error from fn aborts without writing.
func (s *TripService) mutate(ctx context.Context, op string, id uuid.UUID, fn func(t *domain.Trip, now time.Time) error) (domain.Trip, error) {
	for attempt := 1; ; attempt++ {
		t, err := s.trips.GetByID(ctx, id)
		if err != nil {
			return domain.Trip{}, err
		}
		now := s.now()
		if err := fn(&t, now); err != nil {
			return domain.Trip{}, err
		}
		trip.RefreshStatus(&t, now)
		t.UpdatedAt = now

		saved, err := s.trips.Save(ctx, t)
		if err == nil {
			return saved, nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return domain.Trip{}, err
		}
		s.metrics.WriteConflict(op)
		if attempt >= s.maxAttempts {
			s.metrics.WriteExhausted(op)
			s.log.WarnContext(ctx, "trip write conflict: attempts exhausted",
				"operation", op, "trip_id", id, "attempts", attempt)
			return domain.Trip{}, err
		}
		s.log.DebugContext(ctx, "trip write conflict: retrying",
			"operation", op, "trip_id", id, "attempt", attempt)
		if err := ctx.Err(); err != nil {
			return domain.Trip{}, err
		}
	}
}

// load returns the trip with its status refreshed for now, after checking the
// requester is an accepted member.
func (s *TripService) load(ctx context.Context, requester, id uuid.UUID) (domain.Trip, time.Time, error) {
	t, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, time.Time{}, err
	}
	if err := trip.RequireMember(t, requester); err != nil {
		return domain.Trip{}, time.Time{}, err
	}
	now := s.now()
	trip.RefreshStatus(&t, now)
	return t, now, nil
}

// Create validates d and stores a new trip with requester as its admin.
// A join-code clash draws a new code, up to codeAttempts times.
func (s *TripService) Create(ctx context.Context, requester uuid.UUID, d trip.Draft) (domain.Trip, error) {
	now := s.now()
	if err := trip.ValidateDraft(d, now); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	var (
		created domain.Trip
		err     error
	)
	for range codeAttempts {
		var code string
		code, err = s.newCode()
		if err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
		}
		var t domain.Trip
		t, err = trip.New(d, requester, code, now)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
		}
		created, err = s.trips.Create(ctx, t)
		if !errors.Is(err, domain.ErrCodeTaken) {
			break
		}
		s.log.DebugContext(ctx, "trip code clash: drawing a new code")
	}
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	s.rememberCode(ctx, created)
	if p, ok := trip.FindParticipant(created, requester); ok {
		s.mirror(ctx, "create", created.ID, p)
	}
	return created, nil
}

// Get returns the trip if requester is an accepted member.
func (s *TripService) Get(ctx context.Context, requester, id uuid.UUID) (domain.Trip, error) {
	t, _, err := s.load(ctx, requester, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	return t, nil
}

// Summary returns the derived figures for the trip at the current instant.
func (s *TripService) Summary(ctx context.Context, requester, id uuid.UUID) (trip.Summary, error) {
	t, now, err := s.load(ctx, requester, id)
	if err != nil {
		return trip.Summary{}, fmt.Errorf("service.TripService.Summary: %w", err)
	}
	return trip.Summarize(t, now), nil
}

// List returns one page of requester's trips in the given scope and the
// total number of trips in that scope.
func (s *TripService) List(ctx context.Context, requester uuid.UUID, scope domain.TripScope, page domain.PaginationParams) ([]domain.Trip, int, error) {
	now := s.now()
	trips, total, err := s.trips.ListForUser(ctx, domain.TripListFilter{UserID: requester, Scope: scope, Now: now}, page)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	for i := range trips {
		trip.RefreshStatus(&trips[i], now)
	}
	return trips, total, nil
}

// MyTrips returns requester's membership mirror.
func (s *TripService) MyTrips(ctx context.Context, requester uuid.UUID) ([]domain.Membership, error) {
	ms, err := s.members.ListByUser(ctx, requester)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.MyTrips: %w", err)
	}
	return ms, nil
}

// Join adds requester to trip id as a pending member when code matches.
func (s *TripService) Join(ctx context.Context, requester, id uuid.UUID, code string) (domain.Trip, error) {
	t, err := s.join(ctx, requester, id, code)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Join: %w", err)
	}
	return t, nil
}

// JoinByCode resolves code to a trip and joins it. Malformed and unknown
// codes are both domain.ErrInvalidCode.
func (s *TripService) JoinByCode(ctx context.Context, requester uuid.UUID, code string) (domain.Trip, error) {
	code = trip.NormalizeCode(code)
	if !trip.IsValidCode(code) {
		return domain.Trip{}, fmt.Errorf("service.TripService.JoinByCode: %w", domain.ErrInvalidCode)
	}

	if id, ok := s.lookupCode(ctx, code); ok {
		t, err := s.join(ctx, requester, id, code)
		switch {
		case err == nil:
			return t, nil
		// A stale entry points at a missing trip or one with a different
		// code; drop it and fall through to the repo in both cases.
		case errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidCode):
			s.forgetCode(ctx, code)
		default:
			return domain.Trip{}, fmt.Errorf("service.TripService.JoinByCode: %w", err)
		}
	}

	found, err := s.trips.GetByCode(ctx, code)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Trip{}, fmt.Errorf("service.TripService.JoinByCode: %w", domain.ErrInvalidCode)
	}
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.JoinByCode: %w", err)
	}
	s.rememberCode(ctx, found)

	t, err := s.join(ctx, requester, found.ID, code)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.JoinByCode: %w", err)
	}
	return t, nil
}

func (s *TripService) join(ctx context.Context, requester, id uuid.UUID, code string) (domain.Trip, error) {
	var joined domain.Participant
	t, err := s.mutate(ctx, "join", id, func(t *domain.Trip, now time.Time) error {
		p, err := trip.Join(t, requester, code, now)
		joined = p
		return err
	})
	if err != nil {
		return domain.Trip{}, err
	}
	s.mirror(ctx, "join", t.ID, joined)
	return t, nil
}

// Accept moves target to accepted. Requester must be an admin.
func (s *TripService) Accept(ctx context.Context, requester, id, target uuid.UUID) (domain.Participant, error) {
	var out domain.Participant
	_, err := s.mutate(ctx, "accept", id, func(t *domain.Trip, now time.Time) error {
		p, err := trip.Accept(t, requester, target, now)
		out = p
		return err
	})
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.TripService.Accept: %w", err)
	}
	s.mirror(ctx, "accept", id, out)
	return out, nil
}

// Decline marks target as declined. Requester must be an admin.
func (s *TripService) Decline(ctx context.Context, requester, id, target uuid.UUID) (domain.Participant, error) {
	var out domain.Participant
	_, err := s.mutate(ctx, "decline", id, func(t *domain.Trip, now time.Time) error {
		p, err := trip.Decline(t, requester, target, now)
		out = p
		return err
	})
	if err != nil {
		return domain.Participant{}, fmt.Errorf("service.TripService.Decline: %w", err)
	}
	s.mirror(ctx, "decline", id, out)
	return out, nil
}

// Remove deletes target from the trip. Requester must be an admin.
func (s *TripService) Remove(ctx context.Context, requester, id, target uuid.UUID) error {
	_, err := s.mutate(ctx, "remove", id, func(t *domain.Trip, now time.Time) error {
		_, err := trip.Remove(t, requester, target, now)
		return err
	})
	if err != nil {
		return fmt.Errorf("service.TripService.Remove: %w", err)
	}
	if err := s.members.Delete(ctx, target, id); err != nil {
		s.mirrorFailed(ctx, "remove", id, target, err)
	}
	return nil
}

// Update applies p to the trip. Requester must be an admin.
func (s *TripService) Update(ctx context.Context, requester, id uuid.UUID, p trip.Patch) (domain.Trip, error) {
	t, err := s.mutate(ctx, "update", id, func(t *domain.Trip, now time.Time) error {
		return trip.ApplyUpdate(t, requester, p, now)
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return t, nil
}

// Cancel marks the trip cancelled for good. Requester must be an admin.
func (s *TripService) Cancel(ctx context.Context, requester, id uuid.UUID) (domain.Trip, error) {
	t, err := s.mutate(ctx, "cancel", id, func(t *domain.Trip, now time.Time) error {
		return trip.Cancel(t, requester, now)
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Cancel: %w", err)
	}
	return t, nil
}

// AddPackingItem appends a shared packing item and returns requester's view
// of the updated list.
func (s *TripService) AddPackingItem(ctx context.Context, requester, id uuid.UUID, in trip.NewPackingItem) (trip.MemberView, error) {
	t, err := s.mutate(ctx, "packing_item", id, func(t *domain.Trip, _ time.Time) error {
		_, err := trip.AddItem(t, requester, in)
		return err
	})
	if err != nil {
		return trip.MemberView{}, fmt.Errorf("service.TripService.AddPackingItem: %w", err)
	}
	return trip.GetMemberView(t, requester), nil
}

// SetPackingStatus upserts requester's own status on one item and returns
// requester's updated view. Concurrent writes by different members to the
// same item are serialized by the version check, so none is lost.
func (s *TripService) SetPackingStatus(ctx context.Context, requester, id, itemID uuid.UUID, u trip.StatusUpdate) (trip.MemberView, error) {
	t, err := s.mutate(ctx, "packing_status", id, func(t *domain.Trip, now time.Time) error {
		_, err := trip.SetMemberStatus(t, requester, itemID, u, now)
		return err
	})
	if err != nil {
		return trip.MemberView{}, fmt.Errorf("service.TripService.SetPackingStatus: %w", err)
	}
	return trip.GetMemberView(t, requester), nil
}

// PackingView returns requester's personal view of the packing list.
func (s *TripService) PackingView(ctx context.Context, requester, id uuid.UUID) (trip.MemberView, error) {
	t, _, err := s.load(ctx, requester, id)
	if err != nil {
		return trip.MemberView{}, fmt.Errorf("service.TripService.PackingView: %w", err)
	}
	return trip.GetMemberView(t, requester), nil
}

// UpcomingActivities lists activities dated now or later, earliest first.
func (s *TripService) UpcomingActivities(ctx context.Context, requester, id uuid.UUID) ([]domain.Activity, error) {
	t, now, err := s.load(ctx, requester, id)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.UpcomingActivities: %w", err)
	}
	return trip.UpcomingActivities(t, now), nil
}

// AddActivity appends an itinerary activity.
func (s *TripService) AddActivity(ctx context.Context, requester, id uuid.UUID, in trip.NewActivity) (domain.Activity, error) {
	var out domain.Activity
	_, err := s.mutate(ctx, "activity", id, func(t *domain.Trip, _ time.Time) error {
		a, err := trip.AddActivity(t, requester, in)
		out = a
		return err
	})
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.TripService.AddActivity: %w", err)
	}
	return out, nil
}

// AddExpense appends an expense ledger entry.
func (s *TripService) AddExpense(ctx context.Context, requester, id uuid.UUID, in trip.NewExpense) (domain.Expense, error) {
	var out domain.Expense
	_, err := s.mutate(ctx, "expense", id, func(t *domain.Trip, now time.Time) error {
		e, err := trip.AddExpense(t, requester, in, now)
		out = e
		return err
	})
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.TripService.AddExpense: %w", err)
	}
	return out, nil
}

// AddChecklist appends a checklist.
func (s *TripService) AddChecklist(ctx context.Context, requester, id uuid.UUID, in trip.NewChecklist) (domain.Checklist, error) {
	var out domain.Checklist
	_, err := s.mutate(ctx, "checklist", id, func(t *domain.Trip, _ time.Time) error {
		c, err := trip.AddChecklist(t, requester, in)
		out = c
		return err
	})
	if err != nil {
		return domain.Checklist{}, fmt.Errorf("service.TripService.AddChecklist: %w", err)
	}
	return out, nil
}

// SetChecklistItem marks one checklist item completed or open.
func (s *TripService) SetChecklistItem(ctx context.Context, requester, id, checklistID, itemID uuid.UUID, completed bool) (domain.ChecklistItem, error) {
	var out domain.ChecklistItem
	_, err := s.mutate(ctx, "checklist_item", id, func(t *domain.Trip, _ time.Time) error {
		it, err := trip.SetChecklistItem(t, requester, checklistID, itemID, completed)
		out = it
		return err
	})
	if err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("service.TripService.SetChecklistItem: %w", err)
	}
	return out, nil
}

// AddNote pins an important note to the trip.
func (s *TripService) AddNote(ctx context.Context, requester, id uuid.UUID, in trip.NewNote) (domain.ImportantNote, error) {
	var out domain.ImportantNote
	_, err := s.mutate(ctx, "note", id, func(t *domain.Trip, now time.Time) error {
		n, err := trip.AddNote(t, requester, in, now)
		out = n
		return err
	})
	if err != nil {
		return domain.ImportantNote{}, fmt.Errorf("service.TripService.AddNote: %w", err)
	}
	return out, nil
}

// mirror upserts p into the membership mirror. Failures are logged and
// counted, never returned: the trip write has already committed and a later
// write for the same membership repairs the mirror.
func (s *TripService) mirror(ctx context.Context, op string, tripID uuid.UUID, p domain.Participant) {
	m := domain.Membership{
		UserID:   p.UserID,
		TripID:   tripID,
		Role:     p.Role,
		Status:   p.Status,
		JoinedAt: p.JoinedAt,
	}
	if err := s.members.Upsert(ctx, m); err != nil {
		s.mirrorFailed(ctx, op, tripID, p.UserID, err)
	}
}

func (s *TripService) mirrorFailed(ctx context.Context, op string, tripID, userID uuid.UUID, err error) {
	s.metrics.MirrorFailure(op)
	s.log.WarnContext(ctx, "membership mirror write failed",
		"operation", op, "trip_id", tripID, "user_id", userID, "error", err)
}

func (s *TripService) lookupCode(ctx context.Context, code string) (uuid.UUID, bool) {
	if s.codes == nil {
		return uuid.Nil, false
	}
	id, ok, err := s.codes.Lookup(ctx, code)
	switch {
	case err != nil:
		s.metrics.CodeLookup(metrics.LookupError)
		s.log.WarnContext(ctx, "join code cache lookup failed", "error", err)
		return uuid.Nil, false
	case !ok:
		s.metrics.CodeLookup(metrics.LookupMiss)
		return uuid.Nil, false
	}
	s.metrics.CodeLookup(metrics.LookupHit)
	return id, true
}

func (s *TripService) rememberCode(ctx context.Context, t domain.Trip) {
	if s.codes == nil {
		return
	}
	if err := s.codes.Remember(ctx, t.Code, t.ID); err != nil {
		s.log.WarnContext(ctx, "join code cache write failed", "trip_id", t.ID, "error", err)
	}
}

func (s *TripService) forgetCode(ctx context.Context, code string) {
	if err := s.codes.Forget(ctx, code); err != nil {
		s.log.WarnContext(ctx, "join code cache delete failed", "error", err)
	}
}
