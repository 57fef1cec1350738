package repo_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripcrew/internal/domain"
	"github.com/pkordes/tripcrew/internal/repo"
)

// The contract tests below run against every TripRepo and MembershipRepo
// implementation so the in-memory stores cannot drift from Postgres.

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// tripFixture returns a stored-ready trip with one accepted admin.
// Callers can override individual fields after calling this function.
func tripFixture(code string, admin uuid.UUID, start time.Time) domain.Trip {
	return domain.Trip{
		ID:              uuid.New(),
		Code:            code,
		Title:           "Summer Tour",
		Location:        "Lisbon",
		StartDate:       start,
		EndDate:         start.AddDate(0, 0, 5),
		CreatorID:       admin,
		MaxParticipants: 10,
		Status:          domain.TripPlanning,
		Tags:            []string{},
		Participants: []domain.Participant{
			{UserID: admin, Role: domain.RoleAdmin, Status: domain.ParticipantAccepted, JoinedAt: testNow},
		},
		Activities:        []domain.Activity{},
		Checklists:        []domain.Checklist{},
		Expenses:          []domain.Expense{},
		PackingList:       []domain.PackingItem{},
		Gallery:           []domain.GalleryImage{},
		EmergencyContacts: []domain.EmergencyContact{},
		ImportantNotes:    []domain.ImportantNote{},
		Documents:         []domain.TripDocument{},
		CreatedAt:         testNow,
		UpdatedAt:         testNow,
	}
}

func testTripRepoContract(t *testing.T, newRepo func(t *testing.T) repo.TripRepo) {
	ctx := context.Background()
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("create and get", func(t *testing.T) {
		r := newRepo(t)
		in := tripFixture("AAAA0001", uuid.New(), start)

		got, err := r.Create(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.Version)
		assert.Equal(t, in.ID, got.ID)
		assert.True(t, got.StartDate.Equal(start))

		byID, err := r.GetByID(ctx, in.ID)
		require.NoError(t, err)
		assert.Equal(t, got.Title, byID.Title)
		assert.Equal(t, in.Participants[0].UserID, byID.Participants[0].UserID)

		byCode, err := r.GetByCode(ctx, "AAAA0001")
		require.NoError(t, err)
		assert.Equal(t, in.ID, byCode.ID)
	})

	t.Run("duplicate code", func(t *testing.T) {
		r := newRepo(t)
		_, err := r.Create(ctx, tripFixture("AAAA0002", uuid.New(), start))
		require.NoError(t, err)

		_, err = r.Create(ctx, tripFixture("AAAA0002", uuid.New(), start))

		assert.ErrorIs(t, err, domain.ErrCodeTaken)
	})

	t.Run("not found", func(t *testing.T) {
		r := newRepo(t)

		_, err := r.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = r.GetByCode(ctx, "FFFFFFFF")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		_, err = r.Save(ctx, tripFixture("AAAA0003", uuid.New(), start))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("save bumps version", func(t *testing.T) {
		r := newRepo(t)
		tr, err := r.Create(ctx, tripFixture("AAAA0004", uuid.New(), start))
		require.NoError(t, err)

		tr.Title = "Renamed"
		saved, err := r.Save(ctx, tr)

		require.NoError(t, err)
		assert.Equal(t, int64(2), saved.Version)
		got, err := r.GetByID(ctx, tr.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
		assert.Equal(t, int64(2), got.Version)
	})

	t.Run("stale save is rejected", func(t *testing.T) {
		r := newRepo(t)
		tr, err := r.Create(ctx, tripFixture("AAAA0005", uuid.New(), start))
		require.NoError(t, err)

		first, second := tr, tr
		first.Title = "First"
		second.Title = "Second"
		_, err = r.Save(ctx, first)
		require.NoError(t, err)
		_, err = r.Save(ctx, second)

		assert.ErrorIs(t, err, domain.ErrVersionConflict)
		assert.ErrorIs(t, err, domain.ErrConflict)
		got, err := r.GetByID(ctx, tr.ID)
		require.NoError(t, err)
		assert.Equal(t, "First", got.Title, "the losing write must not be applied")
	})

	t.Run("list for user", func(t *testing.T) {
		r := newRepo(t)
		user := uuid.New()
		now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

		past := tripFixture("BBBB0001", user, now.AddDate(0, -2, 0))
		soon := tripFixture("BBBB0002", user, now.AddDate(0, 0, 10))
		later := tripFixture("BBBB0003", user, now.AddDate(0, 1, 0))
		pending := tripFixture("BBBB0004", uuid.New(), now.AddDate(0, 0, 5))
		pending.Participants = append(pending.Participants, domain.Participant{
			UserID: user, Role: domain.RoleMember, Status: domain.ParticipantPending, JoinedAt: now,
		})
		other := tripFixture("BBBB0005", uuid.New(), now.AddDate(0, 0, 3))
		for _, tr := range []domain.Trip{later, past, pending, soon, other} {
			_, err := r.Create(ctx, tr)
			require.NoError(t, err)
		}
		page := domain.NewPaginationParams(nil, nil)

		all, total, err := r.ListForUser(ctx, domain.TripListFilter{UserID: user, Scope: domain.ScopeAll, Now: now}, page)
		require.NoError(t, err)
		assert.Equal(t, 4, total)
		assert.Equal(t, []string{"BBBB0001", "BBBB0004", "BBBB0002", "BBBB0003"}, codes(all))

		upcoming, total, err := r.ListForUser(ctx, domain.TripListFilter{UserID: user, Scope: domain.ScopeUpcoming, Now: now}, page)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Equal(t, []string{"BBBB0002", "BBBB0003"}, codes(upcoming), "pending trips are excluded")

		pastTrips, total, err := r.ListForUser(ctx, domain.TripListFilter{UserID: user, Scope: domain.ScopePast, Now: now}, page)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, []string{"BBBB0001"}, codes(pastTrips))

		one, two := 2, 2
		paged, total, err := r.ListForUser(ctx, domain.TripListFilter{UserID: user, Now: now}, domain.NewPaginationParams(&one, &two))
		require.NoError(t, err)
		assert.Equal(t, 4, total)
		assert.Equal(t, []string{"BBBB0002", "BBBB0003"}, codes(paged))

		huge := math.MaxInt
		beyond, total, err := r.ListForUser(ctx, domain.TripListFilter{UserID: user, Now: now}, domain.NewPaginationParams(&huge, nil))
		require.NoError(t, err)
		assert.Equal(t, 4, total)
		assert.Empty(t, beyond)
	})

	t.Run("returned trips are copies", func(t *testing.T) {
		r := newRepo(t)
		tr, err := r.Create(ctx, tripFixture("CCCC0001", uuid.New(), start))
		require.NoError(t, err)

		tr.Participants[0].Role = domain.RoleMember

		got, err := r.GetByID(ctx, tr.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, got.Participants[0].Role)
	})
}

func testMembershipRepoContract(t *testing.T, newRepos func(t *testing.T) (repo.TripRepo, repo.MembershipRepo)) {
	ctx := context.Background()
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("upsert is idempotent", func(t *testing.T) {
		trips, r := newRepos(t)
		user := uuid.New()
		tr, err := trips.Create(ctx, tripFixture("DDDD0001", user, start))
		require.NoError(t, err)

		m := domain.Membership{UserID: user, TripID: tr.ID, Role: domain.RoleMember, Status: domain.ParticipantPending, JoinedAt: testNow}
		require.NoError(t, r.Upsert(ctx, m))
		m.Status = domain.ParticipantAccepted
		require.NoError(t, r.Upsert(ctx, m))
		require.NoError(t, r.Upsert(ctx, m))

		got, err := r.ListByUser(ctx, user)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, domain.ParticipantAccepted, got[0].Status)
		assert.True(t, got[0].JoinedAt.Equal(testNow))
	})

	t.Run("delete tolerates absence", func(t *testing.T) {
		trips, r := newRepos(t)
		user := uuid.New()
		tr, err := trips.Create(ctx, tripFixture("DDDD0002", user, start))
		require.NoError(t, err)
		require.NoError(t, r.Upsert(ctx, domain.Membership{
			UserID: user, TripID: tr.ID, Role: domain.RoleAdmin, Status: domain.ParticipantAccepted, JoinedAt: testNow,
		}))

		require.NoError(t, r.Delete(ctx, user, tr.ID))
		require.NoError(t, r.Delete(ctx, user, tr.ID))

		got, err := r.ListByUser(ctx, user)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("list orders newest first", func(t *testing.T) {
		trips, r := newRepos(t)
		user := uuid.New()
		older, err := trips.Create(ctx, tripFixture("DDDD0003", user, start))
		require.NoError(t, err)
		newer, err := trips.Create(ctx, tripFixture("DDDD0004", user, start))
		require.NoError(t, err)

		require.NoError(t, r.Upsert(ctx, domain.Membership{UserID: user, TripID: older.ID, Role: domain.RoleAdmin,
			Status: domain.ParticipantAccepted, JoinedAt: testNow}))
		require.NoError(t, r.Upsert(ctx, domain.Membership{UserID: user, TripID: newer.ID, Role: domain.RoleAdmin,
			Status: domain.ParticipantAccepted, JoinedAt: testNow.Add(time.Hour)}))
		require.NoError(t, r.Upsert(ctx, domain.Membership{UserID: uuid.New(), TripID: newer.ID, Role: domain.RoleMember,
			Status: domain.ParticipantPending, JoinedAt: testNow}))

		got, err := r.ListByUser(ctx, user)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, newer.ID, got[0].TripID)
		assert.Equal(t, older.ID, got[1].TripID)
	})
}

func codes(trips []domain.Trip) []string {
	out := make([]string, 0, len(trips))
	for _, t := range trips {
		out = append(out, t.Code)
	}
	return out
}
