package service_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripcrew/internal/domain"
	"github.com/pkordes/tripcrew/internal/metrics"
	"github.com/pkordes/tripcrew/internal/repo"
	"github.com/pkordes/tripcrew/internal/service"
	"github.com/pkordes/tripcrew/internal/trip"
)

// now is the fixed service clock for every test in this package.
var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func quietLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

func validDraft() trip.Draft {
	return trip.Draft{
		Title:     "Lake District Hike",
		Location:  "Keswick, UK",
		StartDate: time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC),
	}
}

// fixture bundles a service backed by the in-memory repos.
type fixture struct {
	svc     *service.TripService
	trips   *countingTripRepo
	members repo.MembershipRepo
	metrics *metrics.Metrics
}

func newFixture(t *testing.T, opts ...service.Option) *fixture {
	t.Helper()
	f := &fixture{
		trips:   &countingTripRepo{TripRepo: repo.NewMemoryTripRepo()},
		members: repo.NewMemoryMembershipRepo(),
		metrics: metrics.New(),
	}
	base := []service.Option{
		service.WithClock(clock),
		service.WithLogger(quietLogger()),
		service.WithMetrics(f.metrics),
	}
	f.svc = service.NewTripService(f.trips, f.members, append(base, opts...)...)
	return f
}

// createTrip stores a trip owned by admin with the given limit.
func (f *fixture) createTrip(t *testing.T, admin uuid.UUID, maxParticipants int) domain.Trip {
	t.Helper()
	d := validDraft()
	d.MaxParticipants = &maxParticipants
	tr, err := f.svc.Create(t.Context(), admin, d)
	require.NoError(t, err)
	return tr
}

// addMember joins userID by code and has admin accept them.
func (f *fixture) addMember(t *testing.T, tr domain.Trip, admin, userID uuid.UUID) {
	t.Helper()
	_, err := f.svc.JoinByCode(t.Context(), userID, tr.Code)
	require.NoError(t, err)
	_, err = f.svc.Accept(t.Context(), admin, tr.ID, userID)
	require.NoError(t, err)
}

// counterTotal sums every series of the named counter.
func counterTotal(t *testing.T, m *metrics.Metrics, name string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	total := 0.0
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, series := range mf.GetMetric() {
			total += series.GetCounter().GetValue()
		}
	}
	return total
}

func ptr[T any](v T) *T { return &v }
