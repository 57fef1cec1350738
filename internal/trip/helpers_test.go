package trip_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripcrew/internal/domain"
	"github.com/pkordes/tripcrew/internal/trip"
)

// now is the fixed clock used throughout this package's tests.
var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

const testCode = "AB12CD34"

func validDraft() trip.Draft {
	return trip.Draft{
		Title:     "Lake District Hike",
		Location:  "Keswick, UK",
		StartDate: time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC),
	}
}

// newTrip creates a trip owned by creator with the given participant limit.
func newTrip(t *testing.T, creator uuid.UUID, maxParticipants int) domain.Trip {
	t.Helper()
	d := validDraft()
	d.MaxParticipants = &maxParticipants
	tr, err := trip.New(d, creator, testCode, now)
	require.NoError(t, err)
	return tr
}

// addAccepted joins userID through the code and has admin accept them.
func addAccepted(t *testing.T, tr *domain.Trip, admin, userID uuid.UUID) {
	t.Helper()
	_, err := trip.Join(tr, userID, tr.Code, now)
	require.NoError(t, err)
	_, err = trip.Accept(tr, admin, userID, now)
	require.NoError(t, err)
}

func ptr[T any](v T) *T { return &v }
