package trip_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripcrew/internal/domain"
	"github.com/pkordes/tripcrew/internal/trip"
)

// Admin creates a two-seat trip; U1 joins and is accepted, after which the
// trip is full and U2 cannot join.
func TestScenario_SmallTripFillsUp(t *testing.T) {
	admin, u1, u2 := uuid.New(), uuid.New(), uuid.New()
	tr := newTrip(t, admin, 2)

	p, err := trip.Join(&tr, u1, tr.Code, now)
	require.NoError(t, err)
	assert.Equal(t, domain.ParticipantPending, p.Status)
	assert.False(t, trip.IsFull(tr))

	_, err = trip.Accept(&tr, admin, u1, now)
	require.NoError(t, err)
	assert.True(t, trip.IsFull(tr))
	assert.Equal(t, 2, trip.ParticipantCount(tr))

	_, err = trip.Join(&tr, u2, tr.Code, now)
	assert.ErrorIs(t, err, domain.ErrTripFull)
	_, found := trip.FindParticipant(tr, u2)
	assert.False(t, found)
}

// Overall progress counts an item once any member packs it, while each
// member's own view only reflects their own entry.
func TestScenario_SharedTentPackedByOneMember(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	tr := newTrip(t, a, 5)
	addAccepted(t, &tr, a, b)

	tent, err := trip.AddItem(&tr, a, trip.NewPackingItem{Name: "Tent", IsShared: true})
	require.NoError(t, err)
	_, err = trip.SetMemberStatus(&tr, a, tent.ID, trip.StatusUpdate{Packed: true}, now)
	require.NoError(t, err)

	assert.Equal(t, 100, trip.OverallPackingProgress(tr))

	viewB := trip.GetMemberView(tr, b)
	assert.Equal(t, 0, viewB.Progress)
	require.Len(t, viewB.Items, 1)
	assert.False(t, viewB.Items[0].Packed)

	viewA := trip.GetMemberView(tr, a)
	assert.Equal(t, 100, viewA.Progress)
}
