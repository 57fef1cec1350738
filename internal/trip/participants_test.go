package trip_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripcrew/internal/domain"
	"github.com/pkordes/tripcrew/internal/trip"
)

func TestJoin_AddsPendingMember(t *testing.T) {
	admin, user := uuid.New(), uuid.New()
	tr := newTrip(t, admin, 5)

	p, err := trip.Join(&tr, user, "ab12cd34", now) // codes are case-insensitive

	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, p.Role)
	assert.Equal(t, domain.ParticipantPending, p.Status)
	assert.Equal(t, now, p.JoinedAt)
	assert.Len(t, tr.Participants, 2)
	assert.False(t, trip.IsAcceptedMember(tr, user))
}

func TestJoin_WrongCode(t *testing.T) {
	tr := newTrip(t, uuid.New(), 5)

	_, err := trip.Join(&tr, uuid.New(), "FFFFFFFF", now)

	assert.ErrorIs(t, err, domain.ErrInvalidCode)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, tr.Participants, 1, "no participant should be added")
}

func TestJoin_AlreadyParticipant(t *testing.T) {
	admin, user := uuid.New(), uuid.New()
	tr := newTrip(t, admin, 5)
	_, err := trip.Join(&tr, user, testCode, now)
	require.NoError(t, err)

	_, err = trip.Join(&tr, user, testCode, now)
	assert.ErrorIs(t, err, domain.ErrAlreadyParticipant)

	_, err = trip.Join(&tr, admin, testCode, now)
	assert.ErrorIs(t, err, domain.ErrAlreadyParticipant)
}

func TestJoin_PendingDoesNotCountTowardsLimit(t *testing.T) {
	admin := uuid.New()
	tr := newTrip(t, admin, 2)

	for range 3 {
		_, err := trip.Join(&tr, uuid.New(), testCode, now)
		require.NoError(t, err)
	}

	assert.False(t, trip.IsFull(tr))
	assert.Equal(t, 1, trip.ParticipantCount(tr))
}

func TestAccept(t *testing.T) {
	admin, user := uuid.New(), uuid.New()
	tr := newTrip(t, admin, 5)
	_, err := trip.Join(&tr, user, testCode, now)
	require.NoError(t, err)

	p, err := trip.Accept(&tr, admin, user, now)

	require.NoError(t, err)
	assert.Equal(t, domain.ParticipantAccepted, p.Status)
	assert.True(t, trip.IsAcceptedMember(tr, user))
	assert.False(t, trip.IsAdmin(tr, user))
}

func TestAccept_Errors(t *testing.T) {
	admin, member, pending := uuid.New(), uuid.New(), uuid.New()
	tr := newTrip(t, admin, 5)
	addAccepted(t, &tr, admin, member)
	_, err := trip.Join(&tr, pending, testCode, now)
	require.NoError(t, err)

	_, err = trip.Accept(&tr, member, pending, now)
	assert.ErrorIs(t, err, domain.ErrNotAuthorized, "members cannot accept")

	_, err = trip.Accept(&tr, uuid.New(), pending, now)
	assert.ErrorIs(t, err, domain.ErrNotAuthorized, "strangers cannot accept")

	_, err = trip.Accept(&tr, admin, uuid.New(), now)
	assert.ErrorIs(t, err, domain.ErrParticipantNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccept_FullTripRejectsFurtherAccepts(t *testing.T) {
	admin, a, b := uuid.New(), uuid.New(), uuid.New()
	tr := newTrip(t, admin, 2)
	_, err := trip.Join(&tr, a, testCode, now)
	require.NoError(t, err)
	_, err = trip.Join(&tr, b, testCode, now)
	require.NoError(t, err)

	_, err = trip.Accept(&tr, admin, a, now)
	require.NoError(t, err)

	_, err = trip.Accept(&tr, admin, b, now)
	assert.ErrorIs(t, err, domain.ErrTripFull)

	// Re-accepting an accepted member stays a no-op even when full.
	_, err = trip.Accept(&tr, admin, a, now)
	assert.NoError(t, err)
}

func TestDecline(t *testing.T) {
	admin, user := uuid.New(), uuid.New()
	tr := newTrip(t, admin, 5)
	_, err := trip.Join(&tr, user, testCode, now)
	require.NoError(t, err)

	p, err := trip.Decline(&tr, admin, user, now)

	require.NoError(t, err)
	assert.Equal(t, domain.ParticipantDeclined, p.Status)

	_, err = trip.Decline(&tr, admin, admin, now)
	assert.ErrorIs(t, err, domain.ErrLastAdmin)
}

func TestRemove(t *testing.T) {
	admin, member := uuid.New(), uuid.New()
	tr := newTrip(t, admin, 5)
	addAccepted(t, &tr, admin, member)

	removed, err := trip.Remove(&tr, admin, member, now)

	require.NoError(t, err)
	assert.Equal(t, member, removed.UserID)
	_, found := trip.FindParticipant(tr, member)
	assert.False(t, found)

	_, err = trip.Remove(&tr, admin, member, now)
	assert.ErrorIs(t, err, domain.ErrParticipantNotFound, "removing twice reports absence")
}

func TestRemove_NotAdmin(t *testing.T) {
	admin, a, b := uuid.New(), uuid.New(), uuid.New()
	tr := newTrip(t, admin, 5)
	addAccepted(t, &tr, admin, a)
	addAccepted(t, &tr, admin, b)

	_, err := trip.Remove(&tr, a, b, now)

	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
	assert.Len(t, tr.Participants, 3)
}

func TestRemove_LastAdmin(t *testing.T) {
	admin := uuid.New()
	tr := newTrip(t, admin, 5)

	_, err := trip.Remove(&tr, admin, admin, now)

	assert.ErrorIs(t, err, domain.ErrLastAdmin)
	assert.True(t, trip.IsAdmin(tr, admin))
}

func TestRemove_OneOfTwoAdmins(t *testing.T) {
	admin, second := uuid.New(), uuid.New()
	tr := newTrip(t, admin, 5)
	addAccepted(t, &tr, admin, second)
	tr.Participants[1].Role = domain.RoleAdmin

	_, err := trip.Remove(&tr, second, admin, now)

	require.NoError(t, err)
	assert.Len(t, tr.Participants, 1)
	assert.True(t, trip.IsAdmin(tr, second))
}

func TestRemove_DoesNotAliasCallerSlice(t *testing.T) {
	admin, member := uuid.New(), uuid.New()
	tr := newTrip(t, admin, 5)
	addAccepted(t, &tr, admin, member)
	snapshot := tr.Participants

	_, err := trip.Remove(&tr, admin, admin, now)
	require.ErrorIs(t, err, domain.ErrLastAdmin)
	_, err = trip.Remove(&tr, admin, member, now)
	require.NoError(t, err)

	assert.Len(t, snapshot, 2)
	assert.Equal(t, member, snapshot[1].UserID)
}
