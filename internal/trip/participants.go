package trip

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripcrew/internal/domain"
)

// FindParticipant returns the participant record for userID, if any.
func FindParticipant(t domain.Trip, userID uuid.UUID) (domain.Participant, bool) {
	i := participantIndex(t, userID)
	if i < 0 {
		return domain.Participant{}, false
	}
	return t.Participants[i], true
}

// IsAdmin reports whether userID holds the admin role on t.
func IsAdmin(t domain.Trip, userID uuid.UUID) bool {
	p, ok := FindParticipant(t, userID)
	return ok && p.Role == domain.RoleAdmin
}

// IsAcceptedMember reports whether userID is an accepted participant of t.
func IsAcceptedMember(t domain.Trip, userID uuid.UUID) bool {
	p, ok := FindParticipant(t, userID)
	return ok && p.Status == domain.ParticipantAccepted
}

// IsFull reports whether the accepted participants have reached the limit.
// Pending participants do not count against it.
func IsFull(t domain.Trip) bool {
	return ParticipantCount(t) >= t.MaxParticipants
}

// Join adds userID as a pending member when code matches the trip's join
// code. Checks run in order: code, capacity, existing membership.
func Join(t *domain.Trip, userID uuid.UUID, code string, now time.Time) (domain.Participant, error) {
	if NormalizeCode(code) != t.Code {
		return domain.Participant{}, domain.ErrInvalidCode
	}
	if IsFull(*t) {
		return domain.Participant{}, domain.ErrTripFull
	}
	if participantIndex(*t, userID) >= 0 {
		return domain.Participant{}, domain.ErrAlreadyParticipant
	}

	p := domain.Participant{
		UserID:   userID,
		Role:     domain.RoleMember,
		Status:   domain.ParticipantPending,
		JoinedAt: now,
	}
	t.Participants = append(t.Participants, p)
	t.UpdatedAt = now
	return p, nil
}

// Accept moves target to accepted. Only admins may accept. Accepting an
// already accepted participant is a no-op; accepting anyone else into a full
// trip fails with domain.ErrTripFull so the limit is never exceeded.
func Accept(t *domain.Trip, requester, target uuid.UUID, now time.Time) (domain.Participant, error) {
	if !IsAdmin(*t, requester) {
		return domain.Participant{}, fmt.Errorf("%w: only admins can accept members", domain.ErrNotAuthorized)
	}
	i := participantIndex(*t, target)
	if i < 0 {
		return domain.Participant{}, domain.ErrParticipantNotFound
	}
	if t.Participants[i].Status == domain.ParticipantAccepted {
		return t.Participants[i], nil
	}
	if IsFull(*t) {
		return domain.Participant{}, domain.ErrTripFull
	}

	ps := slices.Clone(t.Participants)
	ps[i].Status = domain.ParticipantAccepted
	t.Participants = ps
	t.UpdatedAt = now
	return ps[i], nil
}

// Decline marks target as declined. Only admins may decline, and the last
// admin cannot be declined.
func Decline(t *domain.Trip, requester, target uuid.UUID, now time.Time) (domain.Participant, error) {
	if !IsAdmin(*t, requester) {
		return domain.Participant{}, fmt.Errorf("%w: only admins can decline members", domain.ErrNotAuthorized)
	}
	i := participantIndex(*t, target)
	if i < 0 {
		return domain.Participant{}, domain.ErrParticipantNotFound
	}
	if t.Participants[i].Role == domain.RoleAdmin && adminCount(*t) == 1 {
		return domain.Participant{}, domain.ErrLastAdmin
	}

	ps := slices.Clone(t.Participants)
	ps[i].Status = domain.ParticipantDeclined
	t.Participants = ps
	t.UpdatedAt = now
	return ps[i], nil
}

// Remove deletes target's participant record. Only admins may remove.
// An absent target is domain.ErrParticipantNotFound, and removing the only
// admin (including an admin removing themself) is domain.ErrLastAdmin.
func Remove(t *domain.Trip, requester, target uuid.UUID, now time.Time) (domain.Participant, error) {
	if !IsAdmin(*t, requester) {
		return domain.Participant{}, fmt.Errorf("%w: only admins can remove participants", domain.ErrNotAuthorized)
	}
	i := participantIndex(*t, target)
	if i < 0 {
		return domain.Participant{}, domain.ErrParticipantNotFound
	}
	removed := t.Participants[i]
	if removed.Role == domain.RoleAdmin && adminCount(*t) == 1 {
		return domain.Participant{}, domain.ErrLastAdmin
	}

	t.Participants = slices.Delete(slices.Clone(t.Participants), i, i+1)
	t.UpdatedAt = now
	return removed, nil
}

func participantIndex(t domain.Trip, userID uuid.UUID) int {
	return slices.IndexFunc(t.Participants, func(p domain.Participant) bool {
		return p.UserID == userID
	})
}

func adminCount(t domain.Trip) int {
	n := 0
	for _, p := range t.Participants {
		if p.Role == domain.RoleAdmin {
			n++
		}
	}
	return n
}
