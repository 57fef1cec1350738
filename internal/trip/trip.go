// Package trip implements the rules of the Trip aggregate: membership,
// per-member packing status, lifecycle status and the derived views.
//
// Every function here is pure over a domain.Trip value. Nothing reads the
// clock or touches storage; callers pass now explicitly and persist the
// mutated trip themselves. A function that returns an error leaves the trip
// exactly as it found it.
package trip

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripcrew/internal/domain"
)

// New builds a trip from a validated draft. The creator becomes the only
// participant, as an accepted admin.
func New(d Draft, creatorID uuid.UUID, code string, now time.Time) (domain.Trip, error) {
	if err := ValidateDraft(d, now); err != nil {
		return domain.Trip{}, err
	}
	if !IsValidCode(code) {
		return domain.Trip{}, fmt.Errorf("trip.New: malformed join code %q", code)
	}

	t := domain.Trip{
		ID:                  uuid.New(),
		Code:                code,
		Title:               strings.TrimSpace(d.Title),
		Description:         strings.TrimSpace(d.Description),
		DetailedDescription: strings.TrimSpace(d.DetailedDescription),
		Location:            strings.TrimSpace(d.Location),
		Coordinates:         d.Coordinates,
		StartDate:           d.StartDate,
		EndDate:             d.EndDate,
		CreatorID:           creatorID,
		MaxParticipants:     d.maxParticipants(),
		Status:              domain.TripPlanning,
		IsPrivate:           d.IsPrivate,
		Tags:                cleanTags(d.Tags),
		CoverImage:          strings.TrimSpace(d.CoverImage),
		Participants: []domain.Participant{{
			UserID:   creatorID,
			Role:     domain.RoleAdmin,
			Status:   domain.ParticipantAccepted,
			JoinedAt: now,
		}},
		Activities:        []domain.Activity{},
		Checklists:        []domain.Checklist{},
		Expenses:          []domain.Expense{},
		PackingList:       []domain.PackingItem{},
		Gallery:           []domain.GalleryImage{},
		EmergencyContacts: []domain.EmergencyContact{},
		ImportantNotes:    []domain.ImportantNote{},
		Documents:         []domain.TripDocument{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	RefreshStatus(&t, now)
	return t, nil
}

// Patch lists the trip-level fields an admin may change. Nil fields are left
// untouched.
type Patch struct {
	Title               *string
	Description         *string
	DetailedDescription *string
	Location            *string
	Coordinates         *domain.Coordinates
	StartDate           *time.Time
	EndDate             *time.Time
	MaxParticipants     *int
	IsPrivate           *bool
	Tags                *[]string
	CoverImage          *string
	EmergencyContacts   *[]domain.EmergencyContact
}

// ApplyUpdate applies p to t on behalf of requester, who must be an admin.
// The patched candidate is validated as a whole before t is modified.
//
// A changed start date must not lie before today, and max participants may
// not drop below the number of already accepted participants.
func ApplyUpdate(t *domain.Trip, requester uuid.UUID, p Patch, now time.Time) error {
	if !IsAdmin(*t, requester) {
		return fmt.Errorf("%w: only admins can update trip details", domain.ErrNotAuthorized)
	}

	c := *t
	if p.Title != nil {
		c.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		c.Description = strings.TrimSpace(*p.Description)
	}
	if p.DetailedDescription != nil {
		c.DetailedDescription = strings.TrimSpace(*p.DetailedDescription)
	}
	if p.Location != nil {
		c.Location = strings.TrimSpace(*p.Location)
	}
	if p.Coordinates != nil {
		coords := *p.Coordinates
		c.Coordinates = &coords
	}
	if p.StartDate != nil {
		c.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		c.EndDate = *p.EndDate
	}
	if p.MaxParticipants != nil {
		c.MaxParticipants = *p.MaxParticipants
	}
	if p.IsPrivate != nil {
		c.IsPrivate = *p.IsPrivate
	}
	if p.Tags != nil {
		c.Tags = cleanTags(*p.Tags)
	}
	if p.CoverImage != nil {
		c.CoverImage = strings.TrimSpace(*p.CoverImage)
	}
	if p.EmergencyContacts != nil {
		contacts, err := cleanContacts(*p.EmergencyContacts)
		if err != nil {
			return err
		}
		c.EmergencyContacts = contacts
	}

	if err := validateFields(c.Title, c.Description, c.Location, c.StartDate, c.EndDate, c.MaxParticipants); err != nil {
		return err
	}
	if !c.StartDate.Equal(t.StartDate) && c.StartDate.Before(startOfDay(now)) {
		return fmt.Errorf("%w: start_date cannot be in the past", domain.ErrValidation)
	}
	if accepted := ParticipantCount(c); c.MaxParticipants < accepted {
		return fmt.Errorf("%w: max_participants cannot be below the %d accepted participants",
			domain.ErrValidation, accepted)
	}

	c.UpdatedAt = now
	*t = c
	return nil
}

// Cancel marks the trip cancelled. Cancellation is terminal: later date-based
// status refreshes leave it in place. Cancelling twice is a no-op.
func Cancel(t *domain.Trip, requester uuid.UUID, now time.Time) error {
	if !IsAdmin(*t, requester) {
		return fmt.Errorf("%w: only admins can cancel a trip", domain.ErrNotAuthorized)
	}
	if t.Status == domain.TripCancelled {
		return nil
	}
	t.Status = domain.TripCancelled
	t.UpdatedAt = now
	return nil
}

// RequireMember returns domain.ErrNotAuthorized unless userID is an accepted
// participant. Reads of trip content are gated by it.
func RequireMember(t domain.Trip, userID uuid.UUID) error {
	if !IsAcceptedMember(t, userID) {
		return fmt.Errorf("%w: not a member of this trip", domain.ErrNotAuthorized)
	}
	return nil
}

func cleanContacts(in []domain.EmergencyContact) ([]domain.EmergencyContact, error) {
	out := make([]domain.EmergencyContact, 0, len(in))
	for i, c := range in {
		c.Name = strings.TrimSpace(c.Name)
		c.Phone = strings.TrimSpace(c.Phone)
		c.Relationship = strings.TrimSpace(c.Relationship)
		if c.Name == "" || c.Phone == "" {
			return nil, fmt.Errorf("%w: emergency_contacts[%d] needs a name and phone", domain.ErrValidation, i)
		}
		out = append(out, c)
	}
	return out, nil
}
