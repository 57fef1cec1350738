package trip

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/tripcrew/internal/domain"
)

// Field limits for trip metadata.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MaxNameLength        = 100

	MinParticipantsLimit   = 1
	MaxParticipantsLimit   = 50
	DefaultMaxParticipants = 10
)

// Draft is the candidate state for a new trip, as supplied by the creator.
// A nil MaxParticipants means DefaultMaxParticipants.
type Draft struct {
	Title               string
	Description         string
	DetailedDescription string
	Location            string
	Coordinates         *domain.Coordinates
	StartDate           time.Time
	EndDate             time.Time
	MaxParticipants     *int
	IsPrivate           bool
	Tags                []string
	CoverImage          string
}

func (d Draft) maxParticipants() int {
	if d.MaxParticipants == nil {
		return DefaultMaxParticipants
	}
	return *d.MaxParticipants
}

// ValidateDraft checks a creation request against the trip rules. It never
// mutates d. now is the creation instant; the start date may be today but
// not an earlier day.
func ValidateDraft(d Draft, now time.Time) error {
	if err := validateFields(d.Title, d.Description, d.Location, d.StartDate, d.EndDate, d.maxParticipants()); err != nil {
		return err
	}
	if d.StartDate.Before(startOfDay(now)) {
		return fmt.Errorf("%w: start_date cannot be in the past", domain.ErrValidation)
	}
	return nil
}

// validateFields enforces the rules shared by creation and update.
func validateFields(title, description, location string, start, end time.Time, maxParticipants int) error {
	title = strings.TrimSpace(title)
	switch {
	case title == "":
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	case len([]rune(title)) > MaxTitleLength:
		return fmt.Errorf("%w: title cannot exceed %d characters", domain.ErrValidation, MaxTitleLength)
	case len([]rune(strings.TrimSpace(description))) > MaxDescriptionLength:
		return fmt.Errorf("%w: description cannot exceed %d characters", domain.ErrValidation, MaxDescriptionLength)
	case strings.TrimSpace(location) == "":
		return fmt.Errorf("%w: location is required", domain.ErrValidation)
	case start.IsZero():
		return fmt.Errorf("%w: start_date is required", domain.ErrValidation)
	case end.IsZero():
		return fmt.Errorf("%w: end_date is required", domain.ErrValidation)
	case end.Before(start):
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	case maxParticipants < MinParticipantsLimit || maxParticipants > MaxParticipantsLimit:
		return fmt.Errorf("%w: max_participants must be between %d and %d",
			domain.ErrValidation, MinParticipantsLimit, MaxParticipantsLimit)
	}
	return nil
}

// startOfDay truncates t to midnight UTC.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// cleanTags trims tags and drops empty ones. The result is never nil.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if t := strings.TrimSpace(tag); t != "" {
			out = append(out, t)
		}
	}
	return out
}
