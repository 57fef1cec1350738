package trip

import (
	"time"

	"github.com/pkordes/tripcrew/internal/domain"
)

// RefreshStatus recomputes the date-derived status of t for the instant now
// and returns the result:
//
//   - now after EndDate: completed
//   - StartDate <= now <= EndDate: ongoing
//   - before StartDate: unchanged (normally planning)
//
// Dates are compared as instants, so an EndDate at midnight UTC is already
// past for the rest of that day. A cancelled trip stays cancelled. Calling it twice with the same now
// yields the same status.
func RefreshStatus(t *domain.Trip, now time.Time) domain.TripStatus {
	if t.Status == domain.TripCancelled {
		return t.Status
	}
	switch {
	case now.After(t.EndDate):
		t.Status = domain.TripCompleted
	case !now.Before(t.StartDate):
		t.Status = domain.TripOngoing
	}
	if t.Status == "" {
		t.Status = domain.TripPlanning
	}
	return t.Status
}
